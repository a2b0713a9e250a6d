//go:build integration

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/database"
	"github.com/stemsi/course-backend/internal/handler"
	"github.com/stemsi/course-backend/internal/model"
	"github.com/stemsi/course-backend/internal/repository"
	"github.com/stemsi/course-backend/internal/service"
	"github.com/stemsi/course-backend/internal/validator"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("course_api"),
		tcpostgres.WithUsername("course"),
		tcpostgres.WithPassword("course_secret"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	if err := database.MigrateUp(dsn, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func fullStack(pool *pgxpool.Pool, lenient bool) http.Handler {
	log := zerolog.Nop()
	validator.Setup()

	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	handlers := &Handlers{
		Course:     handler.NewCourseHandler(service.NewCourseService(courseRepo, enrollmentRepo, log), lenient, log),
		Enrollment: handler.NewEnrollmentHandler(service.NewEnrollmentService(enrollmentRepo, courseRepo, log), lenient, log),
		Health:     handler.NewHealthHandler(pool, log),
	}
	return SetupRouter(handlers, testConfig(), log, nil)
}

func call(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestAlgebraScenarioOverHTTP(t *testing.T) {
	pool := startPostgres(t)
	h := fullStack(pool, false)

	if code := call(t, h, http.MethodGet, "/health", "", nil); code != http.StatusOK {
		t.Fatalf("health: %d", code)
	}

	var course model.Course
	if code := call(t, h, http.MethodPost, "/api/courses/add", `{"name":"Algebra","duration":"6w"}`, &course); code != http.StatusOK {
		t.Fatalf("add course: %d", code)
	}
	if course.ID != 1 {
		t.Fatalf("expected course id 1, got=%d", course.ID)
	}

	var enrollment model.Enrollment
	code := call(t, h, http.MethodPost, "/api/enrollments/course/1", `{"studentId":42,"studentName":"Ann"}`, &enrollment)
	if code != http.StatusOK {
		t.Fatalf("enroll: %d", code)
	}
	if enrollment.ID != 1 || enrollment.Course == nil || enrollment.Course.ID != 1 {
		t.Fatalf("unexpected enrollment %+v", enrollment)
	}

	var byStudent []model.Enrollment
	call(t, h, http.MethodGet, "/api/enrollments/student/42", "", &byStudent)
	if len(byStudent) != 1 || byStudent[0].ID != 1 {
		t.Fatalf("expected Ann's enrollment, got %+v", byStudent)
	}

	if code := call(t, h, http.MethodDelete, "/api/courses/delete/1", "", nil); code != http.StatusOK {
		t.Fatalf("delete course: %d", code)
	}

	byStudent = nil
	call(t, h, http.MethodGet, "/api/enrollments/student/42", "", &byStudent)
	if byStudent == nil || len(byStudent) != 0 {
		t.Fatalf("expected empty array after cascade, got %+v", byStudent)
	}

	if code := call(t, h, http.MethodGet, "/api/courses/1", "", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted course, got=%d", code)
	}

	lenient := fullStack(pool, true)
	var missing *model.Course
	if code := call(t, lenient, http.MethodGet, "/api/courses/1", "", &missing); code != http.StatusOK || missing != nil {
		t.Fatalf("lenient mode should answer 200 null, got %d %+v", code, missing)
	}
}
