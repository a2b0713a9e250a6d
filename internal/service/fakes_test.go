package service

import (
	"context"
	"sort"
	"sync"

	"github.com/stemsi/course-backend/internal/model"
	"github.com/stemsi/course-backend/internal/repository"
)

// memStore backs both fake repositories so cascade deletes can be observed.
type memStore struct {
	mu           sync.Mutex
	courses      map[int64]model.Course
	enrollments  map[int64]model.Enrollment
	nextCourse   int64
	nextEnroll   int64
	courseErr    error
	createErrs   []error
	updateCalls  int
	enrollWrites int
}

func newMemStore() *memStore {
	return &memStore{
		courses:     map[int64]model.Course{},
		enrollments: map[int64]model.Enrollment{},
	}
}

type fakeCourseRepo struct{ s *memStore }

type fakeEnrollmentRepo struct{ s *memStore }

func (r fakeCourseRepo) GetAll(ctx context.Context) ([]model.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.courseErr != nil {
		return nil, r.s.courseErr
	}
	var out []model.Course
	for _, c := range r.s.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeCourseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.courseErr != nil {
		return nil, r.s.courseErr
	}
	c, ok := r.s.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r fakeCourseRepo) Create(ctx context.Context, c *model.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCourse++
	c.ID = r.s.nextCourse
	r.s.courses[c.ID] = *c
	return nil
}

func (r fakeCourseRepo) Update(ctx context.Context, c *model.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.updateCalls++
	if _, ok := r.s.courses[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.courses[c.ID] = *c
	return nil
}

func (r fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return repository.ErrNotFound
	}
	for eid, e := range r.s.enrollments {
		if e.CourseID != nil && *e.CourseID == id {
			delete(r.s.enrollments, eid)
		}
	}
	delete(r.s.courses, id)
	return nil
}

func (r fakeEnrollmentRepo) filter(keep func(model.Enrollment) bool) []model.Enrollment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Enrollment
	for _, e := range r.s.enrollments {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeEnrollmentRepo) GetAll(ctx context.Context) ([]model.Enrollment, error) {
	return r.filter(func(model.Enrollment) bool { return true }), nil
}

func (r fakeEnrollmentRepo) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.enrollments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r fakeEnrollmentRepo) ListByStudentID(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	return r.filter(func(e model.Enrollment) bool {
		return e.StudentID != nil && *e.StudentID == studentID
	}), nil
}

func (r fakeEnrollmentRepo) ListByCourseID(ctx context.Context, courseID int64) ([]model.Enrollment, error) {
	return r.filter(func(e model.Enrollment) bool {
		return e.CourseID != nil && *e.CourseID == courseID
	}), nil
}

func (r fakeEnrollmentRepo) Create(ctx context.Context, e *model.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.enrollWrites++
	if len(r.s.createErrs) > 0 {
		err := r.s.createErrs[0]
		r.s.createErrs = r.s.createErrs[1:]
		return err
	}
	r.s.nextEnroll++
	e.ID = r.s.nextEnroll
	r.s.enrollments[e.ID] = *e
	return nil
}

func (r fakeEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.enrollments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.enrollments, id)
	return nil
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
