package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/config"
	"github.com/stemsi/course-backend/internal/handler"
	"github.com/stemsi/course-backend/internal/middleware"
	"github.com/stemsi/course-backend/internal/response"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course     *handler.CourseHandler
	Enrollment *handler.EnrollmentHandler
	Health     *handler.HealthHandler
}

// SetupRouter configures the Gin engine with middlewares and routes.
// limiter may be nil, in which case requests are not rate limited.
func SetupRouter(
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so the frontend dev server works as is.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so every log line and error envelope carries it.
	router.Use(response.RequestIDMiddleware())

	if cfg.OtelEnabled {
		router.Use(otelgin.Middleware(cfg.OtelServiceName))
	}

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api")
	api.Use(middleware.NoStore())
	if limiter != nil {
		api.Use(limiter.Middleware())
	}

	// ─── Courses ───────────────────────────────────────────────────────
	courses := api.Group("/courses")
	{
		courses.POST("/add", handlers.Course.AddCourse)
		courses.GET("", handlers.Course.GetCourses)
		courses.GET("/:id", handlers.Course.GetCourse)
		courses.GET("/:id/enrollments", handlers.Course.GetCourseEnrollments)
		courses.PUT("/update/:id", handlers.Course.UpdateCourse)
		courses.DELETE("/delete/:id", handlers.Course.DeleteCourse)
	}

	// ─── Enrollments ───────────────────────────────────────────────────
	enrollments := api.Group("/enrollments")
	{
		enrollments.GET("", handlers.Enrollment.GetAll)
		enrollments.GET("/:id", handlers.Enrollment.GetByID)
		enrollments.GET("/student/:studentId", handlers.Enrollment.GetByStudentID)
		enrollments.POST("/course/:courseId", handlers.Enrollment.Create)
		enrollments.DELETE("/:id", handlers.Enrollment.Delete)
	}

	return router
}
