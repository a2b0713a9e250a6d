package main

import (
	"context"
	"fmt"
	"time"

	"github.com/stemsi/course-backend/internal/config"
	"github.com/stemsi/course-backend/internal/database"
	"github.com/stemsi/course-backend/internal/logger"
	"github.com/stemsi/course-backend/internal/model"
	"github.com/stemsi/course-backend/internal/repository"
	"github.com/stemsi/course-backend/internal/service"
)

type sample struct {
	name, courseType, level, duration, description string
}

var samples = []sample{
	{
		name:        "React Fundamentals",
		courseType:  "Web Development",
		level:       "Beginner",
		duration:    "12 hours",
		description: "Learn the basics of React including components, props, state, and hooks. Build your first React application with hands-on projects.",
	},
	{
		name:        "Advanced JavaScript",
		courseType:  "Programming",
		level:       "Intermediate",
		duration:    "18 hours",
		description: "Master advanced JavaScript concepts including closures, promises, async/await, and design patterns.",
	},
	{
		name:        "UI/UX Design Principles",
		courseType:  "Design",
		level:       "Beginner",
		duration:    "10 hours",
		description: "Learn the fundamentals of user interface and user experience design for modern web applications.",
	},
	{
		name:        "Node.js Backend Development",
		courseType:  "Backend Development",
		level:       "Advanced",
		duration:    "20 hours",
		description: "Build scalable server-side applications with Node.js, Express, and MongoDB.",
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	courseService := service.NewCourseService(
		repository.NewCourseRepository(pool),
		repository.NewEnrollmentRepository(pool),
		log,
	)

	existing, err := courseService.GetAllCourses(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list courses")
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		if c.Name != nil {
			seen[*c.Name] = true
		}
	}

	fmt.Printf("=== Seeding %d sample courses ===\n", len(samples))

	created := 0
	for _, s := range samples {
		if seen[s.name] {
			fmt.Printf("Skipping %q: already exists\n", s.name)
			continue
		}
		course, err := courseService.AddCourse(ctx, &model.Course{
			Name:        strPtr(s.name),
			Duration:    strPtr(s.duration),
			Type:        strPtr(s.courseType),
			Level:       strPtr(s.level),
			Description: strPtr(s.description),
		})
		if err != nil {
			log.Fatal().Err(err).Str("name", s.name).Msg("Failed to create course")
		}
		created++
		fmt.Printf("Created %q with ID: %d\n", s.name, course.ID)
	}

	fmt.Printf("Done. %d created, %d skipped.\n", created, len(samples)-created)
}

func strPtr(s string) *string { return &s }
