package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// StudentAPI is the slice of the gateway the student dashboard needs
type StudentAPI interface {
	ListMyEnrollments(ctx context.Context) ([]models.Enrollment, error)
}

// StudentService builds the learner's dashboard from their enrollments
type StudentService struct {
	API StudentAPI
}

// NewStudentService creates the service with its gateway dependency
func NewStudentService(api StudentAPI) *StudentService {
	return &StudentService{API: api}
}

// StudentStats are the aggregate numbers shown at the top of the dashboard
type StudentStats struct {
	EnrolledCourses  int     `json:"enrolled_courses"`
	CompletedCourses int     `json:"completed_courses"` // progress at 100
	LearningHours    int     `json:"learning_hours"`
	AvgProgress      float64 `json:"avg_progress"`
}

// StudentDashboard is the full dashboard payload
type StudentDashboard struct {
	Enrollments []models.Enrollment `json:"enrollments"`
	Stats       StudentStats        `json:"stats"`
}

// Dashboard fetches the student's enrollments and derives the stats.
// Progress per enrollment is recomputed here from the completed set and the
// course's lessons, not read off whatever snapshot the server stored.
func (s *StudentService) Dashboard(ctx context.Context) (*StudentDashboard, error) {
	enrollments, err := s.API.ListMyEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}

	stats := StudentStats{EnrolledCourses: len(enrollments)}
	totalProgress := 0.0

	for i := range enrollments {
		e := &enrollments[i]

		if e.Course != nil {
			e.Progress = recomputeProgress(e)
			stats.LearningHours += parseHours(e.Course.Duration)
		}

		if e.Progress >= 100 {
			stats.CompletedCourses++
		}
		totalProgress += e.Progress
	}

	if len(enrollments) > 0 {
		stats.AvgProgress = totalProgress / float64(len(enrollments))
	}

	return &StudentDashboard{Enrollments: enrollments, Stats: stats}, nil
}

// recomputeProgress rebuilds an enrollment's percentage from its completed
// set and the course lesson list
func recomputeProgress(e *models.Enrollment) float64 {
	completed := make(map[uuid.UUID]bool, len(e.CompletedLessons))
	for _, id := range e.CompletedLessons {
		completed[id] = true
	}
	return models.ProgressFor(completed, e.Course.Lessons)
}

// parseHours pulls the number out of a duration like "12 hours".
// Anything unparseable counts as zero - this only feeds a dashboard stat.
func parseHours(duration string) int {
	fields := strings.Fields(duration)
	if len(fields) == 0 {
		return 0
	}

	hours, err := strconv.Atoi(fields[0])
	if err != nil {
		log.Printf("Warning: could not parse course duration %q", duration)
		return 0
	}
	return hours
}
