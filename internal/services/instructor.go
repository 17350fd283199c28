package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// InstructorAPI is the slice of the gateway the instructor dashboard needs
type InstructorAPI interface {
	ListMyCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, input models.CreateCourseInput) (*models.Course, error)
	DeleteMyCourse(ctx context.Context, id uuid.UUID) error
}

// InstructorService manages the instructor's own course list. The list is a
// local working copy of remote state: it only ever changes after the server
// has confirmed the matching mutation.
type InstructorService struct {
	mu       sync.Mutex
	courses  []models.Course
	api      InstructorAPI
	notifier notify.Notifier
	validate *validator.Validate
}

// NewInstructorService creates the service with its gateway dependency
func NewInstructorService(api InstructorAPI, notifier notify.Notifier) *InstructorService {
	return &InstructorService{
		api:      api,
		notifier: notifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// InstructorStats are the aggregate numbers shown at the top of the dashboard
type InstructorStats struct {
	TotalCourses  int     `json:"total_courses"`
	TotalStudents int     `json:"total_students"`
	Approved      int     `json:"approved"`
	AvgRating     float64 `json:"avg_rating"`
}

// LoadCourses refreshes the local list from the server
func (s *InstructorService) LoadCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.api.ListMyCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load instructor courses: %w", err)
	}

	s.mu.Lock()
	s.courses = courses
	s.mu.Unlock()

	return courses, nil
}

// Courses returns the current local copy of the instructor's list
func (s *InstructorService) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Stats derives the dashboard numbers from the local list
func (s *InstructorService) Stats() InstructorStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := InstructorStats{TotalCourses: len(s.courses)}
	totalRating := 0.0
	rated := 0

	for _, course := range s.courses {
		stats.TotalStudents += course.EnrolledStudents
		if course.IsApproved {
			stats.Approved++
		}
		if course.Rating > 0 {
			totalRating += course.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AvgRating = totalRating / float64(rated)
	}
	return stats
}

// CreateCourse validates the draft, assigns lesson ordering, submits it and
// appends the server's copy to the local list on success
func (s *InstructorService) CreateCourse(ctx context.Context, input models.CreateCourseInput) (*models.Course, error) {
	if err := s.validate.Struct(input); err != nil {
		s.notifier.Error("Invalid course", "Please fill in all required fields and add at least one lesson")
		return nil, fmt.Errorf("course input invalid: %w", err)
	}

	// lesson order comes from the authoring sequence, the server doesn't guess
	for i := range input.Lessons {
		input.Lessons[i].Order = i + 1
	}

	course, err := s.api.CreateCourse(ctx, input)
	if err != nil {
		log.Printf("Error creating course: %v", err)
		s.notifier.Error("Could not create course", gateway.ServerMessage(err, "The course could not be submitted."))
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.mu.Lock()
	s.courses = append(s.courses, *course)
	s.mu.Unlock()

	s.notifier.Success("Course created!", fmt.Sprintf("%s has been submitted for approval", course.Title))
	return course, nil
}

// DeleteCourse removes one of the instructor's own courses. On server
// rejection the local list is left exactly as it was.
func (s *InstructorService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.api.DeleteMyCourse(ctx, id); err != nil {
		log.Printf("Error deleting course %s: %v", id, err)
		s.notifier.Error("Could not delete course", gateway.ServerMessage(err, "The course could not be deleted."))
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.mu.Lock()
	for i, course := range s.courses {
		if course.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Course deleted", "The course has been removed")
	return nil
}
