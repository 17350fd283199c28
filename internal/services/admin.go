package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// AdminAPI is the slice of the gateway the admin dashboard needs
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]models.Identity, error)
	ListAllCourses(ctx context.Context) ([]models.Course, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ApproveCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	DisapproveCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

// AdminService manages the platform-wide user and course lists. Same rule as
// the instructor list: local copies only change after the server confirms.
type AdminService struct {
	mu       sync.Mutex
	users    []models.Identity
	courses  []models.Course
	api      AdminAPI
	notifier notify.Notifier
}

// NewAdminService creates the service with its gateway dependency
func NewAdminService(api AdminAPI, notifier notify.Notifier) *AdminService {
	return &AdminService{api: api, notifier: notifier}
}

// AdminStats are the aggregate numbers shown at the top of the dashboard
type AdminStats struct {
	TotalUsers      int `json:"total_users"`
	TotalCourses    int `json:"total_courses"`
	PendingApproval int `json:"pending_approval"`
	Students        int `json:"students"`
	Instructors     int `json:"instructors"`
}

// Load refreshes both lists from the server
func (s *AdminService) Load(ctx context.Context) error {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	courses, err := s.api.ListAllCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load courses: %w", err)
	}

	s.mu.Lock()
	s.users = users
	s.courses = courses
	s.mu.Unlock()
	return nil
}

// Users returns the current local copy of the user list
func (s *AdminService) Users() []models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Identity, len(s.users))
	copy(out, s.users)
	return out
}

// Courses returns the current local copy of the course list
func (s *AdminService) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Stats derives the dashboard numbers from the local lists
func (s *AdminService) Stats() AdminStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := AdminStats{
		TotalUsers:   len(s.users),
		TotalCourses: len(s.courses),
	}
	for _, user := range s.users {
		switch user.Role {
		case models.RoleStudent:
			stats.Students++
		case models.RoleInstructor:
			stats.Instructors++
		}
	}
	for _, course := range s.courses {
		if !course.IsApproved {
			stats.PendingApproval++
		}
	}
	return stats
}

// DeleteUser removes a user account. The local list only changes after the
// server confirms.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		log.Printf("Error deleting user %s: %v", id, err)
		s.notifier.Error("Could not delete user", gateway.ServerMessage(err, "The user could not be deleted."))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.mu.Lock()
	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("User deleted", "The account has been removed")
	return nil
}

// ToggleCourseApproval flips a course between approved and pending. The
// endpoint is chosen from the course's current local flag and the local entry
// is replaced with the server's returned copy, so the two can't drift.
func (s *AdminService) ToggleCourseApproval(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	s.mu.Lock()
	var current *models.Course
	for i := range s.courses {
		if s.courses[i].ID == id {
			current = &s.courses[i]
			break
		}
	}
	if current == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("course %s is not in the admin list", id)
	}
	approved := current.IsApproved
	s.mu.Unlock()

	var updated *models.Course
	var err error
	if approved {
		updated, err = s.api.DisapproveCourse(ctx, id)
	} else {
		updated, err = s.api.ApproveCourse(ctx, id)
	}
	if err != nil {
		log.Printf("Error toggling approval for course %s: %v", id, err)
		s.notifier.Error("Could not update course", gateway.ServerMessage(err, "The approval status could not be changed."))
		return nil, fmt.Errorf("failed to toggle approval: %w", err)
	}

	s.mu.Lock()
	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	if updated.IsApproved {
		s.notifier.Success("Course approved", fmt.Sprintf("%s is now live", updated.Title))
	} else {
		s.notifier.Success("Course unpublished", fmt.Sprintf("%s is no longer listed", updated.Title))
	}
	return updated, nil
}

// DeleteCourse removes any course from the platform
func (s *AdminService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.api.DeleteCourse(ctx, id); err != nil {
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

	s.notifier.Success("Course deleted", "The course has been removed from the platform")
	return nil
}
