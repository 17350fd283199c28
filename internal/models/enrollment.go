package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment relates the signed-in student to one course.
// Created by an explicit enroll action, mutated by lesson completion toggles,
// never deleted from the client side.
type Enrollment struct {
	ID uuid.UUID `json:"id"` // unique identifier

	CourseID uuid.UUID `json:"courseId"`

	// ids of lessons the student has finished
	CompletedLessons []uuid.UUID `json:"completedLessons,omitempty"`

	// server-side progress snapshot; the client recomputes its own from the
	// completed set rather than trusting this to be fresh
	Progress float64 `json:"progress,omitempty"`

	EnrolledAt time.Time `json:"enrolledAt,omitempty"`

	Course *Course `json:"course,omitempty"` // populated on the dashboard listing
}

// ProgressFor recomputes the completion percentage against a course's lesson
// list: completed lessons that actually belong to the course, over the total.
// An empty course counts as zero progress (no dividing by zero).
func ProgressFor(completed map[uuid.UUID]bool, lessons []Lesson) float64 {
	if len(lessons) == 0 {
		return 0
	}

	done := 0
	for _, lesson := range lessons {
		if completed[lesson.ID] {
			done++
		}
	}

	pct := float64(done) / float64(len(lessons)) * 100
	// clamp just in case - the intersection above should already keep us in range
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
