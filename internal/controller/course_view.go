package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
)

// State is where a course view stands with respect to enrollment
type State string

const (
	// StateUnknown means we haven't (successfully) asked the server yet
	StateUnknown State = "unknown"
	// StateNotEnrolled means the server confirmed there is no enrollment
	StateNotEnrolled State = "not_enrolled"
	// StateEnrolled means there is an enrollment and lesson content is open
	StateEnrolled State = "enrolled"
)

var (
	// ErrViewClosed is returned by every operation after Close - a response
	// landing on an unmounted view must be a no-op, not a crash
	ErrViewClosed = errors.New("course view is closed")

	// ErrNotStudent rejects enrollment operations from non-student sessions
	ErrNotStudent = errors.New("only students can enroll in courses")

	// ErrAlreadyEnrolled rejects a second enroll on the same course
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	// ErrNotEnrolled rejects lesson operations before enrollment is confirmed
	ErrNotEnrolled = errors.New("not enrolled in this course")

	// ErrUnknownLesson rejects toggles for lessons the course doesn't have
	ErrUnknownLesson = errors.New("lesson does not belong to this course")
)

// CourseAPI is the slice of the gateway a course view needs
type CourseAPI interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetMyEnrollment(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error)
	Enroll(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error)
	CompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) error
	UncompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) error
}

// CourseView is the per-course-view state machine: it loads the course and
// the viewer's enrollment, exposes enroll and lesson-toggle operations, and
// derives progress from the completed set.
//
// All operations hold the view's lock for their full duration, network call
// included. That serializes mutations (a toggle only starts once the previous
// outcome has been applied) and means the completed set can never interleave
// into an inconsistent shape.
type CourseView struct {
	mu     sync.Mutex
	closed bool

	api      CourseAPI
	notifier notify.Notifier

	courseID uuid.UUID
	viewer   *models.Identity // nil when anonymous

	course       *models.Course
	state        State
	enrollmentID uuid.UUID
	completed    map[uuid.UUID]bool
	selected     *models.Lesson // local-only UI state, never synchronized
}

// NewCourseView creates a view for one course as seen by one viewer.
// Call Load before anything else.
func NewCourseView(api CourseAPI, notifier notify.Notifier, courseID uuid.UUID, viewer *models.Identity) *CourseView {
	return &CourseView{
		api:       api,
		notifier:  notifier,
		courseID:  courseID,
		viewer:    viewer,
		state:     StateUnknown,
		completed: make(map[uuid.UUID]bool),
	}
}

// Load is the mount step: fetch the course, then (for students) the
// enrollment. The course fetch comes first on purpose - if the course itself
// is gone we fail the mount instead of masking it as "not enrolled".
//
// A 404 on the enrollment lookup is the expected never-enrolled signal and
// produces no failure notification. Any other enrollment failure leaves the
// state Unknown and reports it.
func (v *CourseView) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}

	course, err := v.api.GetCourse(ctx, v.courseID)
	if err != nil {
		v.notifier.Error("Could not load course", gateway.ServerMessage(err, "The course could not be fetched."))
		return fmt.Errorf("failed to load course %s: %w", v.courseID, err)
	}
	v.course = course

	if v.viewer == nil || v.viewer.Role != models.RoleStudent {
		// nothing to look up - enrollment only exists for students
		v.state = StateNotEnrolled
		return nil
	}

	enrollment, err := v.api.GetMyEnrollment(ctx, v.courseID)
	if err != nil {
		if gateway.IsNotFound(err) {
			// expected signal for "never enrolled" - not a failure
			v.state = StateNotEnrolled
			return nil
		}
		// stay Unknown; the shell can retry the mount
		log.Printf("Error checking enrollment for course %s: %v", v.courseID, err)
		v.notifier.Error("Could not check enrollment", gateway.ServerMessage(err, "Enrollment status is unavailable right now."))
		return fmt.Errorf("failed to check enrollment: %w", err)
	}

	v.becomeEnrolled(enrollment)
	return nil
}

// becomeEnrolled applies a confirmed enrollment: completed set from the
// server, first lesson selected (content opens once enrollment is confirmed)
func (v *CourseView) becomeEnrolled(enrollment *models.Enrollment) {
	v.state = StateEnrolled
	v.enrollmentID = enrollment.ID

	v.completed = make(map[uuid.UUID]bool, len(enrollment.CompletedLessons))
	for _, lessonID := range enrollment.CompletedLessons {
		v.completed[lessonID] = true
	}

	if v.selected == nil && len(v.course.Lessons) > 0 {
		v.selected = &v.course.Lessons[0]
	}
}

// Enroll signs the viewer up for this course. Valid only for a student
// looking at a course they're confirmed not enrolled in.
func (v *CourseView) Enroll(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}

	if v.viewer == nil || v.viewer.Role != models.RoleStudent {
		v.notifier.Error("Access denied", "Only students can enroll in courses")
		return ErrNotStudent
	}
	if v.state == StateEnrolled {
		return ErrAlreadyEnrolled
	}
	if v.state != StateNotEnrolled {
		// still Unknown - don't enroll on top of an unconfirmed status
		return fmt.Errorf("enrollment status not confirmed yet")
	}

	enrollment, err := v.api.Enroll(ctx, v.courseID)
	if err != nil {
		v.notifier.Error("Enrollment failed", gateway.ServerMessage(err, "Something went wrong while enrolling."))
		return fmt.Errorf("enroll failed: %w", err)
	}

	// fresh enrollment starts with nothing completed, whatever the payload says
	enrollment.CompletedLessons = nil
	v.becomeEnrolled(enrollment)

	title := "the course"
	if v.course != nil {
		title = v.course.Title
	}
	v.notifier.Success("Enrollment successful!", fmt.Sprintf("You are now enrolled in %s", title))
	return nil
}

// ToggleLesson flips one lesson's completion. The direction comes from the
// current membership of the completed set, the server mutation runs first,
// and only a confirmed success mutates the local set - no optimistic
// pre-flip. Two consecutive successful calls land back on the original
// membership.
func (v *CourseView) ToggleLesson(ctx context.Context, lessonID uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}
	if v.state != StateEnrolled {
		return ErrNotEnrolled
	}
	if v.course == nil || v.course.LessonByID(lessonID) == nil {
		return ErrUnknownLesson
	}

	alreadyCompleted := v.completed[lessonID]

	var err error
	if alreadyCompleted {
		err = v.api.UncompleteLesson(ctx, v.enrollmentID, lessonID)
	} else {
		err = v.api.CompleteLesson(ctx, v.enrollmentID, lessonID)
	}
	if err != nil {
		// local set stays exactly as it was
		log.Printf("Error updating lesson %s: %v", lessonID, err)
		v.notifier.Error("Error saving progress", gateway.ServerMessage(err, "Could not update lesson progress."))
		return fmt.Errorf("lesson toggle failed: %w", err)
	}

	if alreadyCompleted {
		delete(v.completed, lessonID)
		v.notifier.Success("Lesson unmarked", "Progress reverted successfully.")
	} else {
		v.completed[lessonID] = true
		v.notifier.Success("Lesson completed!", "Progress saved successfully.")
	}
	return nil
}

// SelectLesson changes which lesson is open. Purely local UI state, only
// meaningful once enrolled (content is gated behind enrollment).
func (v *CourseView) SelectLesson(lessonID uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}
	if v.state != StateEnrolled {
		return ErrNotEnrolled
	}

	lesson := v.course.LessonByID(lessonID)
	if lesson == nil {
		return ErrUnknownLesson
	}

	v.selected = lesson
	return nil
}

// Progress recomputes the completion percentage on every read - it is never
// stored, so it can't go stale
func (v *CourseView) Progress() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.course == nil {
		return 0
	}
	return models.ProgressFor(v.completed, v.course.Lessons)
}

// Close marks the view unmounted. Every operation afterwards is a no-op
// returning ErrViewClosed.
func (v *CourseView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// Snapshot is what the shell renders for a course view
type Snapshot struct {
	Course           *models.Course `json:"course"`
	State            State          `json:"state"`
	Progress         float64        `json:"progress"`
	CompletedLessons []uuid.UUID    `json:"completedLessons"`
	SelectedLesson   *models.Lesson `json:"selectedLesson,omitempty"`
}

// Snapshot returns a copy of the view's current state for rendering
func (v *CourseView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		Course: v.course,
		State:  v.state,
	}

	if v.course != nil {
		snap.Progress = models.ProgressFor(v.completed, v.course.Lessons)
		// report completed ids in lesson (authoring) order so the shell
		// renders them stably
		for _, lesson := range v.course.Lessons {
			if v.completed[lesson.ID] {
				snap.CompletedLessons = append(snap.CompletedLessons, lesson.ID)
			}
		}
	}
	if v.selected != nil {
		copied := *v.selected
		snap.SelectedLesson = &copied
	}
	return snap
}
