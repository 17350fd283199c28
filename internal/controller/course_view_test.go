package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCourseAPI scripts the marketplace's answers for view tests
type fakeCourseAPI struct {
	course        *models.Course
	courseErr     error
	enrollment    *models.Enrollment
	enrollmentErr error
	enrollResult  *models.Enrollment
	enrollErr     error
	toggleErr     error

	completeCalls   int
	uncompleteCalls int
}

func (f *fakeCourseAPI) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if f.courseErr != nil {
		return nil, f.courseErr
	}
	return f.course, nil
}

func (f *fakeCourseAPI) GetMyEnrollment(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error) {
	if f.enrollmentErr != nil {
		return nil, f.enrollmentErr
	}
	return f.enrollment, nil
}

func (f *fakeCourseAPI) Enroll(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error) {
	if f.enrollErr != nil {
		return nil, f.enrollErr
	}
	return f.enrollResult, nil
}

func (f *fakeCourseAPI) CompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.completeCalls++
	return nil
}

func (f *fakeCourseAPI) UncompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.uncompleteCalls++
	return nil
}

func twoLessonCourse() *models.Course {
	return &models.Course{
		ID:    uuid.New(),
		Title: "Intro to Gardening",
		Lessons: []models.Lesson{
			{ID: uuid.New(), Title: "Soil", Order: 1},
			{ID: uuid.New(), Title: "Seeds", Order: 2},
		},
	}
}

func student() *models.Identity {
	return &models.Identity{
		ID:    uuid.New(),
		Email: "student@example.com",
		Name:  "Test Student",
		Role:  models.RoleStudent,
		Token: "tok",
	}
}

func notFound() error {
	return &gateway.APIError{Status: 404, Message: "no enrollment"}
}

func TestLoadNeverEnrolled(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course, enrollmentErr: notFound()}
	center := notify.NewCenter()

	view := NewCourseView(api, center, course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	snap := view.Snapshot()
	assert.Equal(t, StateNotEnrolled, snap.State)
	// a 404 is the expected signal, not a failure worth a toast
	assert.Empty(t, center.Drain())
}

func TestLoadEnrollmentCheckFailureStaysUnknown(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course, enrollmentErr: errors.New("connection refused")}
	center := notify.NewCenter()

	view := NewCourseView(api, center, course.ID, student())
	require.Error(t, view.Load(context.Background()))

	snap := view.Snapshot()
	assert.Equal(t, StateUnknown, snap.State)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindError, toasts[0].Kind)
}

func TestLoadMissingCourseFailsMount(t *testing.T) {
	api := &fakeCourseAPI{courseErr: notFound()}
	center := notify.NewCenter()

	view := NewCourseView(api, center, uuid.New(), student())
	require.Error(t, view.Load(context.Background()))
	require.Len(t, center.Drain(), 1)
}

func TestLoadExistingEnrollment(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course: course,
		enrollment: &models.Enrollment{
			ID:               uuid.New(),
			CourseID:         course.ID,
			CompletedLessons: []uuid.UUID{course.Lessons[0].ID},
		},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	snap := view.Snapshot()
	assert.Equal(t, StateEnrolled, snap.State)
	assert.Equal(t, []uuid.UUID{course.Lessons[0].ID}, snap.CompletedLessons)
	assert.InDelta(t, 50.0, snap.Progress, 0.001)
	// first lesson opens by default once enrolled
	require.NotNil(t, snap.SelectedLesson)
	assert.Equal(t, course.Lessons[0].ID, snap.SelectedLesson.ID)
}

func TestLoadNonStudentSkipsEnrollmentLookup(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course, enrollmentErr: errors.New("should not be called")}

	viewer := student()
	viewer.Role = models.RoleInstructor

	view := NewCourseView(api, notify.NewCenter(), course.ID, viewer)
	require.NoError(t, view.Load(context.Background()))
	assert.Equal(t, StateNotEnrolled, view.Snapshot().State)
}

func TestEnrollSuccess(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:        course,
		enrollmentErr: notFound(),
		enrollResult: &models.Enrollment{
			ID:       uuid.New(),
			CourseID: course.ID,
			// a sloppy server echoing completions must not survive a fresh enroll
			CompletedLessons: []uuid.UUID{course.Lessons[1].ID},
		},
	}
	center := notify.NewCenter()

	view := NewCourseView(api, center, course.ID, student())
	require.NoError(t, view.Load(context.Background()))
	require.NoError(t, view.Enroll(context.Background()))

	snap := view.Snapshot()
	assert.Equal(t, StateEnrolled, snap.State)
	assert.Empty(t, snap.CompletedLessons)
	assert.Zero(t, snap.Progress)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindSuccess, toasts[0].Kind)
}

func TestEnrollRejectedForNonStudent(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course}
	center := notify.NewCenter()

	viewer := student()
	viewer.Role = models.RoleAdmin

	view := NewCourseView(api, center, course.ID, viewer)
	require.NoError(t, view.Load(context.Background()))
	center.Drain()

	err := view.Enroll(context.Background())
	assert.ErrorIs(t, err, ErrNotStudent)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindError, toasts[0].Kind)
}

func TestEnrollFailureKeepsNotEnrolled(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:        course,
		enrollmentErr: notFound(),
		enrollErr:     &gateway.APIError{Status: 500, Message: "course is full"},
	}
	center := notify.NewCenter()

	view := NewCourseView(api, center, course.ID, student())
	require.NoError(t, view.Load(context.Background()))
	require.Error(t, view.Enroll(context.Background()))

	assert.Equal(t, StateNotEnrolled, view.Snapshot().State)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0].Detail, "course is full")
}

func TestToggleLessonRoundTrip(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:     course,
		enrollment: &models.Enrollment{ID: uuid.New(), CourseID: course.ID},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	lessonID := course.Lessons[0].ID

	// first toggle completes
	require.NoError(t, view.ToggleLesson(context.Background(), lessonID))
	assert.Equal(t, 1, api.completeCalls)
	assert.InDelta(t, 50.0, view.Progress(), 0.001)

	// second toggle reverts, landing back where we started
	require.NoError(t, view.ToggleLesson(context.Background(), lessonID))
	assert.Equal(t, 1, api.uncompleteCalls)
	assert.Zero(t, view.Progress())
	assert.Empty(t, view.Snapshot().CompletedLessons)
}

func TestEnrollThenWorkThroughCourse(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:        course,
		enrollmentErr: notFound(),
		enrollResult:  &models.Enrollment{ID: uuid.New(), CourseID: course.ID},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	require.NoError(t, view.Enroll(context.Background()))
	assert.Zero(t, view.Progress())

	require.NoError(t, view.ToggleLesson(context.Background(), course.Lessons[0].ID))
	assert.InDelta(t, 50.0, view.Progress(), 0.001)

	require.NoError(t, view.ToggleLesson(context.Background(), course.Lessons[1].ID))
	assert.InDelta(t, 100.0, view.Progress(), 0.001)

	require.NoError(t, view.ToggleLesson(context.Background(), course.Lessons[0].ID))
	assert.InDelta(t, 50.0, view.Progress(), 0.001)
}

func TestToggleLessonFailureLeavesLocalStateUnchanged(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course: course,
		enrollment: &models.Enrollment{
			ID:               uuid.New(),
			CourseID:         course.ID,
			CompletedLessons: []uuid.UUID{course.Lessons[0].ID},
		},
		toggleErr: errors.New("timeout"),
	}
	center := notify.NewCenter()

	view := NewCourseView(api, center, course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	require.Error(t, view.ToggleLesson(context.Background(), course.Lessons[0].ID))

	// no optimistic flip - the completed set is exactly what the server confirmed
	snap := view.Snapshot()
	assert.Equal(t, []uuid.UUID{course.Lessons[0].ID}, snap.CompletedLessons)
	assert.InDelta(t, 50.0, snap.Progress, 0.001)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindError, toasts[0].Kind)
}

func TestToggleLessonRequiresEnrollment(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course, enrollmentErr: notFound()}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	err := view.ToggleLesson(context.Background(), course.Lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestToggleUnknownLessonRejected(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:     course,
		enrollment: &models.Enrollment{ID: uuid.New(), CourseID: course.ID},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	err := view.ToggleLesson(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownLesson)
	assert.Equal(t, 0, api.completeCalls)
}

func TestProgressWithNoLessonsIsZero(t *testing.T) {
	course := &models.Course{ID: uuid.New(), Title: "Empty Course"}
	api := &fakeCourseAPI{
		course:     course,
		enrollment: &models.Enrollment{ID: uuid.New(), CourseID: course.ID},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))
	assert.Zero(t, view.Progress())
}

func TestClosedViewIsInert(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:     course,
		enrollment: &models.Enrollment{ID: uuid.New(), CourseID: course.ID},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))
	view.Close()

	assert.ErrorIs(t, view.Load(context.Background()), ErrViewClosed)
	assert.ErrorIs(t, view.Enroll(context.Background()), ErrViewClosed)
	assert.ErrorIs(t, view.ToggleLesson(context.Background(), course.Lessons[0].ID), ErrViewClosed)
	assert.ErrorIs(t, view.SelectLesson(course.Lessons[0].ID), ErrViewClosed)
	assert.Equal(t, 0, api.completeCalls)
}

func TestSelectLesson(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{
		course:     course,
		enrollment: &models.Enrollment{ID: uuid.New(), CourseID: course.ID},
	}

	view := NewCourseView(api, notify.NewCenter(), course.ID, student())
	require.NoError(t, view.Load(context.Background()))

	require.NoError(t, view.SelectLesson(course.Lessons[1].ID))
	assert.Equal(t, course.Lessons[1].ID, view.Snapshot().SelectedLesson.ID)

	assert.ErrorIs(t, view.SelectLesson(uuid.New()), ErrUnknownLesson)
}

func TestRegistryReusesViewForSameViewer(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course, enrollmentErr: notFound()}
	registry := NewRegistry(api, notify.NewCenter())

	viewer := student()
	first := registry.ViewFor(course.ID, viewer)
	second := registry.ViewFor(course.ID, viewer)
	assert.Same(t, first, second)
}

func TestRegistryReplacesViewAfterViewerChange(t *testing.T) {
	course := twoLessonCourse()
	api := &fakeCourseAPI{course: course, enrollmentErr: notFound()}
	registry := NewRegistry(api, notify.NewCenter())

	first := registry.ViewFor(course.ID, student())
	second := registry.ViewFor(course.ID, student()) // different identity id

	assert.NotSame(t, first, second)
	// the stale view must be closed so late responses are dropped
	assert.ErrorIs(t, first.Enroll(context.Background()), ErrViewClosed)
}

func TestRegistryResetClosesEverything(t *testing.T) {
	api := &fakeCourseAPI{course: twoLessonCourse(), enrollmentErr: notFound()}
	registry := NewRegistry(api, notify.NewCenter())

	courseID := uuid.New()
	view := registry.ViewFor(courseID, student())
	registry.Reset()

	assert.ErrorIs(t, view.Load(context.Background()), ErrViewClosed)
	// asking again after reset hands out a fresh view
	fresh := registry.ViewFor(courseID, student())
	assert.NotSame(t, view, fresh)
}
