package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/gateway"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstructorAPI struct {
	courses   []models.Course
	listErr   error
	created   *models.Course
	createErr error
	deleteErr error

	lastInput models.CreateCourseInput
}

func (f *fakeInstructorAPI) ListMyCourses(ctx context.Context) ([]models.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.courses, nil
}

func (f *fakeInstructorAPI) CreateCourse(ctx context.Context, input models.CreateCourseInput) (*models.Course, error) {
	f.lastInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeInstructorAPI) DeleteMyCourse(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

func validDraft() models.CreateCourseInput {
	return models.CreateCourseInput{
		Title:       "Go From Scratch",
		Description: "A practical introduction",
		Category:    "Programming",
		Level:       "Beginner",
		Lessons: []models.CreateLessonInput{
			{Title: "Hello", Type: models.ContentVideo, URL: "https://cdn/1"},
			{Title: "Types", Type: models.ContentVideo, URL: "https://cdn/2"},
		},
	}
}

func TestInstructorStats(t *testing.T) {
	api := &fakeInstructorAPI{courses: []models.Course{
		{ID: uuid.New(), Title: "A", IsApproved: true, EnrolledStudents: 10, Rating: 4},
		{ID: uuid.New(), Title: "B", IsApproved: false, EnrolledStudents: 5, Rating: 5},
		{ID: uuid.New(), Title: "C", IsApproved: true, EnrolledStudents: 0}, // unrated
	}}

	svc := NewInstructorService(api, notify.NewCenter())
	_, err := svc.LoadCourses(context.Background())
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, 3, stats.TotalCourses)
	assert.Equal(t, 15, stats.TotalStudents)
	assert.Equal(t, 2, stats.Approved)
	// unrated courses stay out of the average
	assert.InDelta(t, 4.5, stats.AvgRating, 0.001)
}

func TestCreateCourseAssignsLessonOrder(t *testing.T) {
	created := models.Course{ID: uuid.New(), Title: "Go From Scratch"}
	api := &fakeInstructorAPI{created: &created}
	svc := NewInstructorService(api, notify.NewCenter())

	_, err := svc.CreateCourse(context.Background(), validDraft())
	require.NoError(t, err)

	require.Len(t, api.lastInput.Lessons, 2)
	assert.Equal(t, 1, api.lastInput.Lessons[0].Order)
	assert.Equal(t, 2, api.lastInput.Lessons[1].Order)

	assert.Len(t, svc.Courses(), 1)
}

func TestCreateCourseRejectsInvalidDraft(t *testing.T) {
	api := &fakeInstructorAPI{}
	center := notify.NewCenter()
	svc := NewInstructorService(api, center)

	draft := validDraft()
	draft.Lessons = nil // at least one lesson required

	_, err := svc.CreateCourse(context.Background(), draft)
	require.Error(t, err)
	assert.Empty(t, svc.Courses())

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindError, toasts[0].Kind)
}

func TestDeleteCourseFailureLeavesListUnchanged(t *testing.T) {
	courseID := uuid.New()
	api := &fakeInstructorAPI{
		courses:   []models.Course{{ID: courseID, Title: "A"}},
		deleteErr: &gateway.APIError{Status: 409, Message: "students are enrolled"},
	}
	center := notify.NewCenter()
	svc := NewInstructorService(api, center)

	_, err := svc.LoadCourses(context.Background())
	require.NoError(t, err)

	require.Error(t, svc.DeleteCourse(context.Background(), courseID))
	assert.Len(t, svc.Courses(), 1)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0].Detail, "students are enrolled")
}

func TestDeleteCourseSuccessRemovesEntry(t *testing.T) {
	courseID := uuid.New()
	api := &fakeInstructorAPI{courses: []models.Course{
		{ID: courseID, Title: "A"},
		{ID: uuid.New(), Title: "B"},
	}}
	svc := NewInstructorService(api, notify.NewCenter())

	_, err := svc.LoadCourses(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(context.Background(), courseID))
	remaining := svc.Courses()
	require.Len(t, remaining, 1)
	assert.Equal(t, "B", remaining[0].Title)
}
