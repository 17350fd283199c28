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

type fakeAdminAPI struct {
	users   []models.Identity
	courses []models.Course

	deleteUserErr   error
	deleteCourseErr error
	approvalErr     error

	approveCalls    int
	disapproveCalls int
}

func (f *fakeAdminAPI) ListUsers(ctx context.Context) ([]models.Identity, error) {
	return f.users, nil
}

func (f *fakeAdminAPI) ListAllCourses(ctx context.Context) ([]models.Course, error) {
	return f.courses, nil
}

func (f *fakeAdminAPI) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return f.deleteUserErr
}

func (f *fakeAdminAPI) ApproveCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if f.approvalErr != nil {
		return nil, f.approvalErr
	}
	f.approveCalls++
	return &models.Course{ID: id, Title: "Toggled", IsApproved: true}, nil
}

func (f *fakeAdminAPI) DisapproveCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if f.approvalErr != nil {
		return nil, f.approvalErr
	}
	f.disapproveCalls++
	return &models.Course{ID: id, Title: "Toggled", IsApproved: false}, nil
}

func (f *fakeAdminAPI) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return f.deleteCourseErr
}

func loadedAdminService(t *testing.T, api *fakeAdminAPI) *AdminService {
	t.Helper()
	svc := NewAdminService(api, notify.NewCenter())
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestAdminStats(t *testing.T) {
	api := &fakeAdminAPI{
		users: []models.Identity{
			{ID: uuid.New(), Role: models.RoleStudent},
			{ID: uuid.New(), Role: models.RoleStudent},
			{ID: uuid.New(), Role: models.RoleInstructor},
			{ID: uuid.New(), Role: models.RoleAdmin},
		},
		courses: []models.Course{
			{ID: uuid.New(), IsApproved: true},
			{ID: uuid.New(), IsApproved: false},
		},
	}

	stats := loadedAdminService(t, api).Stats()
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 2, stats.Students)
	assert.Equal(t, 1, stats.Instructors)
	assert.Equal(t, 2, stats.TotalCourses)
	assert.Equal(t, 1, stats.PendingApproval)
}

func TestToggleApprovalPicksEndpointFromCurrentFlag(t *testing.T) {
	pending := uuid.New()
	live := uuid.New()
	api := &fakeAdminAPI{courses: []models.Course{
		{ID: pending, IsApproved: false},
		{ID: live, IsApproved: true},
	}}
	svc := loadedAdminService(t, api)

	updated, err := svc.ToggleCourseApproval(context.Background(), pending)
	require.NoError(t, err)
	assert.True(t, updated.IsApproved)
	assert.Equal(t, 1, api.approveCalls)

	updated, err = svc.ToggleCourseApproval(context.Background(), live)
	require.NoError(t, err)
	assert.False(t, updated.IsApproved)
	assert.Equal(t, 1, api.disapproveCalls)

	// local entries now carry the server's copies
	for _, course := range svc.Courses() {
		assert.Equal(t, "Toggled", course.Title)
	}
}

func TestToggleApprovalFailureLeavesListUnchanged(t *testing.T) {
	courseID := uuid.New()
	api := &fakeAdminAPI{
		courses:     []models.Course{{ID: courseID, Title: "Original", IsApproved: false}},
		approvalErr: &gateway.APIError{Status: 500, Message: "review backlog"},
	}
	svc := loadedAdminService(t, api)

	_, err := svc.ToggleCourseApproval(context.Background(), courseID)
	require.Error(t, err)

	courses := svc.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "Original", courses[0].Title)
	assert.False(t, courses[0].IsApproved)
}

func TestToggleApprovalUnknownCourse(t *testing.T) {
	svc := loadedAdminService(t, &fakeAdminAPI{})
	_, err := svc.ToggleCourseApproval(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestDeleteUserFailureLeavesListUnchanged(t *testing.T) {
	userID := uuid.New()
	api := &fakeAdminAPI{
		users:         []models.Identity{{ID: userID, Role: models.RoleStudent}},
		deleteUserErr: &gateway.APIError{Status: 403, Message: "cannot delete yourself"},
	}
	svc := loadedAdminService(t, api)

	require.Error(t, svc.DeleteUser(context.Background(), userID))
	assert.Len(t, svc.Users(), 1)
}

func TestDeleteUserSuccessRemovesEntry(t *testing.T) {
	userID := uuid.New()
	api := &fakeAdminAPI{users: []models.Identity{
		{ID: userID, Role: models.RoleStudent},
		{ID: uuid.New(), Role: models.RoleInstructor},
	}}
	svc := loadedAdminService(t, api)

	require.NoError(t, svc.DeleteUser(context.Background(), userID))
	assert.Len(t, svc.Users(), 1)
}

func TestAdminDeleteCourse(t *testing.T) {
	courseID := uuid.New()
	api := &fakeAdminAPI{courses: []models.Course{{ID: courseID}}}
	svc := loadedAdminService(t, api)

	require.NoError(t, svc.DeleteCourse(context.Background(), courseID))
	assert.Empty(t, svc.Courses())
}
