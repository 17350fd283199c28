package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// ListUsers fetches every account on the platform. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.Identity, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Get("/admin/users")
	if err := c.checkResponse(resp, err, "list users"); err != nil {
		return nil, err
	}

	var users []models.Identity
	if err := c.decode(resp, &users, "list users"); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAllCourses fetches every course, approved or not. Admin only.
func (c *Client) ListAllCourses(ctx context.Context) ([]models.Course, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Get("/admin/courses")
	if err := c.checkResponse(resp, err, "list all courses"); err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := c.decode(resp, &courses, "list all courses"); err != nil {
		return nil, err
	}
	return courses, nil
}

// DeleteUser removes an account from the platform
func (c *Client) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	resp, err := c.authed().
		SetContext(ctx).
		Delete("/admin/users/" + userID.String())
	return c.checkResponse(resp, err, "delete user")
}

// ApproveCourse publishes a pending course and returns the updated copy
func (c *Client) ApproveCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	return c.setCourseApproval(ctx, courseID, "approve")
}

// DisapproveCourse pulls a course back to pending and returns the updated copy
func (c *Client) DisapproveCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	return c.setCourseApproval(ctx, courseID, "disapprove")
}

func (c *Client) setCourseApproval(ctx context.Context, courseID uuid.UUID, action string) (*models.Course, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Put("/admin/courses/" + courseID.String() + "/" + action)
	if err := c.checkResponse(resp, err, action+" course"); err != nil {
		return nil, err
	}

	var course models.Course
	if err := c.decode(resp, &course, action+" course"); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes any course from the platform. Admin only.
func (c *Client) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	resp, err := c.authed().
		SetContext(ctx).
		Delete("/admin/courses/" + courseID.String())
	return c.checkResponse(resp, err, "delete course")
}
