package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// ListMyCourses fetches the courses owned by the signed-in instructor
func (c *Client) ListMyCourses(ctx context.Context) ([]models.Course, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Get("/instructor/courses")
	if err := c.checkResponse(resp, err, "list instructor courses"); err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := c.decode(resp, &courses, "list instructor courses"); err != nil {
		return nil, err
	}
	return courses, nil
}

// CreateCourse submits a new course and returns the server's copy of it
func (c *Client) CreateCourse(ctx context.Context, input models.CreateCourseInput) (*models.Course, error) {
	resp, err := c.authed().
		SetContext(ctx).
		SetBody(input).
		Post("/instructor/courses")
	if err := c.checkResponse(resp, err, "create course"); err != nil {
		return nil, err
	}

	var course models.Course
	if err := c.decode(resp, &course, "create course"); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteMyCourse removes one of the instructor's own courses. The server
// decides ownership - deleting somebody else's course gets rejected there.
func (c *Client) DeleteMyCourse(ctx context.Context, courseID uuid.UUID) error {
	resp, err := c.authed().
		SetContext(ctx).
		Delete("/instructor/courses/" + courseID.String())
	return c.checkResponse(resp, err, "delete instructor course")
}
