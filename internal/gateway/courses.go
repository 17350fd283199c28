package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// ListCourses fetches the public catalog. Anonymous-safe.
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/courses")
	if err := c.checkResponse(resp, err, "list courses"); err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := c.decode(resp, &courses, "list courses"); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse fetches one course including its nested lessons. Anonymous-safe.
func (c *Client) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/courses/" + id.String())
	if err := c.checkResponse(resp, err, "get course"); err != nil {
		return nil, err
	}

	var course models.Course
	if err := c.decode(resp, &course, "get course"); err != nil {
		return nil, err
	}
	return &course, nil
}
