package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// lessonRef is the body of the complete/uncomplete mutations
type lessonRef struct {
	LessonID uuid.UUID `json:"lessonId"`
}

// GetMyEnrollment looks up the signed-in student's enrollment for a course.
// A 404 here means "never enrolled" - callers check with IsNotFound.
func (c *Client) GetMyEnrollment(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Get("/student/enrollments/" + courseID.String())
	if err := c.checkResponse(resp, err, "get enrollment"); err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	if err := c.decode(resp, &enrollment, "get enrollment"); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListMyEnrollments fetches everything the student is enrolled in,
// courses included
func (c *Client) ListMyEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Get("/student/enrollments")
	if err := c.checkResponse(resp, err, "list enrollments"); err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := c.decode(resp, &enrollments, "list enrollments"); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// Enroll signs the student up for a course and returns the new enrollment
func (c *Client) Enroll(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error) {
	resp, err := c.authed().
		SetContext(ctx).
		Post("/student/enroll/" + courseID.String())
	if err := c.checkResponse(resp, err, "enroll"); err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	if err := c.decode(resp, &enrollment, "enroll"); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// CompleteLesson marks one lesson finished on the server
func (c *Client) CompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) error {
	resp, err := c.authed().
		SetContext(ctx).
		SetBody(lessonRef{LessonID: lessonID}).
		Put("/student/enrollments/" + enrollmentID.String() + "/complete-lesson")
	return c.checkResponse(resp, err, "complete lesson")
}

// UncompleteLesson reverts a lesson to unfinished on the server
func (c *Client) UncompleteLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) error {
	resp, err := c.authed().
		SetContext(ctx).
		SetBody(lessonRef{LessonID: lessonID}).
		Put("/student/enrollments/" + enrollmentID.String() + "/uncomplete-lesson")
	return c.checkResponse(resp, err, "uncomplete lesson")
}
