package models

import (
	"github.com/google/uuid"
)

// ContentType says what kind of material a lesson is
type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentPDF   ContentType = "pdf"
	ContentAudio ContentType = "audio"
	ContentText  ContentType = "text"
)

// Course represents a marketplace course as served by the remote catalog.
// The client only ever holds a read-through copy of this - the marketplace
// owns the data and we can re-fetch it at any time.
type Course struct {
	ID uuid.UUID `json:"id"` // unique identifier

	Title       string `json:"title" validate:"required"` // course name
	Description string `json:"description,omitempty"`     // what the course is about

	InstructorName string `json:"instructorName,omitempty"` // who teaches it
	Category       string `json:"category,omitempty"`
	Level          string `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`

	Price     float64 `json:"price,omitempty"`
	Duration  string  `json:"duration,omitempty"` // e.g. "12 hours"
	Thumbnail string  `json:"thumbnail,omitempty"`

	Lessons []Lesson `json:"lessons,omitempty" validate:"dive"` // ordered, authoring order

	// marketplace-side aggregates
	IsApproved       bool    `json:"isApproved"`
	EnrolledStudents int     `json:"enrolledStudents,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
}

// LessonByID finds a lesson in the course, or nil if it isn't there
func (c *Course) LessonByID(id uuid.UUID) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i]
		}
	}
	return nil
}

// Lesson is one unit of course content. Ordering is significant and comes
// from the server - the client must never reorder lessons locally.
type Lesson struct {
	ID uuid.UUID `json:"id"` // unique identifier

	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`

	Type     ContentType `json:"type,omitempty" validate:"omitempty,oneof=video pdf audio text"`
	URL      string      `json:"url,omitempty"` // where the content lives
	Duration string      `json:"duration,omitempty"`

	Order int `json:"order"` // position in authoring order
}

// CreateCourseInput is what an instructor submits when creating a course
type CreateCourseInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Duration    string  `json:"duration,omitempty"`
	Price       float64 `json:"price,omitempty" validate:"gte=0"`
	Thumbnail   string  `json:"thumbnail,omitempty"`

	Lessons []CreateLessonInput `json:"lessons" validate:"min=1,dive"` // at least one lesson
}

// CreateLessonInput is one lesson inside a course creation request
type CreateLessonInput struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description,omitempty"`
	Type        ContentType `json:"type" validate:"required,oneof=video pdf audio text"`
	URL         string      `json:"url" validate:"required"`
	Duration    string      `json:"duration,omitempty"`
	Order       int         `json:"order"` // assigned client-side in authoring order
}
