package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/learnsphere/marketplace-companion/internal/models"
)

// CatalogAPI is the slice of the gateway the catalog needs
type CatalogAPI interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

// CatalogService serves the public course catalog. Everything here is an
// anonymous-safe read-through of remote state - nothing is kept as a local
// master copy, re-fetching is always safe.
type CatalogService struct {
	API CatalogAPI
}

// NewCatalogService creates the catalog service with its gateway dependency
func NewCatalogService(api CatalogAPI) *CatalogService {
	return &CatalogService{API: api}
}

// ListCourses fetches the browsable catalog
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.API.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourse fetches one course with its lessons
func (s *CatalogService) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.API.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}
