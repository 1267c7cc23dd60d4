// Package project manages projects and the products tasks attach to.
package project

import (
	"context"
	"fmt"
	"strings"

	"suivi/internal/database"
	"suivi/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	CreateProject(ctx context.Context, name, description string) (*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, id int, name, description string) error
	DeleteProject(ctx context.Context, id int) error

	AddProduct(ctx context.Context, projectID int, name string) (*models.Product, error)
	ListProducts(ctx context.Context, projectID int) ([]models.Product, error)
	RemoveProduct(ctx context.Context, productID int) error
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new project service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// CreateProject creates a project with a unique name.
func (s *service) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}

	project, err := s.repo.CreateProject(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// GetProject retrieves one project.
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetProjectByID(ctx, id)
}

// ListProjects retrieves every project in name order.
func (s *service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListProjects(ctx)
}

// UpdateProject replaces a project's name and description.
func (s *service) UpdateProject(ctx context.Context, id int, name, description string) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.repo.UpdateProject(ctx, id, name, description)
}

// DeleteProject removes a project and its products.
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	return s.repo.DeleteProject(ctx, id)
}

// AddProduct creates a product under a project.
func (s *service) AddProduct(ctx context.Context, projectID int, name string) (*models.Product, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project lookup: %w", err)
	}
	return s.repo.CreateProduct(ctx, projectID, name)
}

// ListProducts retrieves a project's products.
func (s *service) ListProducts(ctx context.Context, projectID int) ([]models.Product, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.ListProducts(ctx, projectID)
}

// RemoveProduct deletes a product.
func (s *service) RemoveProduct(ctx context.Context, productID int) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	return s.repo.DeleteProduct(ctx, productID)
}
