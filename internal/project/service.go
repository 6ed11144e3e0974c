package project

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/frahmantamala/vacation-management/internal"
	projectDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/project"
)

type Repository interface {
	List(ctx context.Context) ([]*projectDatamodel.Project, error)
	GetByName(ctx context.Context, name string) (*projectDatamodel.Project, error)
	Create(ctx context.Context, p *projectDatamodel.Project) (*projectDatamodel.Project, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}

	projects := make([]*Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, FromDataModel(row))
	}
	return projects, nil
}

// GetProjectByName URL-decodes encodedName and returns the first project with that
// name, or nil when none matches.
func (s *Service) GetProjectByName(ctx context.Context, encodedName string) (*Project, error) {
	name, err := url.PathUnescape(encodedName)
	if err != nil {
		return nil, internal.NewValidationFieldError("name", "project name is not valid URL encoding", internal.ErrCodeInvalidName)
	}

	row, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error("failed to get project by name", "name", name, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, internal.NewValidationFieldError("name", "project name is required", internal.ErrCodeInvalidName)
	}

	row, err := s.repo.Create(ctx, &projectDatamodel.Project{Name: name, Description: description})
	if err != nil {
		s.logger.Error("failed to create project", "name", name, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}
