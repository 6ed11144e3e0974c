package reference

import (
	"context"
	"fmt"
	"log/slog"

	refDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/reference"
)

type Repository interface {
	ListRoles(ctx context.Context) ([]*refDatamodel.UserRole, error)
	ListEmploymentTypes(ctx context.Context) ([]*refDatamodel.EmploymentType, error)
	ListVacationStatuses(ctx context.Context) ([]*refDatamodel.VacationStatus, error)
	ListVacationTypes(ctx context.Context) ([]*refDatamodel.VacationType, error)
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

func (s *Service) ListRoles(ctx context.Context) ([]*Entry, error) {
	rows, err := s.repo.ListRoles(ctx)
	if err != nil {
		s.logger.Error("failed to list user roles", "error", err)
		return nil, err
	}
	return fromRoles(rows), nil
}

func (s *Service) ListEmploymentTypes(ctx context.Context) ([]*Entry, error) {
	rows, err := s.repo.ListEmploymentTypes(ctx)
	if err != nil {
		s.logger.Error("failed to list employment types", "error", err)
		return nil, err
	}
	return fromEmploymentTypes(rows), nil
}

func (s *Service) ListVacationStatuses(ctx context.Context) ([]*Entry, error) {
	rows, err := s.repo.ListVacationStatuses(ctx)
	if err != nil {
		s.logger.Error("failed to list vacation statuses", "error", err)
		return nil, err
	}
	return fromVacationStatuses(rows), nil
}

func (s *Service) ListVacationTypes(ctx context.Context) ([]*Entry, error) {
	rows, err := s.repo.ListVacationTypes(ctx)
	if err != nil {
		s.logger.Error("failed to list vacation types", "error", err)
		return nil, err
	}
	return fromVacationTypes(rows), nil
}

// List dispatches on kind.
func (s *Service) List(ctx context.Context, kind Kind) ([]*Entry, error) {
	switch kind {
	case KindRoles:
		return s.ListRoles(ctx)
	case KindEmploymentTypes:
		return s.ListEmploymentTypes(ctx)
	case KindVacationStatuses:
		return s.ListVacationStatuses(ctx)
	case KindVacationTypes:
		return s.ListVacationTypes(ctx)
	}
	return nil, fmt.Errorf("unknown reference kind %q", kind)
}
