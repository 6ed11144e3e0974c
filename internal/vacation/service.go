package vacation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	vacationDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/vacation"
)

// Repository issues exactly one statement per call; mutations hand back the
// affected rows.
type Repository interface {
	List(ctx context.Context) ([]*vacationDatamodel.Vacation, error)
	ListByUserID(ctx context.Context, userID string) ([]*vacationDatamodel.Vacation, error)
	GetByID(ctx context.Context, id int64) (*vacationDatamodel.Vacation, error)
	Create(ctx context.Context, v *vacationDatamodel.Vacation) (*vacationDatamodel.Vacation, error)
	Update(ctx context.Context, v *vacationDatamodel.Vacation) (*vacationDatamodel.Vacation, error)
	Delete(ctx context.Context, id int64) ([]*vacationDatamodel.Vacation, error)
}

type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ListVacations(ctx context.Context) ([]*Vacation, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list vacations", "error", err)
		return nil, err
	}
	return FromDataModels(rows), nil
}

func (s *Service) ListUserVacations(ctx context.Context, userID string) ([]*Vacation, error) {
	rows, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list user vacations", "user_id", userID, "error", err)
		return nil, err
	}
	return FromDataModels(rows), nil
}

func (s *Service) GetVacation(ctx context.Context, id int64) (*Vacation, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrVacationNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateVacation(ctx context.Context, dto CreateVacationDTO) (*Vacation, error) {
	start, end, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	statusID := dto.VacationStatusID
	if statusID <= 0 {
		statusID = DefaultStatusID
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	created, err := s.repo.Create(ctx, &vacationDatamodel.Vacation{
		UserID:           dto.UserID,
		VacationTypeID:   dto.VacationTypeID,
		VacationStatusID: statusID,
		StartDate:        start,
		EndDate:          end,
		Comment:          dto.Comment,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		s.logger.Error("failed to create vacation", "user_id", dto.UserID, "error", err)
		return nil, err
	}

	s.logger.Info("vacation created", "vacation_id", created.ID, "user_id", created.UserID)
	return FromDataModel(created), nil
}

// UpdateVacation rewrites the editable fields and moves UpdatedAt strictly past its
// stored value.
func (s *Service) UpdateVacation(ctx context.Context, id int64, dto UpdateVacationDTO) (*Vacation, error) {
	start, end, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrVacationNotFound
	}

	existing.VacationTypeID = dto.VacationTypeID
	existing.VacationStatusID = dto.VacationStatusID
	existing.StartDate = start
	existing.EndDate = end
	existing.Comment = dto.Comment
	existing.UpdatedAt = NextUpdatedAt(existing.UpdatedAt, s.now())

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if !errors.Is(err, internal.ErrVacationNotFound) {
			s.logger.Error("failed to update vacation", "vacation_id", id, "error", err)
		}
		return nil, err
	}

	s.logger.Info("vacation updated", "vacation_id", id)
	return FromDataModel(updated), nil
}

func (s *Service) DeleteVacation(ctx context.Context, id int64) ([]*Vacation, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if !errors.Is(err, internal.ErrVacationNotFound) {
			s.logger.Error("failed to delete vacation", "vacation_id", id, "error", err)
		}
		return nil, err
	}

	s.logger.Info("vacation deleted", "vacation_id", id)
	return FromDataModels(deleted), nil
}
