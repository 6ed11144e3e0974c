package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/vacation-management/internal"
	vacationDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/vacation"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VacationRepository implements vacation.Repository using GORM
type VacationRepository struct {
	db *gorm.DB
}

func NewVacationRepository(db *gorm.DB) vacation.Repository {
	return &VacationRepository{db: db}
}

func (r *VacationRepository) List(ctx context.Context) ([]*vacationDatamodel.Vacation, error) {
	var rows []*vacationDatamodel.Vacation
	err := r.db.WithContext(ctx).Order("start_date DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *VacationRepository) ListByUserID(ctx context.Context, userID string) ([]*vacationDatamodel.Vacation, error) {
	var rows []*vacationDatamodel.Vacation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// GetByID returns nil when no row has the id.
func (r *VacationRepository) GetByID(ctx context.Context, id int64) (*vacationDatamodel.Vacation, error) {
	var row vacationDatamodel.Vacation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *VacationRepository) Create(ctx context.Context, v *vacationDatamodel.Vacation) (*vacationDatamodel.Vacation, error) {
	if err := r.db.WithContext(ctx).Clauses(clause.Returning{}).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VacationRepository) Update(ctx context.Context, v *vacationDatamodel.Vacation) (*vacationDatamodel.Vacation, error) {
	res := r.db.WithContext(ctx).
		Model(v).
		Clauses(clause.Returning{}).
		Select("vacation_type_id", "vacation_status_id", "start_date", "end_date", "comment", "updated_at").
		Updates(v)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrVacationNotFound
	}
	return v, nil
}

// Delete removes the row for good and returns what was removed.
func (r *VacationRepository) Delete(ctx context.Context, id int64) ([]*vacationDatamodel.Vacation, error) {
	var deleted []vacationDatamodel.Vacation
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrVacationNotFound
	}
	out := make([]*vacationDatamodel.Vacation, 0, len(deleted))
	for i := range deleted {
		out = append(out, &deleted[i])
	}
	return out, nil
}
