package postgres

import (
	"context"

	refDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/reference"
	"github.com/frahmantamala/vacation-management/internal/reference"
	"gorm.io/gorm"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) reference.Repository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListRoles(ctx context.Context) ([]*refDatamodel.UserRole, error) {
	var rows []*refDatamodel.UserRole
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *ReferenceRepository) ListEmploymentTypes(ctx context.Context) ([]*refDatamodel.EmploymentType, error) {
	var rows []*refDatamodel.EmploymentType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *ReferenceRepository) ListVacationStatuses(ctx context.Context) ([]*refDatamodel.VacationStatus, error) {
	var rows []*refDatamodel.VacationStatus
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *ReferenceRepository) ListVacationTypes(ctx context.Context) ([]*refDatamodel.VacationType, error) {
	var rows []*refDatamodel.VacationType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}
