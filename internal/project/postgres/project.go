package postgres

import (
	"context"
	"errors"

	projectDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/project"
	"github.com/frahmantamala/vacation-management/internal/project"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]*projectDatamodel.Project, error) {
	var rows []*projectDatamodel.Project
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// GetByName takes the first match; names are not unique in the schema.
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*projectDatamodel.Project, error) {
	var row projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").Limit(1).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *projectDatamodel.Project) (*projectDatamodel.Project, error) {
	if err := r.db.WithContext(ctx).Clauses(clause.Returning{}).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
