package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/vacation-management/internal"
	userDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/user"
	"github.com/frahmantamala/vacation-management/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts the user and its credentials row together.
func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&userDatamodel.UserCredentials{
			UserID:       u.ID,
			PasswordHash: passwordHash,
		}).Error
	})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name, position, phone string) (*userDatamodel.User, error) {
	u := userDatamodel.User{ID: id}
	res := r.db.WithContext(ctx).Model(&u).
		Clauses(clause.Returning{}).
		Updates(map[string]interface{}{
			"name":     name,
			"position": position,
			"phone":    phone,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetCredentials(ctx context.Context, userID string) (*userDatamodel.UserCredentials, error) {
	var creds userDatamodel.UserCredentials
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&creds).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCredentialsNotFound
		}
		return nil, err
	}
	return &creds, nil
}
