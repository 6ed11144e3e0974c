package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               string    `gorm:"primaryKey;type:varchar(64)"`
	Name             string    `gorm:"column:name;not null"`
	Email            string    `gorm:"column:email;uniqueIndex;not null"`
	Position         string    `gorm:"column:position"`
	Phone            string    `gorm:"column:phone"`
	RoleID           *int64    `gorm:"column:role_id"`
	EmploymentTypeID *int64    `gorm:"column:employment_type_id"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a random id when the caller did not pick one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type UserCredentials struct {
	UserID       string    `gorm:"primaryKey;column:user_id;type:varchar(64)"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserCredentials) TableName() string {
	return "user_credentials"
}
