package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/user"
)

type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Position         string    `json:"position,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	RoleID           *int64    `json:"role_id,omitempty"`
	EmploymentTypeID *int64    `json:"employment_type_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Credentials is the stored password hash for one user. It never leaves the server.
type Credentials struct {
	UserID       string
	PasswordHash string
}

func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Position:         u.Position,
		Phone:            u.Phone,
		RoleID:           u.RoleID,
		EmploymentTypeID: u.EmploymentTypeID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
