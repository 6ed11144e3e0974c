package user

import (
	"net/mail"
	"strings"

	"github.com/frahmantamala/vacation-management/internal"
)

type CreateUserDTO struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Position         string `json:"position"`
	Phone            string `json:"phone"`
	RoleID           *int64 `json:"role_id"`
	EmploymentTypeID *int64 `json:"employment_type_id"`
}

func (d *CreateUserDTO) Validate() error {
	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	if d.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return internal.NewValidationFieldError("email", "email is invalid", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateProfileDTO carries the fields a user may edit on their own profile page.
type UpdateProfileDTO struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

func (d *UpdateProfileDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeInvalidName)
	}
	return nil
}

type UsersResponse struct {
	Users []*User `json:"users"`
}
