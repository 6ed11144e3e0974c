package profile

import (
	"strings"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/reference"
	"github.com/frahmantamala/vacation-management/internal/user"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	"github.com/frahmantamala/vacation-management/internal/web"
)

// RedirectTarget is where GET /profile sends the browser: the signed-in user's own
// profile, keyed by id or else email, or home when there is nothing to key it by.
func RedirectTarget(session *internal.Session) string {
	identifier := session.Identifier()
	if identifier == "" {
		return "/"
	}
	return web.ProfilePath(identifier)
}

// IsOwner reports whether session belongs to u.
func IsOwner(session *internal.Session, u *user.User) bool {
	if session == nil || u == nil {
		return false
	}
	if session.UserID != "" {
		return session.UserID == u.ID
	}
	return session.Email != "" && strings.EqualFold(session.Email, u.Email)
}

// View is the data behind the profile page.
type View struct {
	User           *user.User
	Role           string
	EmploymentType string
	Vacations      []VacationRow
	VacationTypes  []*reference.Entry
	IsOwner        bool
}

type VacationRow struct {
	*vacation.Vacation
	Type   string
	Status string
}
