package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// ProviderCredentials is the only sign-in provider the portal offers.
const ProviderCredentials = "credentials"

// UserLookup is the slice of the user service that sign-in needs.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserCredentials(ctx context.Context, userID string) (*user.Credentials, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if c.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type Service struct {
	users  UserLookup
	logger *slog.Logger
}

func NewService(users UserLookup, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// Providers lists the sign-in providers in the shape /api/auth/providers returns.
func (s *Service) Providers(baseURL string) map[string]Provider {
	return map[string]Provider{
		ProviderCredentials: {
			ID:          ProviderCredentials,
			Name:        "Credentials",
			Type:        ProviderCredentials,
			SignInURL:   baseURL + "/api/auth/signin/" + ProviderCredentials,
			CallbackURL: baseURL + "/api/auth/callback/" + ProviderCredentials,
		},
	}
}

// SignIn verifies the credentials and returns the identity to put in the session.
// Unknown email, missing credentials and wrong password all report ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, provider string, creds Credentials) (*Identity, error) {
	if provider != ProviderCredentials {
		return nil, internal.ErrUnsupportedProvider
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(creds.Email)
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error("sign-in user lookup failed", "email", email, "error", err)
		return nil, internal.ErrInvalidCredentials.WithCause(err)
	}
	if u == nil {
		s.logger.Info("sign-in rejected: unknown email", "email", email)
		return nil, internal.ErrInvalidCredentials
	}

	stored, err := s.users.GetUserCredentials(ctx, u.ID)
	if err != nil {
		if errors.Is(err, internal.ErrCredentialsNotFound) {
			s.logger.Warn("sign-in rejected: user has no credentials", "user_id", u.ID)
		}
		return nil, internal.ErrInvalidCredentials.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Info("sign-in rejected: wrong password", "user_id", u.ID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("user signed in", "user_id", u.ID)
	return &Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.DisplayName(),
	}, nil
}

type Provider struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	SignInURL   string `json:"signinUrl"`
	CallbackURL string `json:"callbackUrl"`
}
