package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/vacation-management/internal"
	userDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	List(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User, passwordHash string) error
	UpdateProfile(ctx context.Context, id string, name, position, phone string) (*userDatamodel.User, error)
	GetCredentials(ctx context.Context, userID string) (*userDatamodel.UserCredentials, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

// GetUserByID returns nil when no user has the id.
func (s *Service) GetUserByID(ctx context.Context, id string) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// GetUserByEmail returns nil when no user has the email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row, err := s.repo.GetByEmail(ctx, email)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// FindByIdentifier looks the identifier up as a user id first, then as an email.
func (s *Service) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	u, err := s.GetUserByID(ctx, identifier)
	if err != nil || u != nil {
		return u, err
	}
	return s.GetUserByEmail(ctx, identifier)
}

// GetUserCredentials reports ErrCredentialsNotFound when the user has no stored hash.
func (s *Service) GetUserCredentials(ctx context.Context, userID string) (*Credentials, error) {
	row, err := s.repo.GetCredentials(ctx, userID)
	if err != nil {
		if !errors.Is(err, internal.ErrCredentialsNotFound) {
			s.logger.Error("failed to load credentials", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return &Credentials{UserID: row.UserID, PasswordHash: row.PasswordHash}, nil
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Name:             dto.Name,
		Email:            dto.Email,
		Position:         dto.Position,
		Phone:            dto.Phone,
		RoleID:           dto.RoleID,
		EmploymentTypeID: dto.EmploymentTypeID,
	}
	if err := s.repo.Create(ctx, row, string(hash)); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	s.logger.Info("user created", "user_id", row.ID, "email", row.Email)
	return FromDataModel(row), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateProfile(ctx, id, dto.Name, dto.Position, dto.Phone)
	if err != nil {
		if !errors.Is(err, internal.ErrUserNotFound) {
			s.logger.Error("failed to update profile", "user_id", id, "error", err)
		}
		return nil, err
	}
	return FromDataModel(row), nil
}
