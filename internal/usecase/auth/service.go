package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alienbank/bank-backend/internal/auth"
	"github.com/alienbank/bank-backend/internal/domain"
)

// RegisterInput represents the input for registering a new user
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService handles registration and login
type AuthService struct {
	UserRepo domain.UserRepository
	Tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService instance
func NewAuthService(userRepo domain.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{UserRepo: userRepo, Tokens: tokens}
}

// Register creates a USER-role account and returns a session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if len(input.Password) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}

	existing, err := s.UserRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := user.Validate(); err != nil {
		return "", err
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.Tokens.Issue(user)
}

// Login verifies credentials and returns a session token. A frozen
// user cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrBadCredentials
		}
		return "", err
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", domain.ErrBadCredentials
	}
	if !user.IsActive {
		return "", domain.ErrFrozen
	}

	return s.Tokens.Issue(user)
}

// CurrentUser loads the user identified by a parsed token subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}
