package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alienbank/bank-backend/internal/auth"
	"github.com/alienbank/bank-backend/internal/domain"
)

// AdminSeeder ensures the configured administrator account exists
type AdminSeeder struct {
	repo     domain.UserRepository
	email    string
	password string
}

// NewAdminSeeder creates a new AdminSeeder instance
func NewAdminSeeder(repo domain.UserRepository, email, password string) *AdminSeeder {
	return &AdminSeeder{
		repo:     repo,
		email:    email,
		password: password,
	}
}

// Seed creates the admin user if it doesn't exist yet. Safe to run at
// every startup.
func (s *AdminSeeder) Seed(ctx context.Context) error {
	_, err := s.repo.GetByEmail(ctx, s.email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(s.password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Name:         "Administrator",
		Email:        s.email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := admin.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, admin)
}
