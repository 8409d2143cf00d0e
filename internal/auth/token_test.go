package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alienbank/bank-backend/internal/domain"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), time.Hour)
	user := &domain.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}

	token, err := manager.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	id, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	issuer := NewTokenManager([]byte("secret-a"), time.Hour)
	verifier := NewTokenManager([]byte("secret-b"), time.Hour)

	token, err := issuer.Issue(&domain.User{ID: uuid.New(), Email: "a@b.c", Role: domain.RoleUser})
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	manager := NewTokenManager([]byte("test-secret"), -time.Minute)

	token, err := manager.Issue(&domain.User{ID: uuid.New(), Email: "a@b.c", Role: domain.RoleUser})
	assert.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
