package services

import (
	"testing"
	"time"

	"github.com/crimpd/crimpd-backend/internal/config"
	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(db, &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	})
}

func createCredentialedUser(t *testing.T, db *gorm.DB, gym *models.Gym, username, password string, level int) *models.User {
	t.Helper()
	user := createUser(t, db, gym, username, level)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("password", string(hash)).Error)
	user.Password = string(hash)
	return user
}

func TestLoginScopedThenGlobal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	ownerA := createUser(t, db, nil, "owner-a", models.LevelOwner)
	ownerB := createUser(t, db, nil, "owner-b", models.LevelOwner)
	gymA := createGym(t, db, "aaaaa", ownerA)
	gymB := createGym(t, db, "bbbbb", ownerB)

	// Same username at two gyms plus a global climber.
	localA := createCredentialedUser(t, db, gymA, "sam", "password-a", models.LevelStaff)
	localB := createCredentialedUser(t, db, gymB, "sam", "password-b", models.LevelStaff)
	global := createCredentialedUser(t, db, nil, "wanderer", "roadtrip1", models.LevelMember)

	resp, err := svc.Login(gymA, &dto.LoginRequest{Username: "sam", Password: "password-a"})
	require.NoError(t, err)
	assert.Equal(t, localA.ID, resp.User.ID)

	resp, err = svc.Login(gymB, &dto.LoginRequest{Username: "sam", Password: "password-b"})
	require.NoError(t, err)
	assert.Equal(t, localB.ID, resp.User.ID)

	// A gym account's password never works at the other gym.
	_, err = svc.Login(gymB, &dto.LoginRequest{Username: "sam", Password: "password-a"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Global climbers log in at any gym's page.
	resp, err = svc.Login(gymA, &dto.LoginRequest{Username: "wanderer", Password: "roadtrip1", Next: "/aaaaa/routes"})
	require.NoError(t, err)
	assert.Equal(t, global.ID, resp.User.ID)
	assert.Equal(t, "/aaaaa/routes", resp.Next)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)
	createCredentialedUser(t, db, gym, "sam", "rightpass", models.LevelStaff)

	_, err := svc.Login(gym, &dto.LoginRequest{Username: "sam", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(gym, &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)
	createCredentialedUser(t, db, gym, "sam", "rightpass", models.LevelStaff)

	first, err := svc.Login(gym, &dto.LoginRequest{Username: "sam", Password: "rightpass"})
	require.NoError(t, err)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The presented token is revoked on use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)
	createCredentialedUser(t, db, gym, "sam", "rightpass", models.LevelStaff)

	resp, err := svc.Login(gym, &dto.LoginRequest{Username: "sam", Password: "rightpass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
