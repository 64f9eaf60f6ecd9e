package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/crimpd/crimpd-backend/internal/config"
	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login authenticates a username/password against a gym's login page.
// Usernames are scoped per gym, so the lookup tries the gym's own
// accounts first and falls back to global (unaffiliated) climbers, who
// may log in at any gym.
func (s *AuthService) Login(gym *models.Gym, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	err := s.db.Where("username = ? AND gym_id = ?", req.Username, gym.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Where("username = ? AND gym_id IS NULL", req.Username).First(&user).Error
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.generateTokenPair(&user)
	if err != nil {
		return nil, err
	}
	resp.Next = req.Next
	return resp, nil
}

// Refresh rotates a refresh token: the presented token is revoked and
// a new pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// UserByID loads a principal, with its gym preloaded for tenant
// affinity checks.
func (s *AuthService) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Gym").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	access, err := s.signAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         UserToResponse(user),
	}, nil
}

func (s *AuthService) signAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"level":    user.Level,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func UserToResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Level:     user.Level,
	}
	if user.Gym != nil {
		resp.GymSlug = user.Gym.Slug
	}
	return resp
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
