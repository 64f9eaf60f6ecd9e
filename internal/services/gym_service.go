package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/slug"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGymNotFound  = errors.New("gym not found")
	ErrAlreadyStaff = errors.New("user already belongs to a gym")
	ErrNameRequired = errors.New("gym name is required")
)

type GymService struct {
	db *gorm.DB
}

func NewGymService(db *gorm.DB) *GymService {
	return &GymService{db: db}
}

// GetBySlug resolves a URL slug to a gym.
func (s *GymService) GetBySlug(gymSlug string) (*models.Gym, error) {
	var gym models.Gym
	if err := s.db.Where("slug = ?", gymSlug).First(&gym).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, fmt.Errorf("failed to resolve gym: %w", err)
	}
	return &gym, nil
}

// List returns all gyms ordered by name.
func (s *GymService) List() ([]models.Gym, error) {
	var gyms []models.Gym
	if err := s.db.Order("name").Find(&gyms).Error; err != nil {
		return nil, fmt.Errorf("failed to list gyms: %w", err)
	}
	return gyms, nil
}

// Create makes a new gym owned by the given user. The creator must not
// already be affiliated with a gym; they become the owner-tier staff
// account of the new one.
func (s *GymService) Create(owner *models.User, req *dto.CreateGymRequest) (*models.Gym, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if owner.GymID != nil {
		return nil, ErrAlreadyStaff
	}

	gymSlug, err := slug.New(func(candidate string) (bool, error) {
		var count int64
		if err := s.db.Model(&models.Gym{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate gym slug: %w", err)
	}

	gym := models.Gym{
		ID:              uuid.New(),
		Slug:            gymSlug,
		Name:            req.Name,
		LocationOptions: req.LocationOptions,
		NamedRoutes:     req.NamedRoutes,
		OwnerID:         owner.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&gym).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", owner.ID).
			Updates(map[string]interface{}{"gym_id": gym.ID, "level": models.LevelOwner}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Membership{ID: uuid.New(), UserID: owner.ID, GymID: gym.ID}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gym: %w", err)
	}

	owner.GymID = &gym.ID
	owner.Level = models.LevelOwner
	return &gym, nil
}

// UpdateSettings applies the owner-editable gym settings.
func (s *GymService) UpdateSettings(gym *models.Gym, req *dto.UpdateGymSettingsRequest) error {
	if req.Name == "" {
		return ErrNameRequired
	}
	gym.Name = req.Name
	gym.LocationOptions = req.LocationOptions
	gym.NamedRoutes = req.NamedRoutes
	if err := s.db.Save(gym).Error; err != nil {
		return fmt.Errorf("failed to update gym settings: %w", err)
	}
	return nil
}

// LiveRouteCount counts the gym's routes currently up on the wall.
func (s *GymService) LiveRouteCount(gymID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Route{}).
		Scopes(tenant.ForGym(gymID), LiveRoutes(time.Now())).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count live routes: %w", err)
	}
	return count, nil
}

// Follows reports whether the user follows the gym.
func (s *GymService) Follows(gymID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.GymFollow{}).
		Where("gym_id = ? AND user_id = ?", gymID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LiveRoutes is a GORM scope selecting routes whose setting is
// complete and whose tear-down date is unset or in the future.
func LiveRoutes(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", models.StatusComplete).
			Where("date_torn IS NULL OR date_torn > ?", now)
	}
}

func GymToResponse(gym *models.Gym) dto.GymResponse {
	return dto.GymResponse{
		ID:          gym.ID,
		Slug:        gym.Slug,
		Name:        gym.Name,
		NamedRoutes: gym.NamedRoutes,
		Locations:   gym.Locations(),
	}
}
