package services

import (
	"errors"
	"fmt"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrUsernameTaken   = errors.New("username already in use at this gym")
	ErrLevelNotAllowed = errors.New("level not assignable by this user")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)

var staffTiers = []int{models.LevelStaff, models.LevelSetter, models.LevelOwner}

// AssignableLevels computes which staff tiers the acting user may
// hand out: staff tiers at or below their own. The member tier is
// never assignable through staff management.
func AssignableLevels(actorLevel int) []int {
	var out []int
	for _, level := range staffTiers {
		if level <= actorLevel {
			out = append(out, level)
		}
	}
	return out
}

type StaffService struct {
	db *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{db: db}
}

// List returns the gym's staff accounts, highest tier first.
func (s *StaffService) List(gymID uuid.UUID) ([]models.User, error) {
	var staff []models.User
	err := s.db.Scopes(tenant.ForGym(gymID)).Order("level DESC").Find(&staff).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// GetByUsername resolves a staff record within a gym.
func (s *StaffService) GetByUsername(gymID uuid.UUID, username string) (*models.User, error) {
	var user models.User
	err := s.db.Scopes(tenant.ForGym(gymID)).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to resolve staff member: %w", err)
	}
	return &user, nil
}

// Create adds a staff account to the gym.
func (s *StaffService) Create(gym *models.Gym, actor *models.User, req *dto.CreateStaffRequest) (*models.User, error) {
	if !levelAssignable(actor.Level, req.Level) {
		return nil, ErrLevelNotAllowed
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooWeak
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		GymID:     &gym.ID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Level:     req.Level,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Membership{ID: uuid.New(), UserID: user.ID, GymID: gym.ID}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return &user, nil
}

// Update edits a staff record. Owner levels are immutable here; the
// owner record itself is only reachable when the endpoint allows it.
func (s *StaffService) Update(staff *models.User, actor *models.User, req *dto.UpdateStaffRequest) error {
	staff.FirstName = req.FirstName
	staff.LastName = req.LastName

	if req.Level != nil && staff.Level != models.LevelOwner {
		if !levelAssignable(actor.Level, *req.Level) {
			return ErrLevelNotAllowed
		}
		staff.Level = *req.Level
	}

	if err := s.db.Save(staff).Error; err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}
	return nil
}

// Delete removes a staff account and its membership. The owner record
// is refused here too, independent of the endpoint-level guard.
func (s *StaffService) Delete(staff *models.User) error {
	if staff.Level == models.LevelOwner {
		return ErrStaffNotFound
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if staff.GymID != nil {
			if err := tx.Where("user_id = ? AND gym_id = ?", staff.ID, *staff.GymID).Delete(&models.Membership{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(staff).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

func levelAssignable(actorLevel, level int) bool {
	for _, l := range AssignableLevels(actorLevel) {
		if l == level {
			return true
		}
	}
	return false
}

func StaffToResponse(user *models.User) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Level:     user.Level,
	}
}
