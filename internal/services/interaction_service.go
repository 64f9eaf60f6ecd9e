package services

import (
	"errors"
	"fmt"

	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidScore rejects rating scores outside 1..5.
var ErrInvalidScore = errors.New("score must be between 1 and 5")

// InteractionService is the ledger of user-route and user-gym
// relations. Add operations are idempotent: the database's composite
// unique indexes are the arbiter, and a duplicate-key conflict is
// reported as success with new=false. That conflict path is also the
// only concurrency control here, so adds must go straight to INSERT
// rather than check-then-insert.
type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

// AddSend records that the user sent the route. Returns whether the
// record is new.
func (s *InteractionService) AddSend(userID, routeID uuid.UUID) (bool, error) {
	return s.insertPair(&models.Send{ID: uuid.New(), UserID: userID, RouteID: routeID})
}

// RemoveSend deletes the send record; removing a non-existent pair is
// a no-op success.
func (s *InteractionService) RemoveSend(userID, routeID uuid.UUID) error {
	return s.deleteRoutePair(&models.Send{}, userID, routeID)
}

// AddFavorite marks the route as a favorite of the user.
func (s *InteractionService) AddFavorite(userID, routeID uuid.UUID) (bool, error) {
	return s.insertPair(&models.Favorite{ID: uuid.New(), UserID: userID, RouteID: routeID})
}

func (s *InteractionService) RemoveFavorite(userID, routeID uuid.UUID) error {
	return s.deleteRoutePair(&models.Favorite{}, userID, routeID)
}

// Follow records that the user follows the gym.
func (s *InteractionService) Follow(userID, gymID uuid.UUID) (bool, error) {
	return s.insertPair(&models.GymFollow{ID: uuid.New(), UserID: userID, GymID: gymID})
}

func (s *InteractionService) Unfollow(userID, gymID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND gym_id = ?", userID, gymID).Delete(&models.GymFollow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	return nil
}

// Rate replaces the user's rating of the route. An out-of-range score
// leaves existing state untouched.
func (s *InteractionService) Rate(userID, routeID uuid.UUID, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND route_id = ?", userID, routeID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Rating{ID: uuid.New(), UserID: userID, RouteID: routeID, Score: score}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store rating: %w", err)
	}
	return nil
}

func (s *InteractionService) insertPair(record interface{}) (bool, error) {
	err := s.db.Create(record).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	return false, fmt.Errorf("failed to insert interaction: %w", err)
}

func (s *InteractionService) deleteRoutePair(model interface{}, userID, routeID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND route_id = ?", userID, routeID).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to delete interaction: %w", result.Error)
	}
	return nil
}
