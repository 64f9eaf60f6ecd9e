package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff level tiers. Anything >= LevelStaff is gym staff; the owner
// tier is a single protected record per gym.
const (
	LevelMember = 0
	LevelStaff  = 500
	LevelSetter = 1000
	LevelOwner  = 10000
)

// User is a principal, optionally affiliated with exactly one gym.
// GymID nil means a global (unaffiliated) climber account. Usernames
// are unique per gym, so two gyms may each have their own "john".
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID     *uuid.UUID     `gorm:"type:uuid;uniqueIndex:idx_users_gym_username" json:"gym_id"`
	Gym       *Gym           `gorm:"foreignKey:GymID" json:"-"`
	Username  string         `gorm:"size:150;not null;uniqueIndex:idx_users_gym_username" json:"username"`
	FirstName string         `gorm:"size:150" json:"first_name"`
	LastName  string         `gorm:"size:150" json:"last_name"`
	Password  string         `gorm:"not null" json:"-"`
	Level     int            `gorm:"not null;default:0" json:"level"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BelongsTo reports whether the user is affiliated with the given gym.
func (u *User) BelongsTo(gymID uuid.UUID) bool {
	return u.GymID != nil && *u.GymID == gymID
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
