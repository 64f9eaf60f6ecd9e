package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction records are join rows keyed by (user, route) or
// (user, gym). The composite unique indexes are load-bearing: the
// ledger treats a duplicate-key conflict on insert as the
// already-exists success path, so idempotence under concurrent
// duplicate requests rests entirely on these constraints.

// Send records that a user has climbed (sent) a route.
type Send struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sends_user_route" json:"user_id"`
	RouteID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sends_user_route;index" json:"route_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Route     *Route    `gorm:"foreignKey:RouteID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite marks a route as a user's favorite.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_route" json:"user_id"`
	RouteID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_route;index" json:"route_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Route     *Route    `gorm:"foreignKey:RouteID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating is a 1-5 star score a user gave a route. Re-rating replaces
// the existing row.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_route" json:"user_id"`
	RouteID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_route;index" json:"route_id"`
	Score     int       `gorm:"not null" json:"score"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Route     *Route    `gorm:"foreignKey:RouteID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// GymFollow records that a user follows a gym.
type GymFollow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gym_follows_user_gym" json:"user_id"`
	GymID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gym_follows_user_gym;index" json:"gym_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Gym       *Gym      `gorm:"foreignKey:GymID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
