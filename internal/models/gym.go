package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gym is a tenant: an independently managed climbing gym with its own
// staff, routes and membership. The slug is the public identity and is
// generated once on creation, never reassigned.
type Gym struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string    `gorm:"size:32;not null;uniqueIndex" json:"slug"`
	Name string    `gorm:"size:255;not null" json:"name"`

	// LocationOptions is a newline-delimited list of wall/area names a
	// route may be set at. Free text, edited in gym settings.
	LocationOptions string `gorm:"type:text" json:"location_options"`
	NamedRoutes     bool   `gorm:"default:false" json:"named_routes"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Locations parses LocationOptions into the set of valid route
// locations for this gym. Blank lines are skipped.
func (g *Gym) Locations() []string {
	var out []string
	for _, line := range strings.Split(g.LocationOptions, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HasLocation reports whether loc is one of the gym's configured
// route locations.
func (g *Gym) HasLocation(loc string) bool {
	for _, l := range g.Locations() {
		if l == loc {
			return true
		}
	}
	return false
}

// Membership links a user to a gym.
type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_gym" json:"user_id"`
	GymID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_gym" json:"gym_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Gym       *Gym      `gorm:"foreignKey:GymID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
