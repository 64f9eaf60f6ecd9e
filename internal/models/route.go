package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Route types.
const (
	TypeTopRope    = "top_rope"
	TypeBouldering = "bouldering"
)

var RouteTypes = []string{TypeTopRope, TypeBouldering}

// Route lifecycle statuses. A route only shows up on the public wall
// once setting is complete.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
)

var RouteStatuses = []string{StatusNotStarted, StatusInProgress, StatusComplete}

// Hold color palette. Keys are the hex values stored on the route,
// values the display names.
var RouteColors = map[string]string{
	"#ffffff": "Clear",
	"#d11f2d": "Red",
	"#fef102": "Yellow",
	"#FF6500": "Orange",
	"#ed7696": "Pink",
	"#6f3728": "Dark Brown",
	"#bd955a": "Light Brown",
	"#00b2e2": "Light Blue",
	"#094080": "Dark Blue",
	"#01b703": "Lime Green",
	"#f2f2f2": "White",
	"#009ca8": "Teal",
	"#007a41": "Dark Green",
	"#000000": "Black",
	"#724c9f": "Purple",
}

// Route is a climbing route set at a gym. It belongs to exactly one
// gym for its lifetime and is retired by setting DateTorn, never by
// deletion.
type Route struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string    `gorm:"size:32;not null;uniqueIndex" json:"slug"`
	Name string    `gorm:"size:255" json:"name"`

	Type  string  `gorm:"size:16;not null;default:'bouldering'" json:"type"`
	Grade float64 `gorm:"not null" json:"grade"`

	SetterID *uuid.UUID `gorm:"type:uuid;index" json:"setter_id"`
	Setter   *User      `gorm:"foreignKey:SetterID" json:"-"`

	Location string          `gorm:"size:32;not null" json:"location"`
	DateSet  datatypes.Date  `gorm:"not null" json:"date_set"`
	DateTorn *datatypes.Date `json:"date_torn"`

	GymID uuid.UUID `gorm:"type:uuid;not null;index" json:"gym_id"`
	Gym   *Gym      `gorm:"foreignKey:GymID" json:"-"`

	Status string `gorm:"size:16;not null;default:'complete'" json:"status"`
	Color1 string `gorm:"size:7;default:'#ffffff'" json:"color1"`
	Color2 string `gorm:"size:7;default:'#ffffff'" json:"color2"`
	Notes  string `gorm:"type:text" json:"notes"`
	Views  int64  `gorm:"default:0" json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Live reports whether the route is up on the wall: setting complete
// and not yet torn down.
func (r *Route) Live(now time.Time) bool {
	if r.Status != StatusComplete {
		return false
	}
	if r.DateTorn == nil {
		return true
	}
	return time.Time(*r.DateTorn).After(now)
}
