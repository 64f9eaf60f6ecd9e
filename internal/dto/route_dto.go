package dto

import (
	"time"

	"github.com/google/uuid"
)

type RouteRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Grade    float64 `json:"grade"`
	Setter   string  `json:"setter,omitempty"` // username; defaults to the requester
	Location string  `json:"location"`
	DateSet  string  `json:"date_set,omitempty"` // YYYY-MM-DD; defaults to today
	DateTorn string  `json:"date_torn,omitempty"`
	Status   string  `json:"status,omitempty"`
	Color1   string  `json:"color1,omitempty"`
	Color2   string  `json:"color2,omitempty"`
	Notes    string  `json:"notes"`
}

type RouteResponse struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Grade      float64   `json:"grade"`
	GradeLabel string    `json:"grade_label"`
	Setter     string    `json:"setter,omitempty"`
	Location   string    `json:"location"`
	DateSet    string    `json:"date_set"`
	DateTorn   string    `json:"date_torn,omitempty"`
	Status     string    `json:"status"`
	Color1     string    `json:"color1"`
	Color2     string    `json:"color2"`
	Notes      string    `json:"notes"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
}

type RouteListResponse struct {
	Routes   []RouteResponse `json:"routes"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
	Sort     string          `json:"sort"`
	SortName string          `json:"sort_name"`
}

// RoutePageResponse carries the per-requester interaction state next
// to the route itself.
type RoutePageResponse struct {
	Route     RouteResponse `json:"route"`
	Sent      bool          `json:"sent"`
	Favorited bool          `json:"favorited"`
	Score     *int          `json:"score,omitempty"`
	Followed  bool          `json:"followed"`
}

type SendResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type SendListResponse struct {
	Sends []SendResponse `json:"sends"`
}

type RateRequest struct {
	Score int `json:"score"`
}

// StatPoint is one (label, fraction) pair of a distribution.
type StatPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type StatsResponse struct {
	TopRopeGrades    []StatPoint `json:"top_rope_grades"`
	BoulderingGrades []StatPoint `json:"bouldering_grades"`
	Types            []StatPoint `json:"types"`
	Setters          []StatPoint `json:"setters"`
	Locations        []StatPoint `json:"locations"`
}
