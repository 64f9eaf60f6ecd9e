package dto

import "github.com/google/uuid"

type CreateGymRequest struct {
	Name            string `json:"name"`
	LocationOptions string `json:"location_options"`
	NamedRoutes     bool   `json:"named_routes"`
}

type UpdateGymSettingsRequest struct {
	Name            string `json:"name"`
	LocationOptions string `json:"location_options"`
	NamedRoutes     bool   `json:"named_routes"`
}

type GymResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	NamedRoutes bool      `json:"named_routes"`
	Locations   []string  `json:"locations"`
}

type GymPageResponse struct {
	Gym        GymResponse `json:"gym"`
	LiveRoutes int64       `json:"live_routes"`
	Followed   bool        `json:"followed"`
}

type GymListResponse struct {
	Gyms []GymResponse `json:"gyms"`
}

type DashboardResponse struct {
	Gym          GymResponse     `json:"gym"`
	LatestRoutes []RouteResponse `json:"latest_routes"`
}

type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Level     int       `json:"level"`
}

type CreateStaffRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Level     int    `json:"level"`
}

type UpdateStaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// Level nil leaves the level unchanged. Owner levels can never be
	// changed through this request.
	Level *int `json:"level,omitempty"`
}
