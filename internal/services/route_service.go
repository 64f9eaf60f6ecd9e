package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/grades"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/slug"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrInvalidRoute  = errors.New("invalid route")
)

// SortMostRecent is the default and the silent fallback for
// unrecognized sort values.
const SortMostRecent = "most_recent"

type sortSpec struct {
	name  string
	order string
}

var routeSorts = map[string]sortSpec{
	SortMostRecent: {name: "Most Recent", order: "date_set DESC"},
	"difficulty":   {name: "Difficulty", order: "grade"},
	"location":     {name: "Location", order: "location"},
	"rating":       {name: "User Rating", order: "COALESCE(rs.avg_score, 0) DESC"},
}

// NormalizeSort maps a sort parameter to a known key, falling back to
// most-recent for anything unrecognized.
func NormalizeSort(sort string) string {
	if _, ok := routeSorts[sort]; !ok {
		return SortMostRecent
	}
	return sort
}

// SortName returns the display name of a (normalized) sort key.
func SortName(sort string) string {
	return routeSorts[NormalizeSort(sort)].name
}

type RouteService struct {
	db *gorm.DB
}

func NewRouteService(db *gorm.DB) *RouteService {
	return &RouteService{db: db}
}

// GetBySlug resolves a route slug within a gym. Routes of other gyms
// are invisible here, which is what keeps cross-tenant route URLs 404.
func (s *RouteService) GetBySlug(gymID uuid.UUID, routeSlug string) (*models.Route, error) {
	var route models.Route
	err := s.db.Scopes(tenant.ForGym(gymID)).Where("slug = ?", routeSlug).First(&route).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to resolve route: %w", err)
	}
	return &route, nil
}

// List returns a page of the gym's routes. The public listing shows
// only completed routes; the admin listing (allStatuses) shows
// everything.
func (s *RouteService) List(gymID uuid.UUID, sort string, page, limit int, allStatuses bool) ([]models.Route, int64, error) {
	sort = NormalizeSort(sort)

	base := s.db.Model(&models.Route{}).Scopes(tenant.ForGym(gymID))
	if !allStatuses {
		base = base.Where("status = ?", models.StatusComplete)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	query := base.Session(&gorm.Session{})
	if sort == "rating" {
		query = query.Joins("LEFT JOIN (SELECT route_id, AVG(score) AS avg_score FROM ratings GROUP BY route_id) rs ON rs.route_id = routes.id")
	}

	var routes []models.Route
	err := query.Order(routeSorts[sort].order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&routes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, total, nil
}

// Recent returns the gym's n most recently created routes, any status.
func (s *RouteService) Recent(gymID uuid.UUID, n int) ([]models.Route, error) {
	var routes []models.Route
	err := s.db.Scopes(tenant.ForGym(gymID)).
		Order("created_at DESC").
		Limit(n).
		Find(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent routes: %w", err)
	}
	return routes, nil
}

// Create sets a new route at the gym. The setter defaults to the
// acting user and must be route-setter staff of this gym.
func (s *RouteService) Create(gym *models.Gym, actor *models.User, req *dto.RouteRequest) (*models.Route, error) {
	route := models.Route{
		ID:    uuid.New(),
		GymID: gym.ID,
	}
	if err := s.apply(&route, gym, actor, req); err != nil {
		return nil, err
	}

	routeSlug, err := slug.New(func(candidate string) (bool, error) {
		var count int64
		if err := s.db.Model(&models.Route{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate route slug: %w", err)
	}
	route.Slug = routeSlug

	if err := s.db.Create(&route).Error; err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return &route, nil
}

// Update edits an existing route. The owning gym never changes.
func (s *RouteService) Update(route *models.Route, gym *models.Gym, actor *models.User, req *dto.RouteRequest) error {
	if err := s.apply(route, gym, actor, req); err != nil {
		return err
	}
	if err := s.db.Save(route).Error; err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}
	return nil
}

func (s *RouteService) apply(route *models.Route, gym *models.Gym, actor *models.User, req *dto.RouteRequest) error {
	routeType := req.Type
	if routeType == "" {
		routeType = models.TypeBouldering
	}
	if !contains(models.RouteTypes, routeType) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRoute, req.Type)
	}

	if !grades.Valid(routeType, req.Grade) {
		return fmt.Errorf("%w: grade %v is not on the %s scale", ErrInvalidRoute, req.Grade, routeType)
	}

	if !gym.HasLocation(req.Location) {
		return fmt.Errorf("%w: location %q is not configured for this gym", ErrInvalidRoute, req.Location)
	}

	status := req.Status
	if status == "" {
		status = models.StatusComplete
	}
	if !contains(models.RouteStatuses, status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRoute, req.Status)
	}

	color1, color2 := req.Color1, req.Color2
	if color1 == "" {
		color1 = "#ffffff"
	}
	if color2 == "" {
		color2 = "#ffffff"
	}
	if _, ok := models.RouteColors[color1]; !ok {
		return fmt.Errorf("%w: color %q is not in the palette", ErrInvalidRoute, req.Color1)
	}
	if _, ok := models.RouteColors[color2]; !ok {
		return fmt.Errorf("%w: color %q is not in the palette", ErrInvalidRoute, req.Color2)
	}

	setter := actor
	if req.Setter != "" && req.Setter != actor.Username {
		var candidate models.User
		err := s.db.Scopes(tenant.ForGym(gym.ID)).
			Where("username = ? AND level >= ?", req.Setter, models.LevelSetter).
			First(&candidate).Error
		if err != nil {
			return fmt.Errorf("%w: setter %q is not a route setter at this gym", ErrInvalidRoute, req.Setter)
		}
		setter = &candidate
	}

	dateSet := datatypes.Date(time.Now())
	if req.DateSet != "" {
		parsed, err := time.Parse("2006-01-02", req.DateSet)
		if err != nil {
			return fmt.Errorf("%w: bad date_set %q", ErrInvalidRoute, req.DateSet)
		}
		dateSet = datatypes.Date(parsed)
	}

	var dateTorn *datatypes.Date
	if req.DateTorn != "" {
		parsed, err := time.Parse("2006-01-02", req.DateTorn)
		if err != nil {
			return fmt.Errorf("%w: bad date_torn %q", ErrInvalidRoute, req.DateTorn)
		}
		d := datatypes.Date(parsed)
		dateTorn = &d
	}

	route.Name = req.Name
	route.Type = routeType
	route.Grade = req.Grade
	route.SetterID = &setter.ID
	route.Location = req.Location
	route.DateSet = dateSet
	route.DateTorn = dateTorn
	route.Status = status
	route.Color1 = color1
	route.Color2 = color2
	route.Notes = req.Notes
	return nil
}

// IncrementViews bumps the route's view counter atomically.
func (s *RouteService) IncrementViews(routeID uuid.UUID) error {
	return s.db.Model(&models.Route{}).
		Where("id = ?", routeID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Sends lists a route's sends, newest first, with usernames.
func (s *RouteService) Sends(routeID uuid.UUID) ([]models.Send, error) {
	var sends []models.Send
	err := s.db.Preload("User").
		Where("route_id = ?", routeID).
		Order("created_at DESC").
		Find(&sends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sends: %w", err)
	}
	return sends, nil
}

// InteractionState is the requester's relationship to a route.
type InteractionState struct {
	Sent      bool
	Favorited bool
	Score     *int
}

// StateFor computes the viewing user's sent/favorited/score flags for
// a route.
func (s *RouteService) StateFor(routeID, userID uuid.UUID) (*InteractionState, error) {
	state := &InteractionState{}

	var count int64
	if err := s.db.Model(&models.Send{}).Where("route_id = ? AND user_id = ?", routeID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	state.Sent = count > 0

	if err := s.db.Model(&models.Favorite{}).Where("route_id = ? AND user_id = ?", routeID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	state.Favorited = count > 0

	var rating models.Rating
	err := s.db.Where("route_id = ? AND user_id = ?", routeID, userID).First(&rating).Error
	if err == nil {
		state.Score = &rating.Score
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return state, nil
}

// SetterUsername resolves the route's setter name for display.
func (s *RouteService) SetterUsername(route *models.Route) string {
	if route.SetterID == nil {
		return ""
	}
	var user models.User
	if err := s.db.Select("username").First(&user, "id = ?", *route.SetterID).Error; err != nil {
		return ""
	}
	return user.Username
}

func RouteToResponse(route *models.Route, setter string) dto.RouteResponse {
	resp := dto.RouteResponse{
		ID:         route.ID,
		Slug:       route.Slug,
		Name:       route.Name,
		Type:       route.Type,
		Grade:      route.Grade,
		GradeLabel: grades.Display(route.Grade),
		Setter:     setter,
		Location:   route.Location,
		DateSet:    time.Time(route.DateSet).Format("2006-01-02"),
		Status:     route.Status,
		Color1:     route.Color1,
		Color2:     route.Color2,
		Notes:      route.Notes,
		Views:      route.Views,
		CreatedAt:  route.CreatedAt,
	}
	if route.DateTorn != nil {
		resp.DateTorn = time.Time(*route.DateTorn).Format("2006-01-02")
	}
	return resp
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
