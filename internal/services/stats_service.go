package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/crimpd/crimpd-backend/internal/grades"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoLiveRoutes signals that every distribution is undefined: with
// zero live routes there is nothing to take fractions of.
var ErrNoLiveRoutes = errors.New("gym has no live routes")

// Distributions holds the four probability mass functions over a
// gym's live routes. Each map's values sum to 1.0, except the two
// grade maps which sum to 1.0 jointly (both are fractions of the same
// live-route total, split by discipline).
type Distributions struct {
	Types            map[string]float64
	TopRopeGrades    map[string]float64
	BoulderingGrades map[string]float64
	Setters          map[string]float64
	Locations        map[string]float64
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Compute builds all distributions over the gym's live routes from
// one grouped count query per distribution.
func (s *StatsService) Compute(gymID uuid.UUID) (*Distributions, error) {
	now := time.Now()

	live := func() *gorm.DB {
		return s.db.Model(&models.Route{}).Scopes(tenant.ForGym(gymID), LiveRoutes(now))
	}

	var total int64
	if err := live().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count live routes: %w", err)
	}
	if total == 0 {
		return nil, ErrNoLiveRoutes
	}

	dist := &Distributions{
		Types:            make(map[string]float64),
		TopRopeGrades:    make(map[string]float64),
		BoulderingGrades: make(map[string]float64),
		Setters:          make(map[string]float64),
		Locations:        make(map[string]float64),
	}

	type keyCount struct {
		Key   string
		Count int64
	}

	var byType []keyCount
	if err := live().Select("type AS key, COUNT(*) AS count").Group("type").Scan(&byType).Error; err != nil {
		return nil, fmt.Errorf("failed to group by type: %w", err)
	}
	for _, row := range byType {
		dist.Types[row.Key] = float64(row.Count) / float64(total)
	}

	// Grade codes that round to the same integer (minus, base, plus)
	// collapse into one bucket, displayed under the base label.
	type gradeCount struct {
		Type  string
		Grade float64
		Count int64
	}
	var byGrade []gradeCount
	if err := live().Select("type, grade, COUNT(*) AS count").Group("type, grade").Scan(&byGrade).Error; err != nil {
		return nil, fmt.Errorf("failed to group by grade: %w", err)
	}
	for _, row := range byGrade {
		label := grades.Display(math.Round(row.Grade))
		fraction := float64(row.Count) / float64(total)
		if row.Type == models.TypeBouldering {
			dist.BoulderingGrades[label] += fraction
		} else {
			dist.TopRopeGrades[label] += fraction
		}
	}

	var bySetter []keyCount
	err := live().
		Joins("LEFT JOIN users ON users.id = routes.setter_id").
		Select("COALESCE(users.username, '') AS key, COUNT(*) AS count").
		Group("users.username").
		Scan(&bySetter).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group by setter: %w", err)
	}
	for _, row := range bySetter {
		dist.Setters[row.Key] = float64(row.Count) / float64(total)
	}

	var byLocation []keyCount
	if err := live().Select("location AS key, COUNT(*) AS count").Group("location").Scan(&byLocation).Error; err != nil {
		return nil, fmt.Errorf("failed to group by location: %w", err)
	}
	for _, row := range byLocation {
		dist.Locations[row.Key] = float64(row.Count) / float64(total)
	}

	return dist, nil
}
