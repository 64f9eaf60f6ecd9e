package services

import (
	"testing"
	"time"

	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the same error
// translation the production connection uses, so duplicate-key
// handling behaves like it does against Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Gym{},
		&models.Membership{},
		&models.User{},
		&models.RefreshToken{},
		&models.Route{},
		&models.Send{},
		&models.Favorite{},
		&models.Rating{},
		&models.GymFollow{},
	))
	return db
}

func createGym(t *testing.T, db *gorm.DB, slug string, owner *models.User) *models.Gym {
	t.Helper()
	gym := &models.Gym{
		ID:              uuid.New(),
		Slug:            slug,
		Name:            "Gym " + slug,
		LocationOptions: "Cave\nSlab Wall\nOverhang",
		OwnerID:         owner.ID,
	}
	require.NoError(t, db.Create(gym).Error)
	return gym
}

func createUser(t *testing.T, db *gorm.DB, gym *models.Gym, username string, level int) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Password: "x",
		Level:    level,
	}
	if gym != nil {
		user.GymID = &gym.ID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type routeOpts struct {
	typ      string
	grade    float64
	location string
	status   string
	setter   *models.User
	torn     *time.Time
}

func createRoute(t *testing.T, db *gorm.DB, gym *models.Gym, slug string, opts routeOpts) *models.Route {
	t.Helper()
	if opts.typ == "" {
		opts.typ = models.TypeBouldering
	}
	if opts.grade == 0 {
		opts.grade = 1003
	}
	if opts.location == "" {
		opts.location = "Cave"
	}
	if opts.status == "" {
		opts.status = models.StatusComplete
	}
	route := &models.Route{
		ID:       uuid.New(),
		Slug:     slug,
		GymID:    gym.ID,
		Type:     opts.typ,
		Grade:    opts.grade,
		Location: opts.location,
		Status:   opts.status,
		DateSet:  datatypes.Date(time.Now()),
		Color1:   "#d11f2d",
		Color2:   "#ffffff",
	}
	if opts.setter != nil {
		route.SetterID = &opts.setter.ID
	}
	if opts.torn != nil {
		d := datatypes.Date(*opts.torn)
		route.DateTorn = &d
	}
	require.NoError(t, db.Create(route).Error)
	return route
}
