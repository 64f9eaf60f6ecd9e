package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type actionFixture struct {
	db    *gorm.DB
	gymA  *models.Gym
	gymB  *models.Gym
	route *models.Route
}

func newActionFixture(t *testing.T) *actionFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Gym{},
		&models.User{},
		&models.Route{},
		&models.Send{},
		&models.Favorite{},
		&models.Rating{},
		&models.GymFollow{},
	))

	f := &actionFixture{db: db}
	f.gymA = f.addGym(t, "aaaaa")
	f.gymB = f.addGym(t, "bbbbb")
	f.route = &models.Route{
		ID:       uuid.New(),
		Slug:     "r0001",
		GymID:    f.gymA.ID,
		Type:     models.TypeBouldering,
		Grade:    1003,
		Location: "Cave",
		Status:   models.StatusComplete,
		DateSet:  datatypes.Date(time.Now()),
		Color1:   "#ffffff",
		Color2:   "#ffffff",
	}
	require.NoError(t, db.Create(f.route).Error)
	return f
}

func (f *actionFixture) addGym(t *testing.T, slug string) *models.Gym {
	t.Helper()
	gym := &models.Gym{ID: uuid.New(), Slug: slug, Name: "Gym " + slug, OwnerID: uuid.New()}
	require.NoError(t, f.db.Create(gym).Error)
	return gym
}

func (f *actionFixture) addUser(t *testing.T, gym *models.Gym, username string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: username, Password: "x"}
	if gym != nil {
		user.GymID = &gym.ID
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

// newActionApp wires the interaction handler behind stand-ins for the
// auth and gate middleware, injecting a fixed user, gym, and route.
func (f *actionFixture) newActionApp(user *models.User) *fiber.App {
	h := NewInteractionHandler(services.NewInteractionService(f.db))
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			tenant.SetUser(c, user)
		}
		tenant.SetGym(c, f.gymA)
		tenant.SetRoute(c, f.route)
		return c.Next()
	})
	app.Post("/:gym/action/:action", h.GymAction)
	app.Post("/:gym/routes/:route/action/:action", h.RouteAction)
	return app
}

func postAction(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

func TestRouteActionResultShapes(t *testing.T) {
	f := newActionFixture(t)
	user := f.addUser(t, f.gymA, "alice")
	app := f.newActionApp(user)

	// First send reports new, the repeat does not, both succeed.
	status, body := postAction(t, app, "/aaaaa/routes/r0001/action/send", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true, "new": true}, body)

	status, body = postAction(t, app, "/aaaaa/routes/r0001/action/send", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true, "new": false}, body)

	// Removal has no new field at all.
	status, body = postAction(t, app, "/aaaaa/routes/r0001/action/unsend", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true}, body)

	status, body = postAction(t, app, "/aaaaa/routes/r0001/action/rate", `{"score": 4}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true}, body)

	status, body = postAction(t, app, "/aaaaa/routes/r0001/action/rate", `{"score": 11}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": false}, body)

	status, _ = postAction(t, app, "/aaaaa/routes/r0001/action/teleport", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestActionsRejectAnonymous(t *testing.T) {
	f := newActionFixture(t)
	app := f.newActionApp(nil)

	status, _ := postAction(t, app, "/aaaaa/routes/r0001/action/send", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = postAction(t, app, "/aaaaa/action/follow", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestActionsRejectOtherGymsMembers(t *testing.T) {
	f := newActionFixture(t)
	outsider := f.addUser(t, f.gymB, "bob")
	app := f.newActionApp(outsider)

	status, _ := postAction(t, app, "/aaaaa/routes/r0001/action/send", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	var count int64
	require.NoError(t, f.db.Model(&models.Send{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGlobalClimbersActAnywhere(t *testing.T) {
	f := newActionFixture(t)
	wanderer := f.addUser(t, nil, "wanderer")
	app := f.newActionApp(wanderer)

	status, body := postAction(t, app, "/aaaaa/action/follow", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true, "new": true}, body)

	status, body = postAction(t, app, "/aaaaa/routes/r0001/action/favorite", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true, "new": true}, body)
}
