package services

import (
	"testing"
	"time"

	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDistribution(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)

	createRoute(t, db, gym, "r0001", routeOpts{typ: models.TypeBouldering})
	createRoute(t, db, gym, "r0002", routeOpts{typ: models.TypeBouldering})
	createRoute(t, db, gym, "r0003", routeOpts{typ: models.TypeTopRope, grade: 10})

	dist, err := svc.Compute(gym.ID)
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3.0, dist.Types[models.TypeBouldering], 1e-9)
	assert.InDelta(t, 1.0/3.0, dist.Types[models.TypeTopRope], 1e-9)

	sum := 0.0
	for _, v := range dist.Types {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDistributionsExcludeDeadRoutes(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	createRoute(t, db, gym, "r0001", routeOpts{typ: models.TypeBouldering})
	createRoute(t, db, gym, "r0002", routeOpts{typ: models.TypeBouldering, torn: &tomorrow})
	createRoute(t, db, gym, "r0003", routeOpts{typ: models.TypeTopRope, grade: 10, torn: &yesterday})
	createRoute(t, db, gym, "r0004", routeOpts{typ: models.TypeTopRope, grade: 10, status: models.StatusInProgress})

	dist, err := svc.Compute(gym.ID)
	require.NoError(t, err)

	// Only the two live bouldering routes count.
	assert.InDelta(t, 1.0, dist.Types[models.TypeBouldering], 1e-9)
	assert.NotContains(t, dist.Types, models.TypeTopRope)
}

func TestDistributionsScopedToGym(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	ownerA := createUser(t, db, nil, "owner-a", models.LevelOwner)
	ownerB := createUser(t, db, nil, "owner-b", models.LevelOwner)
	gymA := createGym(t, db, "aaaaa", ownerA)
	gymB := createGym(t, db, "bbbbb", ownerB)

	createRoute(t, db, gymA, "r0001", routeOpts{typ: models.TypeBouldering})
	createRoute(t, db, gymB, "r0002", routeOpts{typ: models.TypeTopRope, grade: 10})

	dist, err := svc.Compute(gymA.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dist.Types[models.TypeBouldering], 1e-9)
	assert.NotContains(t, dist.Types, models.TypeTopRope)
}

func TestGradeVariantsCollapse(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)

	// V3-, V3, V3+ all land in the V3 bucket.
	createRoute(t, db, gym, "r0001", routeOpts{grade: 1002.75})
	createRoute(t, db, gym, "r0002", routeOpts{grade: 1003})
	createRoute(t, db, gym, "r0003", routeOpts{grade: 1003.25})
	// 5.10- and 5.10+ land in the 5.10 bucket.
	createRoute(t, db, gym, "r0004", routeOpts{typ: models.TypeTopRope, grade: 9.75})
	createRoute(t, db, gym, "r0005", routeOpts{typ: models.TypeTopRope, grade: 10.25})

	dist, err := svc.Compute(gym.ID)
	require.NoError(t, err)

	require.Len(t, dist.BoulderingGrades, 1)
	assert.InDelta(t, 0.6, dist.BoulderingGrades["V3"], 1e-9)
	require.Len(t, dist.TopRopeGrades, 1)
	assert.InDelta(t, 0.4, dist.TopRopeGrades["5.10"], 1e-9)
}

func TestSetterAndLocationDistributions(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)
	setterA := createUser(t, db, gym, "ana", models.LevelSetter)
	setterB := createUser(t, db, gym, "bob", models.LevelSetter)

	createRoute(t, db, gym, "r0001", routeOpts{setter: setterA, location: "Cave"})
	createRoute(t, db, gym, "r0002", routeOpts{setter: setterA, location: "Cave"})
	createRoute(t, db, gym, "r0003", routeOpts{setter: setterB, location: "Slab Wall"})
	createRoute(t, db, gym, "r0004", routeOpts{setter: setterB, location: "Overhang"})

	dist, err := svc.Compute(gym.ID)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, dist.Setters["ana"], 1e-9)
	assert.InDelta(t, 0.5, dist.Setters["bob"], 1e-9)

	assert.InDelta(t, 0.5, dist.Locations["Cave"], 1e-9)
	assert.InDelta(t, 0.25, dist.Locations["Slab Wall"], 1e-9)
	assert.InDelta(t, 0.25, dist.Locations["Overhang"], 1e-9)
}

func TestNoLiveRoutesIsUndefined(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	owner := createUser(t, db, nil, "owner", models.LevelOwner)
	gym := createGym(t, db, "abcde", owner)

	_, err := svc.Compute(gym.ID)
	assert.ErrorIs(t, err, ErrNoLiveRoutes)

	// Routes exist but none live: still undefined.
	createRoute(t, db, gym, "r0001", routeOpts{status: models.StatusNotStarted})
	_, err = svc.Compute(gym.ID)
	assert.ErrorIs(t, err, ErrNoLiveRoutes)
}
