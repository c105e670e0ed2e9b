package room

import (
	"context"
	"fmt"
	"testing"

	"bunker/core/database"
	"bunker/feature/catalog"
	catalogmodels "bunker/feature/catalog/models"
	"bunker/feature/draw"
	"bunker/feature/room/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, catalogmodels.All()...))
	require.NoError(t, database.Migrate(db, models.All()...))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, c := range catalogmodels.DrawnCategories {
		for p := -2; p <= 4; p++ {
			require.NoError(t, db.Create(&catalogmodels.Trait{Category: c, Description: fmt.Sprintf("%s %d", c, p), Power: p}).Error)
		}
	}
	require.NoError(t, db.Create(&[]catalogmodels.ActionCard{{Description: "Steal"}, {Description: "Swap"}}).Error)
	require.NoError(t, db.Create(&[]catalogmodels.ReactionCard{{Description: "Veto"}, {Description: "Block"}}).Error)
	for size := 1; size <= 3; size++ {
		require.NoError(t, db.Create(&catalogmodels.ShelterDescription{Size: size, Difficulty: 1, Description: fmt.Sprintf("Shelter %d", size)}).Error)
	}
	require.NoError(t, db.Create(&[]catalogmodels.Catastrophe{
		{Severity: 1, Title: "Drought"},
		{Severity: 2, Title: "Flood"},
		{Severity: 5, Title: "Asteroid"},
	}).Error)
}

// newTestService returns a service over a seeded in-memory database. The
// catalog is reloaded on every draw.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	seedCatalog(t, db)

	catalogs := catalog.NewService(db, nil, "bunker", "catalog/catalog.json", 0, zap.NewNop())
	svc := NewService(db, draw.NewEngine(draw.NewSource(42)), catalogs, Config{}, zap.NewNop())
	return svc, db
}

// sequentialCodes hands out codes in order, repeating the last one.
func sequentialCodes(codes ...string) func() string {
	i := 0
	return func() string {
		code := codes[min(i, len(codes)-1)]
		i++
		return code
	}
}

func createRoom(t *testing.T, svc *Service, players int) *models.Room {
	t.Helper()
	room, err := svc.Create(context.Background(), CreateRequest{PlayersCount: players, Difficulty: 3, Balance: 3, Severity: 2})
	require.NoError(t, err)
	return room
}
