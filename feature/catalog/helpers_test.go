package catalog_test

import (
	"testing"

	"bunker/core/database"
	"bunker/feature/catalog/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]models.Trait{
		{Category: models.CategoryProfession, Description: "Surgeon", Power: 8},
		{Category: models.CategoryProfession, Description: "Clown", Power: -2},
		{Category: models.CategoryHealth, Description: "Asthma", Power: -4},
		{Category: models.CategoryBio, Description: "Legacy bio row", Power: 0},
	}).Error)
	require.NoError(t, db.Create(&models.ActionCard{Description: "Swap professions"}).Error)
	require.NoError(t, db.Create(&models.ReactionCard{Description: "Veto a vote"}).Error)
	require.NoError(t, db.Create(&models.ShelterDescription{Size: 1, Difficulty: 1, Description: "Wine cellar"}).Error)
	require.NoError(t, db.Create(&models.Catastrophe{Severity: 2, Title: "Flood", Description: "Water everywhere"}).Error)
}
