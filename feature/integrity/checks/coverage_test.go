package checks

import (
	"testing"

	"bunker/feature/catalog"
	"bunker/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckCatalog_Empty(t *testing.T) {
	report := CheckCatalog(catalog.NewSnapshot(nil, nil, nil, nil, nil))

	assert.False(t, report.Matched)
	assert.Len(t, report.ShelterGaps, 15)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, report.SeverityGaps)
	// Eight trait categories plus both card catalogs.
	assert.Len(t, report.Warnings, 10)
}

func TestCheckCatalog_DifficultyIsAFloor(t *testing.T) {
	shelters := []models.ShelterDescription{
		{ID: 1, Size: 1, Difficulty: 1, Description: "bunker"},
		{ID: 2, Size: 2, Difficulty: 3, Description: "silo"},
		{ID: 3, Size: 3, Difficulty: 5, Description: "vault"},
	}
	catastrophes := []models.Catastrophe{{ID: 1, Severity: 2, Title: "Flood"}}

	report := CheckCatalog(catalog.NewSnapshot(nil, nil, nil, shelters, catastrophes))

	assert.False(t, report.Matched)
	assert.ElementsMatch(t, []ShelterGap{
		{Size: 2, Difficulty: 1}, {Size: 2, Difficulty: 2},
		{Size: 3, Difficulty: 1}, {Size: 3, Difficulty: 2}, {Size: 3, Difficulty: 3}, {Size: 3, Difficulty: 4},
	}, report.ShelterGaps)
	assert.Equal(t, []int{1}, report.SeverityGaps)
}

func TestCheckCatalog_Complete(t *testing.T) {
	var traits []models.Trait
	for i, c := range models.DrawnCategories {
		traits = append(traits, models.Trait{ID: uint(i + 1), Category: c, Description: string(c), Power: 1})
	}
	shelters := []models.ShelterDescription{
		{ID: 1, Size: 1, Difficulty: 1, Description: "a"},
		{ID: 2, Size: 2, Difficulty: 1, Description: "b"},
		{ID: 3, Size: 3, Difficulty: 1, Description: "c"},
	}
	snap := catalog.NewSnapshot(traits,
		[]models.ActionCard{{ID: 1, Description: "swap"}},
		[]models.ReactionCard{{ID: 1, Description: "block"}},
		shelters,
		[]models.Catastrophe{{ID: 1, Severity: 1, Title: "Meteor"}},
	)

	report := CheckCatalog(snap)

	assert.True(t, report.Matched)
	assert.Empty(t, report.ShelterGaps)
	assert.Empty(t, report.SeverityGaps)
	assert.Empty(t, report.Warnings)
}
