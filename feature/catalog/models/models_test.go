package models_test

import (
	"testing"

	"bunker/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	assert.True(t, models.CategoryFear.Valid())
	assert.False(t, models.Category("magic").Valid())
	assert.Equal(t, "Items", models.CategoryItem.Label())
	assert.Equal(t, "magic", models.Category("magic").Label())
	assert.Len(t, models.DrawnCategories, 8)
	assert.NotContains(t, models.DrawnCategories, models.CategoryBio)
}

func TestTrait_Validate(t *testing.T) {
	tests := []struct {
		name  string
		trait models.Trait
		want  string
	}{
		{"Valid", models.Trait{Category: models.CategoryHealth, Description: "Asthma", Power: -3}, ""},
		{"Bounds", models.Trait{Category: models.CategoryHealth, Description: "Iron lungs", Power: 10}, ""},
		{"Too Strong", models.Trait{Category: models.CategoryHealth, Description: "Immortal", Power: 11}, "power 11 outside [-10, 10]"},
		{"Unknown Category", models.Trait{Category: "magic", Description: "Wand", Power: 1}, `unknown category "magic"`},
		{"Bio", models.Trait{Category: models.CategoryBio, Description: "30 years", Power: 0}, "bio traits are generated, not drawn"},
		{"Empty", models.Trait{Category: models.CategoryItem, Power: 1}, "missing description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.trait.Validate())
		})
	}
}

func TestShelterAndCatastrophe_Validate(t *testing.T) {
	assert.Empty(t, models.ShelterDescription{Size: 2, Difficulty: 3, Description: "Metro"}.Validate())
	assert.NotEmpty(t, models.ShelterDescription{Size: 4, Difficulty: 3, Description: "Metro"}.Validate())
	assert.NotEmpty(t, models.ShelterDescription{Size: 1, Difficulty: 0, Description: "Cellar"}.Validate())

	assert.Empty(t, models.Catastrophe{Severity: 5, Title: "Meteor"}.Validate())
	assert.NotEmpty(t, models.Catastrophe{Severity: 6, Title: "Meteor"}.Validate())
	assert.NotEmpty(t, models.Catastrophe{Severity: 1}.Validate())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "traits", models.Trait{}.TableName())
	assert.Equal(t, "shelter_descriptions", models.ShelterDescription{}.TableName())
	assert.Equal(t, "catastrophes", models.Catastrophe{}.TableName())
	assert.Len(t, models.All(), 5)
}
