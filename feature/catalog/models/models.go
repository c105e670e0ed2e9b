package models

import "fmt"

// Category is the kind of a trait card.
type Category string

const (
	CategoryBio        Category = "bio"
	CategoryProfession Category = "profession"
	CategoryHealth     Category = "health"
	CategoryHobby      Category = "hobby"
	CategoryFear       Category = "fear"
	CategoryCharacter  Category = "character"
	CategoryBackground Category = "background"
	CategoryKnowledge  Category = "knowledge"
	CategoryItem       Category = "item"
)

// DrawnCategories are the power-balanced categories, in draw order.
// The biography is generated, never drawn from the catalog.
var DrawnCategories = []Category{
	CategoryProfession,
	CategoryHealth,
	CategoryHobby,
	CategoryFear,
	CategoryCharacter,
	CategoryBackground,
	CategoryKnowledge,
	CategoryItem,
}

var categoryLabels = map[Category]string{
	CategoryBio:        "Bio",
	CategoryProfession: "Profession",
	CategoryHealth:     "Health",
	CategoryHobby:      "Hobby",
	CategoryFear:       "Fear",
	CategoryCharacter:  "Character",
	CategoryBackground: "Background",
	CategoryKnowledge:  "Knowledge",
	CategoryItem:       "Items",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

const (
	MinPower = -10
	MaxPower = 10
)

// Trait is a catalog trait card. Negative power is a handicap, positive an asset.
type Trait struct {
	ID          uint     `gorm:"column:id;primaryKey" json:"id"`
	Category    Category `gorm:"column:trait_type;type:varchar(16);not null;index" json:"trait_type"`
	Description string   `gorm:"column:description;type:text;not null" json:"description"`
	Power       int      `gorm:"column:power;not null" json:"power"`
}

// TableName overrides the table name for traits.
func (Trait) TableName() string {
	return "traits"
}

// Validate returns a problem description, or "" when the trait is usable.
func (t Trait) Validate() string {
	if !t.Category.Valid() {
		return fmt.Sprintf("unknown category %q", t.Category)
	}
	if t.Category == CategoryBio {
		return "bio traits are generated, not drawn"
	}
	if t.Description == "" {
		return "missing description"
	}
	if t.Power < MinPower || t.Power > MaxPower {
		return fmt.Sprintf("power %d outside [%d, %d]", t.Power, MinPower, MaxPower)
	}
	return ""
}

// ActionCard is a one-shot action a player may play.
type ActionCard struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
}

// TableName overrides the table name for action cards.
func (ActionCard) TableName() string {
	return "action_cards"
}

// ReactionCard is a one-shot reaction a player may play.
type ReactionCard struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
}

// TableName overrides the table name for reaction cards.
func (ReactionCard) TableName() string {
	return "reaction_cards"
}

// ShelterDescription describes a shelter for a size class (1-3, not seats)
// that is available from a difficulty upward.
type ShelterDescription struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Size        int    `gorm:"column:size;not null;index" json:"size"`
	Difficulty  int    `gorm:"column:difficulty;not null" json:"difficulty"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
}

// TableName overrides the table name for shelter descriptions.
func (ShelterDescription) TableName() string {
	return "shelter_descriptions"
}

// Validate returns a problem description, or "" when the entry is usable.
func (s ShelterDescription) Validate() string {
	if s.Size < 1 || s.Size > 3 {
		return fmt.Sprintf("size %d outside [1, 3]", s.Size)
	}
	if s.Difficulty < 1 || s.Difficulty > 5 {
		return fmt.Sprintf("difficulty %d outside [1, 5]", s.Difficulty)
	}
	if s.Description == "" {
		return "missing description"
	}
	return ""
}

// Catastrophe is the disaster a room plays through.
type Catastrophe struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Severity    int    `gorm:"column:severity;not null;index" json:"severity"`
	Title       string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
}

// TableName overrides the table name for catastrophes.
func (Catastrophe) TableName() string {
	return "catastrophes"
}

// Validate returns a problem description, or "" when the entry is usable.
func (c Catastrophe) Validate() string {
	if c.Severity < 1 || c.Severity > 5 {
		return fmt.Sprintf("severity %d outside [1, 5]", c.Severity)
	}
	if c.Title == "" {
		return "missing title"
	}
	return ""
}

// All returns every catalog model for migration and schema checks.
func All() []any {
	return []any{&Trait{}, &ActionCard{}, &ReactionCard{}, &ShelterDescription{}, &Catastrophe{}}
}
