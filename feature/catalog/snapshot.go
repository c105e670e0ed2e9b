package catalog

import (
	"context"
	"fmt"
	"time"

	"bunker/feature/catalog/models"

	"gorm.io/gorm"
)

// Snapshot is an immutable, in-memory copy of every catalog. Draws read
// from a snapshot so they never query catalogs inside a room transaction.
type Snapshot struct {
	Traits        map[models.Category][]models.Trait
	ActionCards   []models.ActionCard
	ReactionCards []models.ReactionCard
	Shelters      []models.ShelterDescription
	Catastrophes  []models.Catastrophe
	LoadedAt      time.Time
}

// Stats counts catalog entries.
type Stats struct {
	Traits        map[models.Category]int `json:"traits"`
	ActionCards   int                     `json:"action_cards"`
	ReactionCards int                     `json:"reaction_cards"`
	Shelters      int                     `json:"shelters"`
	Catastrophes  int                     `json:"catastrophes"`
}

// LoadSnapshot reads all catalogs.
func LoadSnapshot(ctx context.Context, db *gorm.DB) (*Snapshot, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	q := db.WithContext(ctx)

	var traits []models.Trait
	if err := q.Order("id").Find(&traits).Error; err != nil {
		return nil, fmt.Errorf("failed to load traits: %w", err)
	}

	snap := &Snapshot{LoadedAt: time.Now()}
	snap.setTraits(traits)

	if err := q.Order("id").Find(&snap.ActionCards).Error; err != nil {
		return nil, fmt.Errorf("failed to load action cards: %w", err)
	}
	if err := q.Order("id").Find(&snap.ReactionCards).Error; err != nil {
		return nil, fmt.Errorf("failed to load reaction cards: %w", err)
	}
	if err := q.Order("id").Find(&snap.Shelters).Error; err != nil {
		return nil, fmt.Errorf("failed to load shelter descriptions: %w", err)
	}
	if err := q.Order("id").Find(&snap.Catastrophes).Error; err != nil {
		return nil, fmt.Errorf("failed to load catastrophes: %w", err)
	}

	return snap, nil
}

// NewSnapshot builds a snapshot from in-memory entries.
func NewSnapshot(traits []models.Trait, actions []models.ActionCard, reactions []models.ReactionCard, shelters []models.ShelterDescription, catastrophes []models.Catastrophe) *Snapshot {
	snap := &Snapshot{
		ActionCards:   actions,
		ReactionCards: reactions,
		Shelters:      shelters,
		Catastrophes:  catastrophes,
		LoadedAt:      time.Now(),
	}
	snap.setTraits(traits)
	return snap
}

func (s *Snapshot) setTraits(traits []models.Trait) {
	s.Traits = make(map[models.Category][]models.Trait)
	for _, t := range traits {
		if t.Category == models.CategoryBio {
			continue
		}
		s.Traits[t.Category] = append(s.Traits[t.Category], t)
	}
}

// DrawnTraits returns every non-biography trait in category draw order.
func (s *Snapshot) DrawnTraits() []models.Trait {
	var all []models.Trait
	for _, c := range models.DrawnCategories {
		all = append(all, s.Traits[c]...)
	}
	return all
}

// Stats counts the snapshot's entries.
func (s *Snapshot) Stats() Stats {
	st := Stats{
		Traits:        make(map[models.Category]int, len(models.DrawnCategories)),
		ActionCards:   len(s.ActionCards),
		ReactionCards: len(s.ReactionCards),
		Shelters:      len(s.Shelters),
		Catastrophes:  len(s.Catastrophes),
	}
	for _, c := range models.DrawnCategories {
		st.Traits[c] = len(s.Traits[c])
	}
	return st
}
