package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bunker/core/utils"
	"bunker/feature/catalog/models"
)

// Document is the JSON interchange format for catalogs.
type Document struct {
	Traits        []TraitEntry       `json:"traits"`
	ActionCards   []CardEntry        `json:"action_cards"`
	ReactionCards []CardEntry        `json:"reaction_cards"`
	Shelters      []ShelterEntry     `json:"shelters"`
	Catastrophes  []CatastropheEntry `json:"catastrophes"`
}

// TraitEntry is a trait as written in a document. Power is decoded
// leniently because spreadsheet exports often quote numbers.
type TraitEntry struct {
	Category    string `json:"trait_type"`
	Description string `json:"description"`
	Power       any    `json:"power"`
}

// CardEntry is an action or reaction card.
type CardEntry struct {
	Description string `json:"description"`
}

// ShelterEntry is a shelter description.
type ShelterEntry struct {
	Size        any    `json:"size"`
	Difficulty  any    `json:"difficulty"`
	Description string `json:"description"`
}

// CatastropheEntry is a catastrophe.
type CatastropheEntry struct {
	Severity    any    `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Problem locates an invalid document entry.
type Problem struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Reason  string `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s[%d]: %s", p.Section, p.Index, p.Reason)
}

// Entries are the validated catalog rows of a document.
type Entries struct {
	Traits        []models.Trait
	ActionCards   []models.ActionCard
	ReactionCards []models.ReactionCard
	Shelters      []models.ShelterDescription
	Catastrophes  []models.Catastrophe
}

// ParseDocument decodes a catalog document.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}
	return &doc, nil
}

// Entries converts the document into catalog rows. Every entry is checked
// and all problems are returned together.
func (d *Document) Entries() (*Entries, []Problem) {
	var (
		out      Entries
		problems []Problem
	)
	add := func(section string, i int, reason string) {
		problems = append(problems, Problem{Section: section, Index: i, Reason: reason})
	}

	for i, e := range d.Traits {
		power, err := utils.ToInt(e.Power)
		if err != nil {
			add("traits", i, "power: "+err.Error())
			continue
		}
		t := models.Trait{
			Category:    models.Category(strings.ToLower(strings.TrimSpace(e.Category))),
			Description: strings.TrimSpace(e.Description),
			Power:       power,
		}
		if reason := t.Validate(); reason != "" {
			add("traits", i, reason)
			continue
		}
		out.Traits = append(out.Traits, t)
	}

	for i, e := range d.ActionCards {
		desc := strings.TrimSpace(e.Description)
		if desc == "" {
			add("action_cards", i, "missing description")
			continue
		}
		out.ActionCards = append(out.ActionCards, models.ActionCard{Description: desc})
	}

	for i, e := range d.ReactionCards {
		desc := strings.TrimSpace(e.Description)
		if desc == "" {
			add("reaction_cards", i, "missing description")
			continue
		}
		out.ReactionCards = append(out.ReactionCards, models.ReactionCard{Description: desc})
	}

	for i, e := range d.Shelters {
		size, err := utils.ToInt(e.Size)
		if err != nil {
			add("shelters", i, "size: "+err.Error())
			continue
		}
		difficulty, err := utils.ToInt(e.Difficulty)
		if err != nil {
			add("shelters", i, "difficulty: "+err.Error())
			continue
		}
		s := models.ShelterDescription{Size: size, Difficulty: difficulty, Description: strings.TrimSpace(e.Description)}
		if reason := s.Validate(); reason != "" {
			add("shelters", i, reason)
			continue
		}
		out.Shelters = append(out.Shelters, s)
	}

	for i, e := range d.Catastrophes {
		severity, err := utils.ToInt(e.Severity)
		if err != nil {
			add("catastrophes", i, "severity: "+err.Error())
			continue
		}
		c := models.Catastrophe{Severity: severity, Title: strings.TrimSpace(e.Title), Description: utils.ToString(e.Description)}
		if reason := c.Validate(); reason != "" {
			add("catastrophes", i, reason)
			continue
		}
		out.Catastrophes = append(out.Catastrophes, c)
	}

	return &out, problems
}

// DocumentFromSnapshot renders a snapshot as a document.
func DocumentFromSnapshot(snap *Snapshot) *Document {
	doc := &Document{
		Traits:        []TraitEntry{},
		ActionCards:   []CardEntry{},
		ReactionCards: []CardEntry{},
		Shelters:      []ShelterEntry{},
		Catastrophes:  []CatastropheEntry{},
	}
	for _, t := range snap.DrawnTraits() {
		doc.Traits = append(doc.Traits, TraitEntry{Category: string(t.Category), Description: t.Description, Power: t.Power})
	}
	for _, c := range snap.ActionCards {
		doc.ActionCards = append(doc.ActionCards, CardEntry{Description: c.Description})
	}
	for _, c := range snap.ReactionCards {
		doc.ReactionCards = append(doc.ReactionCards, CardEntry{Description: c.Description})
	}
	for _, s := range snap.Shelters {
		doc.Shelters = append(doc.Shelters, ShelterEntry{Size: s.Size, Difficulty: s.Difficulty, Description: s.Description})
	}
	for _, c := range snap.Catastrophes {
		doc.Catastrophes = append(doc.Catastrophes, CatastropheEntry{Severity: c.Severity, Title: c.Title, Description: c.Description})
	}
	return doc
}
