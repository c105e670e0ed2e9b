package checks

import (
	"fmt"

	"bunker/feature/catalog"
	"bunker/feature/catalog/models"
)

const (
	maxShelterSize = 3
	maxLevel       = 5
)

// ShelterGap is a room configuration no shelter description serves.
type ShelterGap struct {
	Size       int `json:"size"`
	Difficulty int `json:"difficulty"`
}

// CatalogReport lists the room parameters a draw would fail on, plus
// catalogs that are empty but do not fail a draw.
type CatalogReport struct {
	// Matched is false when some room parameters cannot be drawn.
	Matched      bool         `json:"matched"`
	ShelterGaps  []ShelterGap `json:"shelter_gaps"`
	SeverityGaps []int        `json:"severity_gaps"`
	Warnings     []string     `json:"warnings"`
}

// CheckCatalog checks that every shelter size and difficulty, and every
// severity, has at least one catalog entry to draw.
func CheckCatalog(snap *catalog.Snapshot) *CatalogReport {
	report := &CatalogReport{
		Matched:      true,
		ShelterGaps:  []ShelterGap{},
		SeverityGaps: []int{},
		Warnings:     []string{},
	}

	for size := 1; size <= maxShelterSize; size++ {
		for difficulty := 1; difficulty <= maxLevel; difficulty++ {
			if !hasShelter(snap.Shelters, size, difficulty) {
				report.ShelterGaps = append(report.ShelterGaps, ShelterGap{Size: size, Difficulty: difficulty})
				report.Matched = false
			}
		}
	}

	for severity := 1; severity <= maxLevel; severity++ {
		if !hasCatastrophe(snap.Catastrophes, severity) {
			report.SeverityGaps = append(report.SeverityGaps, severity)
			report.Matched = false
		}
	}

	for _, c := range models.DrawnCategories {
		if len(snap.Traits[c]) == 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("no %s traits, players get none", c))
		}
	}
	if len(snap.ActionCards) == 0 {
		report.Warnings = append(report.Warnings, "no action cards, players get none")
	}
	if len(snap.ReactionCards) == 0 {
		report.Warnings = append(report.Warnings, "no reaction cards, players get none")
	}

	return report
}

func hasShelter(descs []models.ShelterDescription, size, difficulty int) bool {
	for _, d := range descs {
		if d.Size == size && d.Difficulty <= difficulty {
			return true
		}
	}
	return false
}

func hasCatastrophe(cs []models.Catastrophe, severity int) bool {
	for _, c := range cs {
		if c.Severity <= severity {
			return true
		}
	}
	return false
}
