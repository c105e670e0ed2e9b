package catalog

import (
	"context"
	"errors"
	"fmt"

	"bunker/feature/catalog/models"

	"gorm.io/gorm"
)

// SectionReport counts what an import did to one catalog.
type SectionReport struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// ImportReport summarizes an import.
type ImportReport struct {
	Traits        SectionReport `json:"traits"`
	ActionCards   SectionReport `json:"action_cards"`
	ReactionCards SectionReport `json:"reaction_cards"`
	Shelters      SectionReport `json:"shelters"`
	Catastrophes  SectionReport `json:"catastrophes"`
}

// Import upserts entries by natural key in one transaction. Entries are never
// deleted: dealt shelters and catastrophes still reference catalog rows.
func Import(ctx context.Context, db *gorm.DB, entries *Entries) (*ImportReport, error) {
	report := &ImportReport{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range entries.Traits {
			var existing models.Trait
			err := tx.Where("trait_type = ? AND description = ?", t.Category, t.Description).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&t).Error; err != nil {
					return fmt.Errorf("failed to create trait: %w", err)
				}
				report.Traits.Created++
			case err != nil:
				return fmt.Errorf("failed to look up trait: %w", err)
			case existing.Power != t.Power:
				if err := tx.Model(&existing).Update("power", t.Power).Error; err != nil {
					return fmt.Errorf("failed to update trait %d: %w", existing.ID, err)
				}
				report.Traits.Updated++
			default:
				report.Traits.Unchanged++
			}
		}

		for _, c := range entries.ActionCards {
			created, err := createMissing(tx, &models.ActionCard{}, &c, "description = ?", c.Description)
			if err != nil {
				return fmt.Errorf("failed to import action card: %w", err)
			}
			count(&report.ActionCards, created)
		}

		for _, c := range entries.ReactionCards {
			created, err := createMissing(tx, &models.ReactionCard{}, &c, "description = ?", c.Description)
			if err != nil {
				return fmt.Errorf("failed to import reaction card: %w", err)
			}
			count(&report.ReactionCards, created)
		}

		for _, s := range entries.Shelters {
			var existing models.ShelterDescription
			err := tx.Where("size = ? AND description = ?", s.Size, s.Description).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&s).Error; err != nil {
					return fmt.Errorf("failed to create shelter description: %w", err)
				}
				report.Shelters.Created++
			case err != nil:
				return fmt.Errorf("failed to look up shelter description: %w", err)
			case existing.Difficulty != s.Difficulty:
				if err := tx.Model(&existing).Update("difficulty", s.Difficulty).Error; err != nil {
					return fmt.Errorf("failed to update shelter description %d: %w", existing.ID, err)
				}
				report.Shelters.Updated++
			default:
				report.Shelters.Unchanged++
			}
		}

		for _, c := range entries.Catastrophes {
			var existing models.Catastrophe
			err := tx.Where("title = ?", c.Title).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&c).Error; err != nil {
					return fmt.Errorf("failed to create catastrophe: %w", err)
				}
				report.Catastrophes.Created++
			case err != nil:
				return fmt.Errorf("failed to look up catastrophe: %w", err)
			case existing.Severity != c.Severity || existing.Description != c.Description:
				if err := tx.Model(&existing).Updates(map[string]any{
					"severity":    c.Severity,
					"description": c.Description,
				}).Error; err != nil {
					return fmt.Errorf("failed to update catastrophe %d: %w", existing.ID, err)
				}
				report.Catastrophes.Updated++
			default:
				report.Catastrophes.Unchanged++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// createMissing inserts row unless a row matching the query exists.
func createMissing(tx *gorm.DB, probe any, row any, query string, args ...any) (bool, error) {
	err := tx.Where(query, args...).First(probe).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}

func count(r *SectionReport, created bool) {
	if created {
		r.Created++
		return
	}
	r.Unchanged++
}
