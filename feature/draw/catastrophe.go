package draw

import (
	"bunker/core/errs"
	"bunker/feature/catalog"
	"bunker/feature/catalog/models"
)

// SelectCatastrophe picks a catastrophe at or below severity.
func (e *Engine) SelectCatastrophe(snap *catalog.Snapshot, severity int) (models.Catastrophe, error) {
	var candidates []models.Catastrophe
	for _, c := range snap.Catastrophes {
		if c.Severity <= severity {
			candidates = append(candidates, c)
		}
	}

	c, ok := Pick(e.src, candidates)
	if !ok {
		return models.Catastrophe{}, errs.ContentUnavailable("no catastrophes for severity<=%d", severity)
	}
	return c, nil
}
