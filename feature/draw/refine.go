package draw

import (
	"bunker/feature/catalog/models"
)

// RefineState is the set of traits drawn so far and their total power.
type RefineState struct {
	Traits []models.Trait
	Power  int
}

// Refine scans pool in order for the first trait of an unassigned category
// that strictly reduces the distance to target, and returns the state with
// it added. stop is true when no trait improves the state. The input state
// is never modified.
func Refine(target int, state RefineState, pool []models.Trait) (RefineState, bool) {
	assigned := make(map[models.Category]bool, len(state.Traits))
	for _, t := range state.Traits {
		assigned[t.Category] = true
	}

	distance := abs(target - state.Power)
	for _, t := range pool {
		if t.Category == models.CategoryBio || assigned[t.Category] {
			continue
		}
		power := state.Power + t.Power
		if abs(target-power) < distance {
			traits := make([]models.Trait, len(state.Traits), len(state.Traits)+1)
			copy(traits, state.Traits)
			return RefineState{Traits: append(traits, t), Power: power}, false
		}
	}

	return state, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
