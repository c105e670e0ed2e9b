package draw

import (
	"bunker/feature/catalog"
	"bunker/feature/catalog/models"
)

const (
	// MaxRefinements bounds the refinement pass.
	MaxRefinements = 20
	// candidateSlack widens the greedy candidate filter around the remaining budget.
	candidateSlack = 5
)

var (
	difficultyTargets = map[int]int{1: 50, 2: 30, 3: 15, 4: 5, 5: -10}
	balanceTolerances = map[int]int{1: 25, 2: 20, 3: 15, 4: 10, 5: 5}
)

// Target returns the total trait power aimed for at a difficulty.
func Target(difficulty int) (int, bool) {
	t, ok := difficultyTargets[difficulty]
	return t, ok
}

// Tolerance returns the accepted deviation from the target at a balance.
func Tolerance(balance int) (int, bool) {
	d, ok := balanceTolerances[balance]
	return d, ok
}

// Allocation is one player's drawn persona.
type Allocation struct {
	Bio    Bio
	Traits []models.Trait
	// Power is the sum of the drawn traits' power. The biography counts as 0.
	Power       int
	Target      int
	Tolerance   int
	Refinements int
}

// InBand reports whether the power landed within tolerance of the target.
func (a Allocation) InBand() bool {
	return inBand(a.Power, a.Target, a.Tolerance)
}

func inBand(power, target, tolerance int) bool {
	return power >= target-tolerance && power <= target+tolerance
}

// AllocateTraits draws a biography and at most one trait per category,
// steering the running power toward target. Empty categories are skipped.
// The result may miss the band when the catalog cannot reach it.
func (e *Engine) AllocateTraits(snap *catalog.Snapshot, target, tolerance int) Allocation {
	alloc := Allocation{
		Bio:       GenerateBio(e.src),
		Target:    target,
		Tolerance: tolerance,
	}

	for _, category := range models.DrawnCategories {
		pool := snap.Traits[category]
		if len(pool) == 0 {
			continue
		}

		candidates := greedyCandidates(pool, target-alloc.Power)
		trait, _ := Pick(e.src, candidates)
		alloc.Traits = append(alloc.Traits, trait)
		alloc.Power += trait.Power
	}

	if inBand(alloc.Power, target, tolerance) {
		return alloc
	}

	state := RefineState{Traits: alloc.Traits, Power: alloc.Power}
	pool := snap.DrawnTraits()
	for alloc.Refinements < MaxRefinements && !inBand(state.Power, target, tolerance) {
		e.src.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		var stop bool
		state, stop = Refine(target, state, pool)
		alloc.Refinements++
		if stop {
			break
		}
	}

	alloc.Traits = state.Traits
	alloc.Power = state.Power
	return alloc
}

// greedyCandidates keeps traits that do not overshoot the remaining budget
// by more than the slack, falling back to the whole pool.
func greedyCandidates(pool []models.Trait, remaining int) []models.Trait {
	var suitable []models.Trait
	for _, t := range pool {
		if remaining >= 0 && t.Power <= remaining+candidateSlack {
			suitable = append(suitable, t)
		} else if remaining < 0 && t.Power >= remaining-candidateSlack {
			suitable = append(suitable, t)
		}
	}
	if len(suitable) == 0 {
		return pool
	}
	return suitable
}
