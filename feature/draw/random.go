package draw

import (
	"math/rand/v2"
	"sync"
)

// Source is the random generator behind every draw. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic generator for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// lockedSource serializes access to a generator shared between requests.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource returns a generator safe for concurrent use.
// A zero seed picks a random one.
func NewLockedSource(seed uint64) Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedSource{src: NewSource(seed)}
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedSource) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.src.Shuffle(n, swap)
}

// WeightedIndex picks an index with probability proportional to its weight.
// It returns -1 when no weight is positive.
func WeightedIndex(src Source, weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	r := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
		last = i
	}
	// Float rounding can leave r just above the final weight.
	return last
}

// Pick chooses uniformly from items. ok is false for an empty slice.
func Pick[T any](src Source, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[src.IntN(len(items))], true
}

type ageBracket struct {
	min, max int
}

var (
	ageBrackets = []ageBracket{{14, 19}, {20, 29}, {30, 40}, {41, 50}, {51, 60}, {61, 70}, {71, 80}}
	ageWeights  = []float64{5, 15, 35, 15, 10, 10, 10}

	genders       = []string{"Male", "Female", "Androgyne"}
	genderWeights = []float64{47.5, 47.5, 5}

	orientations       = []string{"Heterosexual", "Homosexual", "Bisexual", "Pansexual", "Asexual"}
	orientationWeights = []float64{50, 20, 20, 5, 5}
)

// Age draws a bracket by weight, then an age uniformly inside it.
func Age(src Source) int {
	b := ageBrackets[WeightedIndex(src, ageWeights)]
	return b.min + src.IntN(b.max-b.min+1)
}

// Gender draws a gender label.
func Gender(src Source) string {
	return genders[WeightedIndex(src, genderWeights)]
}

// Orientation draws an orientation label.
func Orientation(src Source) string {
	return orientations[WeightedIndex(src, orientationWeights)]
}
