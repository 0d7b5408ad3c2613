package random

import (
	"math"
	"math/rand"
	"slices"
	"time"
)

// Generator produces randomized values from its own source.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator with a fixed seed; equal seeds give equal sequences
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewFromTime creates a generator seeded with the current time
func NewFromTime() *Generator {
	return New(time.Now().UnixNano())
}

// Randomize applies ±percent randomization to value
// Example: Randomize(100, 1.0) returns value in range [99, 101]
func (g *Generator) Randomize(value float64, percent float64) float64 {
	if percent <= 0 {
		return value
	}

	variance := value * (percent / 100.0)
	offset := (g.rng.Float64()*2 - 1) * variance

	result := value + offset
	return math.Round(result*100) / 100
}

// RandomizeInt applies ±percent randomization to int value
func (g *Generator) RandomizeInt(value int, percent float64) int {
	return int(math.Round(g.Randomize(float64(value), percent)))
}

// SelectItems selects n distinct indices out of totalCount.
// Indices are returned in ascending order.
func (g *Generator) SelectItems(totalCount, n int) []int {
	if n <= 0 || totalCount <= 0 {
		return []int{}
	}
	if n > totalCount {
		n = totalCount
	}

	// Partial Fisher-Yates: the first n slots end up holding the sample
	indices := make([]int, totalCount)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + g.rng.Intn(totalCount-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	selected := indices[:n]
	slices.Sort(selected)
	return selected
}

// DistributeMinutes splits total minutes across n slots with ±percent variance per slot.
// The result always sums to total exactly; no slot is negative.
func (g *Generator) DistributeMinutes(total, n int, percent float64) []int {
	if n <= 0 || total <= 0 {
		return make([]int, max(n, 0))
	}

	base := float64(total) / float64(n)
	values := make([]int, n)
	sum := 0
	for i := range values {
		values[i] = max(int(math.Round(g.Randomize(base, percent))), 0)
		sum += values[i]
	}

	// Hand the rounding and variance drift back one minute at a time, round-robin
	for i := 0; sum != total; i = (i + 1) % n {
		switch {
		case sum < total:
			values[i]++
			sum++
		case values[i] > 0:
			values[i]--
			sum--
		}
	}
	return values
}
