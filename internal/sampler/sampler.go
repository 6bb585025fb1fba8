package sampler

import (
	"math/rand"
	"time"

	"github.com/subsynth/subsynth/internal/types"
)

// Sampler owns the run's pseudo-random generator. It is seeded exactly once
// and threaded explicitly through every stage; stages never reach for a
// global source, so a run is a pure function of (config, seed).
//
// Not safe for concurrent use. The pipeline is strictly sequential, which is
// also what keeps draw order, and therefore output, stable under a seed.
type Sampler struct {
	rng *rand.Rand
}

// New returns a sampler seeded with the given seed.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Float64 draws a uniform float in [0, 1).
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}

// UniformFloat draws a uniform float in [lo, hi).
func (s *Sampler) UniformFloat(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// UniformInt draws a uniform int in [lo, hi], both ends inclusive.
func (s *Sampler) UniformInt(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// Bernoulli reports true with probability p.
func (s *Sampler) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// Day draws a uniform day from the horizon.
func (s *Sampler) Day(h types.Horizon) time.Time {
	return h.Start.AddDate(0, 0, s.rng.Intn(h.NumDays()))
}

// WeightedDay draws a day from parallel slices of days and non-negative
// weights. Weights need not be normalized.
func (s *Sampler) WeightedDay(days []time.Time, weights []float64) time.Time {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := s.rng.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return days[i]
		}
	}
	return days[len(days)-1]
}

// Distribution is a static named categorical distribution. Entries keep their
// declaration order so cumulative sampling is deterministic.
type Distribution[T any] struct {
	values []T
	cum    []float64
}

// Entry pairs a value with its probability mass.
type Entry[T any] struct {
	Value T
	P     float64
}

// NewDistribution builds a distribution from entries whose probabilities sum
// to 1 (small float error is absorbed by the final bucket).
func NewDistribution[T any](entries ...Entry[T]) Distribution[T] {
	d := Distribution[T]{
		values: make([]T, len(entries)),
		cum:    make([]float64, len(entries)),
	}
	acc := 0.0
	for i, e := range entries {
		d.values[i] = e.Value
		acc += e.P
		d.cum[i] = acc
	}
	return d
}

// Sample draws a value according to the distribution's weights.
func (d Distribution[T]) Sample(s *Sampler) T {
	x := s.Float64()
	for i, c := range d.cum {
		if x < c {
			return d.values[i]
		}
	}
	return d.values[len(d.values)-1]
}
