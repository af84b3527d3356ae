// Package random provides the uniform draws behind the simulated numbers.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform values in [0,1).
type Source interface {
	Float64() float64
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a goroutine-safe source. A zero seed seeds from the clock.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Sequence replays fixed draws in order and wraps around. Intn maps the
// draw onto [0,n). Used to pin simulated values in tests.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) Intn(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
