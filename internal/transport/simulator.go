package transport

import (
	"io"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
)

const (
	simLowTemp   = 5.0
	simHighTemp  = 25.0
	simStepBound = 0.3
	simPrecision = 1
)

// Simulator emits a random-walk temperature, one sample per Read.
// The walk starts uniformly in [5, 25) and moves by up to ±0.3 each sample.
type Simulator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	temp   float64
	closed atomic.Bool
}

// NewSimulator returns a simulator drawing from rng, or from a randomly seeded
// source when rng is nil.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{
		rng:  rng,
		temp: simLowTemp + rng.Float64()*(simHighTemp-simLowTemp),
	}
}

// Read writes the next sample, formatted with one decimal, into p.
// It returns io.EOF after Close.
func (s *Simulator) Read(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, io.EOF
	}

	s.mu.Lock()
	sample := strconv.FormatFloat(s.temp, 'f', simPrecision, 64)
	s.temp += (s.rng.Float64()*2 - 1) * simStepBound
	s.mu.Unlock()

	return copy(p, sample), nil
}

// Close stops the simulator. Repeated calls are no-ops.
func (s *Simulator) Close() error {
	s.closed.Store(true)
	return nil
}
