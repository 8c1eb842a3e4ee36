package sample

import (
	"math/rand/v2"
)

// Option configures a sampling call via the functional options pattern.
type Option func(*config)

type config struct {
	seed *int64
}

// WithSeed makes the draw reproducible: the same seed over the same table
// selects the same rows in the same order.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// source returns a PCG generator, seeded from process entropy when no seed is set.
func (c *config) source() *rand.Rand {
	if c.seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(*c.seed), 0))
}
