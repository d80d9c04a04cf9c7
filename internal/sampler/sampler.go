// Package sampler picks target words from frequency-ordered candidates.
package sampler

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/wordpick/internal/model"
)

// Default pool sizes per word length tier.
const (
	DefaultLongPool   = 1000
	DefaultMediumPool = 700
	DefaultShortPool  = 500
)

// DefaultTiers returns the default pool sizes.
func DefaultTiers() model.Tiers {
	return model.Tiers{
		Long:   DefaultLongPool,
		Medium: DefaultMediumPool,
		Short:  DefaultShortPool,
	}
}

// Sampler selects words uniformly from a length-tiered pool.
// It is not safe for concurrent use.
type Sampler struct {
	rnd   *rand.Rand
	tiers model.Tiers
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithTiers overrides the pool sizes. Non-positive sizes keep the default.
func WithTiers(tiers model.Tiers) Option {
	return func(s *Sampler) {
		if tiers.Long > 0 {
			s.tiers.Long = tiers.Long
		}
		if tiers.Medium > 0 {
			s.tiers.Medium = tiers.Medium
		}
		if tiers.Short > 0 {
			s.tiers.Short = tiers.Short
		}
	}
}

// New returns a Sampler seeded with the current time.
func New(opts ...Option) *Sampler {
	return NewWithSeed(time.Now().UnixNano(), opts...)
}

// NewWithSeed returns a Sampler with a fixed seed.
func NewWithSeed(seed int64, opts ...Option) *Sampler {
	s := &Sampler{
		rnd:   rand.New(rand.NewSource(seed)),
		tiers: DefaultTiers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tiers returns the pool sizes in use.
func (s *Sampler) Tiers() model.Tiers {
	return s.tiers
}

// PoolSize returns the pool size for targetLength over total candidates.
func (s *Sampler) PoolSize(targetLength, total int) int {
	return PoolSize(s.tiers, targetLength, total)
}

// Pool returns the prefix of candidates eligible for targetLength.
// candidates must be ordered from most to least common; the order is not checked.
func (s *Sampler) Pool(candidates []string, targetLength int) []string {
	return candidates[:s.PoolSize(targetLength, len(candidates))]
}

// PickIndex returns the index in candidates of a uniformly chosen pool word.
func (s *Sampler) PickIndex(candidates []string, targetLength int) (int, bool) {
	size := s.PoolSize(targetLength, len(candidates))
	if size == 0 {
		return 0, false
	}
	return s.rnd.Intn(size), true
}

// Pick returns a uniformly chosen word from the pool for targetLength, or
// false when the pool is empty.
func (s *Sampler) Pick(candidates []string, targetLength int) (string, bool) {
	idx, ok := s.PickIndex(candidates, targetLength)
	if !ok {
		return "", false
	}
	return candidates[idx], true
}

// PoolSize applies the tier policy: five or more characters use tiers.Long,
// four use tiers.Medium, and anything shorter uses tiers.Short. The result
// never exceeds total.
func PoolSize(tiers model.Tiers, targetLength, total int) int {
	var limit int
	switch {
	case targetLength >= 5:
		limit = tiers.Long
	case targetLength == 4:
		limit = tiers.Medium
	default:
		limit = tiers.Short
	}
	if limit < 0 {
		limit = 0
	}
	return min(limit, total)
}
