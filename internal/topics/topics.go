package topics

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"

	"github.com/adtyap26/ddsgen/internal/config"
)

// Package topics generates the shared pool of topic identifiers and draws
// per-node topic subsets from it.

// Topic is a 128-bit random identifier rendered as 32 lowercase hex digits.
type Topic string

// Pool is the ordered set of topics available for assignment in one run.
type Pool []Topic

// Rand is the randomness a run draws from. *math/rand/v2.Rand satisfies it;
// tests pass fixed sequences to force probe collisions.
type Rand interface {
	Uint64() uint64
	IntN(n int) int
}

// NewRand returns the generator a run draws from, seeded so the run can be
// repeated.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// GeneratePool returns n freshly drawn topics. Duplicates are not checked for:
// at 128 bits the collision probability is treated as negligible.
func GeneratePool(rng Rand, n int) (Pool, error) {
	if n <= 0 {
		return nil, errors.Wrapf(config.ErrInvalidParameter, "topic pool size must be positive, got %d", n)
	}
	pool := make(Pool, n)
	for i := range pool {
		pool[i] = Topic(fmt.Sprintf("%016x%016x", rng.Uint64(), rng.Uint64()))
	}
	return pool, nil
}

// Sample draws k distinct topics from pool, in the order they were claimed.
//
// Each draw picks a uniform index; if that slot is already taken it probes
// forward with wraparound to the next free one. Probing always moves forward,
// so once collisions start the emission order leans toward lower indices.
// That bias is kept so a seed keeps producing the same allocation.
func Sample(rng Rand, pool Pool, k int) ([]Topic, error) {
	if k < 0 {
		return nil, errors.Wrapf(config.ErrInvalidParameter, "topic quota must not be negative, got %d", k)
	}
	if k > len(pool) {
		return nil, errors.Wrapf(config.ErrInsufficientTopics, "there are only %d topics, not enough for %d", len(pool), k)
	}

	used := make([]bool, len(pool))
	picked := make([]Topic, 0, k)
	for i := 0; i < k; i++ {
		idx := rng.IntN(len(pool))
		for used[idx] {
			idx = (idx + 1) % len(pool) // Linear probe, wraps at the end
		}
		used[idx] = true
		picked = append(picked, pool[idx])
	}
	return picked, nil
}

// Join renders topics as the comma-joined list used in config sections.
func Join(ts []Topic) string {
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = string(t)
	}
	return strings.Join(ss, ",")
}
