// Package qubit - RNG utilities shared by every measuring operation.
//
// Goals:
//   - Determinism: same seed ⇒ identical measurement outcomes across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Safety: a nil Source falls back to the goroutine-safe global generator.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use DeriveSource to create independent streams for parallel measurements.
package qubit

import "math/rand"

// Source is the randomness consumed by measurement. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
	// Intn returns a pseudo-random number in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// defaultSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultSeed int64 = 1

// NewSource returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64-style finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveSource creates an independent deterministic stream from base and a
// stream identifier. If base==nil, defaultSeed is used as the parent;
// otherwise base.Int63() is consumed once so repeated derivations differ.
//
// Complexity: O(1).
func DeriveSource(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// globalSource forwards to the top-level math/rand functions.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) Intn(n int) int   { return rand.Intn(n) }

// OrGlobal returns src, or the process-global generator when src is nil.
func OrGlobal(src Source) Source {
	if src == nil {
		return globalSource{}
	}
	return src
}
