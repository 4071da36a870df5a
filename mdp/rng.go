// Package mdp - RNG utilities shared by the randomized strategies.
//
// Policy:
//   - No global generator: every run receives its own *rand.Rand.
//   - seed == 0 selects a fixed default seed, so the zero Options value is
//     reproducible.
//   - *rand.Rand is not goroutine-safe; derive one stream per worker with
//     StreamRand (order-independent) or SplitRand (consumes the parent).
package mdp

import "math/rand/v2"

// defaultSeed is used when callers pass seed == 0.
const defaultSeed uint64 = 1

// NewRand returns a deterministic PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewPCG(seed, mixSeed(seed, 0)))
}

// StreamRand returns the stream-th independent generator of seed. The result
// depends only on (seed, stream), so parallel workers can derive their
// streams in any order.
func StreamRand(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	s := mixSeed(seed, stream+1)

	return rand.New(rand.NewPCG(s, mixSeed(s, stream)))
}

// SplitRand derives a child generator from parent and a stream id. It draws
// one value from parent so that repeated calls with the same stream still
// give different children. A nil parent behaves like NewRand(0).
func SplitRand(parent *rand.Rand, stream uint64) *rand.Rand {
	var p uint64
	if parent == nil {
		p = defaultSeed
	} else {
		p = parent.Uint64()
	}
	s := mixSeed(p, stream)

	return rand.New(rand.NewPCG(s, mixSeed(s, stream+1)))
}

// mixSeed is the SplitMix64 finalizer applied to parent^stream; small input
// changes avalanche into unrelated outputs.
func mixSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

func orDefaultRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}

	return NewRand(0)
}
