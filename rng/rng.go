// SPDX-License-Identifier: MIT
// Package: consentflow/rng
//
// rng.go - deterministic 32-bit random source for procedural layout.
//
// Contract:
//   - New(seed) truncates seed to its low 32 bits; equal truncated seeds ⇒ equal streams.
//   - Float64 returns values in [0,1) built from one 32-bit draw (exactly representable).
//   - Pure integer arithmetic (wrapping uint32 multiply); no floating-point state.
//
// Determinism:
//   - The stream is a mulberry32 sequence, stable across platforms and Go versions.
//   - Derived helpers (Range, Intn, Chance, Angle) consume exactly one draw each.

package rng

import "math"

// golden is the mulberry32 state increment.
const golden uint32 = 0x6d2b79f5

// twoPow32 scales a 32-bit draw into [0,1).
const twoPow32 = 4294967296.0

// Source is a seeded mulberry32 generator. The zero value is a valid
// generator seeded with 0. A Source is not safe for concurrent use.
type Source struct {
	state uint32
}

// New returns a Source seeded with the low 32 bits of seed.
// Complexity: O(1).
func New(seed int64) *Source {
	return &Source{state: uint32(seed)}
}

// Uint32 advances the generator and returns the next 32-bit output.
func (s *Source) Uint32() uint32 {
	s.state += golden
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)

	return z ^ (z >> 14)
}

// Float64 returns the next value in [0,1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / twoPow32
}

// Range returns min + (max-min)*Float64().
func (s *Source) Range(min, max float64) float64 {
	return Range(s, min, max)
}

// Intn returns a value in [0,n). n ≤ 0 yields 0 without consuming a draw.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n { // guards float rounding at the upper edge
		i = n - 1
	}

	return i
}

// Chance reports whether the next draw falls below p.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// Angle returns a phase in [0, 2π).
func (s *Source) Angle() float64 {
	return s.Float64() * 2 * math.Pi
}

// Generator is anything producing floats in [0,1).
// *Source satisfies it; tests may substitute scripted sequences.
type Generator interface {
	Float64() float64
}

// Range maps the next draw of g linearly onto [min, max).
func Range(g Generator, min, max float64) float64 {
	return min + (max-min)*g.Float64()
}

// Derive folds integer terms into a base seed. Hosts use it to key layouts
// by viewport (seed + w·31 + h·19 + device) so that each size gets a stable
// but distinct arrangement.
func Derive(seed int64, terms ...int64) int64 {
	for _, t := range terms {
		seed += t
	}

	return seed
}
