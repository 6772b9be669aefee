// Package seed turns prompt text into reproducible randomness.
//
// A prompt string is hashed into a 32-bit seed with [Hash], and the seed
// constructs a [Stream] of pseudo-random values in [0, 1). Two streams
// built from the same seed produce identical sequences, which is the
// foundation of every reproducibility guarantee in the renderer: the same
// prompt always yields the same artwork.
//
// The generator is a mulberry32 scrambler: a 32-bit counter advanced by a
// fixed additive constant, mixed with xor-shifts and wrapping multiplies.
// It is fast and statistically fine for visual randomness. It is not
// cryptographic and must never be used where unpredictability matters.
package seed

// FNV-1a 32-bit parameters.
const (
	offsetBasis uint32 = 2166136261
	prime       uint32 = 16777619
)

// Hash maps text to a 32-bit seed using FNV-1a over the code points.
// It is a total function: every string, including the empty string, has a
// defined seed, and identical text always hashes identically
// (case-sensitive, exact sequence).
func Hash(text string) uint32 {
	h := offsetBasis
	for _, r := range text {
		h ^= uint32(r)
		h *= prime
	}
	return h
}

// Stream is a deterministic pseudo-random sequence over [0, 1).
// It holds a single 32-bit word of mutable state and is owned by exactly
// one render pass; it is not safe for concurrent use.
type Stream struct {
	state uint32
}

// NewStream constructs a stream from a 32-bit seed. Streams built from the
// same seed emit identical sequences for the same number of Next calls.
func NewStream(s uint32) *Stream {
	return &Stream{state: s}
}

// Next advances the stream and returns the next value in [0, 1).
func (s *Stream) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / 4294967296.0
}

// Skip discards n values. It is equivalent to calling Next n times and is
// used when a caller needs to line up with a known stream position.
func (s *Stream) Skip(n int) {
	for i := 0; i < n; i++ {
		s.Next()
	}
}
