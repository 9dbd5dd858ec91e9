// Package crossing implements the deterministic lane-crossing simulation:
// seed normalization, procedural lane generation, lane phase advance,
// block scrolling and player collision.
package crossing

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

// SeedLength is the number of characters in a normalized seed.
const SeedLength = 10

// EntropySource supplies randomness for seeds the user left empty.
// *rand.Rand from math/rand/v2 satisfies it.
type EntropySource interface {
	IntN(n int) int
}

type globalEntropy struct{}

func (globalEntropy) IntN(n int) int { return rand.IntN(n) }

// DefaultEntropy draws from the process-wide math/rand/v2 source.
var DefaultEntropy EntropySource = globalEntropy{}

// NormalizeSeed turns user input into a canonical seed of exactly
// SeedLength characters. Empty input yields random decimal digits drawn
// from src; longer input is truncated; shorter input is repeated.
func NormalizeSeed(input string, src EntropySource) string {
	if input == "" {
		if src == nil {
			src = DefaultEntropy
		}
		digits := make([]byte, SeedLength)
		for i := range digits {
			digits[i] = byte('0' + src.IntN(10))
		}
		return string(digits)
	}

	runes := []rune(input)
	if len(runes) >= SeedLength {
		return string(runes[:SeedLength])
	}

	repeated := []rune(strings.Repeat(input, SeedLength/len(runes)+1))
	return string(repeated[:SeedLength])
}

// SeedToU64 folds a normalized seed into the 64-bit match seed with FNV-1a.
func SeedToU64(normalized string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(normalized)) //nolint:errcheck // hash writes never fail
	return h.Sum64()
}
