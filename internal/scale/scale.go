// Package scale provides the deterministic primitives behind district data
// synthesis: a seeded unit-interval PRNG, a stable string hash used to
// decorrelate seeds, and the jitter-scaling applied to numeric fields.
//
// Every function here is pure. Identical inputs always produce identical
// outputs, so regenerating derived datasets from unchanged sources yields
// byte-identical files.
package scale

import (
	"encoding/json"
	"math"
	"strconv"
)

// Jitter band applied on top of the district scale factor. Scaled values land
// within ±15% of value*factor.
const (
	jitterBase   = 0.85
	jitterSpread = 0.30
)

// Trend percentages do not scale with district magnitude; they vary
// independently within [0.7, 1.3).
const (
	trendBase   = 0.7
	trendSpread = 0.6
)

// UnitRandom returns a deterministic pseudo-random value in [0, 1) derived
// from seed (mulberry32 mixing). No shared state, no entropy source.
func UnitRandom(seed int) float64 {
	t := uint32(seed) + 0x6d2b79f5
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// HashString returns a non-negative integer hash of s. Collisions are fine;
// the hash only decorrelates seeds across field names and identifiers.
// Arithmetic wraps at 32 bits so the same string always hashes the same
// regardless of platform.
func HashString(s string) int {
	var h int32
	for _, r := range s {
		h = h<<5 - h + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

// TrendFactor returns the independent perturbation factor for trend
// percentage strings, in [0.7, 1.3).
func TrendFactor(seed int) float64 {
	return trendBase + UnitRandom(seed)*trendSpread
}

// Value scales a numeric value by factor with seeded jitter and rounds to the
// nearest integer. Non-numeric values (strings, booleans, nulls, nested
// structures) are returned unchanged so categorical fields survive the
// transform verbatim.
func Value(v any, factor float64, seed int) any {
	f, ok := Number(v)
	if !ok || math.IsNaN(f) {
		return v
	}
	scaled := math.Round(f * factor * (jitterBase + UnitRandom(seed)*jitterSpread))
	return json.Number(strconv.FormatFloat(scaled, 'f', -1, 64))
}

// ScaleFloat applies the same jitter-scaling as Value but on a raw float,
// for callers that have already parsed a number out of a string.
func ScaleFloat(f, factor float64, seed int) int64 {
	return int64(math.Round(f * factor * (jitterBase + UnitRandom(seed)*jitterSpread)))
}

// Number extracts a float64 from the numeric types that appear in decoded
// JSON documents. Returns false for anything non-numeric.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
