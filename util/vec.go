package util

import (
	"fmt"
	"strings"
)

// ZeroVector returns an all-zero observation vector of the given width.
func ZeroVector(n int) []float64 {
	return make([]float64, n)
}

// PadVector pads v with zeros (or truncates it) to exactly n entries.
// The input slice is never modified.
func PadVector(v []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, v)
	return out
}

// OnesMask returns an availability mask with every action legal.
func OnesMask(n int) []int {
	mask := make([]int, n)
	for i := range mask {
		mask[i] = 1
	}
	return mask
}

// DiscretizeKey maps an observation vector to a coarse string key by
// rounding every entry to the given number of decimals. Used to index
// tabular policies over continuous observations.
func DiscretizeKey(v []float64, decimals int) string {
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%.*f", decimals, x)
	}
	return b.String()
}
