package catalog

import "math/rand"

// Shuffle returns a Fisher-Yates shuffled copy of in. The input slice is
// never mutated; empty and single-element inputs come back as plain copies.
func Shuffle[T any](rnd *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
