package services

import "math/rand"

// Shuffled returns a uniformly shuffled copy of items (Fisher-Yates). The
// input slice is left untouched so the selector stays side-effect free, and
// the caller supplies the random source so selection can be seeded in tests.
func Shuffled[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
