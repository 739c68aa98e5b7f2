package services

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffled_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	out := Shuffled(in, rng)

	require.Len(t, out, len(in))
	sorted := make([]int, len(out))
	copy(sorted, out)
	sort.Ints(sorted)
	assert.Equal(t, in, sorted)
}

func TestShuffled_LeavesInputUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := []string{"a", "b", "c", "d", "e"}
	want := []string{"a", "b", "c", "d", "e"}

	for i := 0; i < 50; i++ {
		_ = Shuffled(in, rng)
	}
	assert.Equal(t, want, in)
}

func TestShuffled_SeededDeterminism(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}

	first := Shuffled(in, rand.New(rand.NewSource(99)))
	second := Shuffled(in, rand.New(rand.NewSource(99)))

	assert.Equal(t, first, second)
}

func TestShuffled_EdgeSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Empty(t, Shuffled([]int{}, rng))
	assert.Equal(t, []int{5}, Shuffled([]int{5}, rng))
}

func TestShuffled_EventuallyReorders(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	moved := false
	for i := 0; i < 20 && !moved; i++ {
		out := Shuffled(in, rng)
		for j := range out {
			if out[j] != in[j] {
				moved = true
				break
			}
		}
	}
	assert.True(t, moved, "20 shuffles of 10 elements never changed the order")
}
