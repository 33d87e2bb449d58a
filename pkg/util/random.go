package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// NewRng builds a seeded generator. Every permutation consumed by the local
// search kernels comes from one of these, so a run is reproducible given its
// seed.
func NewRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// PermutateVectorGood shuffles vec in place (Fisher-Yates).
func PermutateVectorGood[T any](vec []T, rng *rand.Rand) {
	for i := len(vec) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		vec[i], vec[j] = vec[j], vec[i]
	}
}

// PermutateIndexVector returns a random permutation of 0..n-1.
func PermutateIndexVector[T constraints.Integer](n int, rng *rand.Rand) []T {
	perm := make([]T, n)
	for i := range perm {
		perm[i] = T(i)
	}
	PermutateVectorGood(perm, rng)
	return perm
}
