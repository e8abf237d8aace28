package affinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumeratePairs(t *testing.T) {
	baskets := []Basket{
		{TransactionID: "T1", Items: []string{"Bread", "Eggs", "Milk"}},
		{TransactionID: "T2", Items: []string{"Bread", "Milk"}},
		{TransactionID: "T3", Items: []string{"Milk"}},
		{TransactionID: "T4", Items: []string{}},
	}

	pairs := EnumeratePairs(baskets)

	// C(3,2) + C(2,2) = 3 + 1; sizes 0 and 1 emit nothing
	require.Len(t, pairs, 4)
	assert.Equal(t, []Pair{
		{A: "Bread", B: "Eggs"},
		{A: "Bread", B: "Milk"},
		{A: "Eggs", B: "Milk"},
		{A: "Bread", B: "Milk"},
	}, pairs)
}

func TestEnumeratePairsCanonicalOrder(t *testing.T) {
	pairs := EnumeratePairs([]Basket{
		{TransactionID: "T1", Items: []string{"Apple", "Banana", "Cherry", "Date"}},
	})

	assert.Len(t, pairs, 6) // C(4,2)
	for _, p := range pairs {
		assert.Less(t, p.A, p.B, "pair must be lexicographically canonical")
	}
}

func TestEnumeratePairsDuplicatesAcrossBaskets(t *testing.T) {
	baskets := []Basket{
		{TransactionID: "T1", Items: []string{"Bread", "Milk"}},
		{TransactionID: "T2", Items: []string{"Bread", "Milk"}},
	}

	pairs := EnumeratePairs(baskets)

	// The bag keeps one observation per qualifying basket
	require.Len(t, pairs, 2)
	assert.Equal(t, pairs[0], pairs[1])
}
