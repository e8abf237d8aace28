package affinity

// Pair is an unordered product pair in canonical form: A sorts before B,
// so a pair and its reverse share one key.
type Pair struct {
	A string
	B string
}

// EnumeratePairs emits every 2-combination of each basket's distinct items.
// Baskets of size 0 or 1 emit nothing. The output is an observation bag:
// the same pair appearing in several baskets is repeated once per basket,
// which is the raw co-occurrence signal counted downstream.
//
// A basket with n distinct items yields C(n,2) observations; no cap is
// imposed on basket size.
func EnumeratePairs(baskets []Basket) []Pair {
	pairs := []Pair{}
	for _, basket := range baskets {
		if basket.Size() < 2 {
			continue
		}
		// Items are already sorted, so pairs come out canonical.
		for i := 0; i < len(basket.Items); i++ {
			for j := i + 1; j < len(basket.Items); j++ {
				pairs = append(pairs, Pair{A: basket.Items[i], B: basket.Items[j]})
			}
		}
	}
	return pairs
}
