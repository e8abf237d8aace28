package affinity

// FrequencyTable holds the co-occurrence and item counts for one analysis
// run. It is built once per run and read-only afterwards.
type FrequencyTable struct {
	// PairCounts maps a canonical pair to the number of baskets containing
	// both of its items.
	PairCounts map[Pair]int

	// ItemCounts maps a product to the number of baskets containing it at
	// least once. Basket membership, not raw line-item occurrences: a
	// product bought twice in one transaction counts once.
	ItemCounts map[string]int

	// TotalBaskets counts every basket, including singletons
	TotalBaskets int
}

// CountFrequencies tallies pair and item frequencies across all baskets
func CountFrequencies(baskets []Basket, pairs []Pair) *FrequencyTable {
	table := &FrequencyTable{
		PairCounts:   make(map[Pair]int),
		ItemCounts:   make(map[string]int),
		TotalBaskets: len(baskets),
	}

	for _, pair := range pairs {
		table.PairCounts[pair]++
	}

	for _, basket := range baskets {
		for _, item := range basket.Items {
			table.ItemCounts[item]++
		}
	}

	return table
}
