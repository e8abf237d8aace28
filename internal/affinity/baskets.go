// Package affinity implements pairwise product association mining:
// basket building, pair enumeration, frequency counting and the
// support/confidence/lift metrics over retail transaction data.
package affinity

import (
	"sort"

	"affinity-backend/internal/models"
)

// Basket is the set of distinct products bought in one transaction.
// Items are sorted ascending; duplicates within a transaction collapse
// to a single occurrence.
type Basket struct {
	TransactionID string
	Items         []string
}

// Size returns the number of distinct items in the basket
func (b Basket) Size() int {
	return len(b.Items)
}

// BuildBaskets groups merged line items into one basket per transaction.
// Baskets are returned in first-seen transaction order so the rest of the
// pipeline stays deterministic for a given input ordering. A transaction
// with a single line item still produces a basket of size 1.
func BuildBaskets(items []models.LineItem) []Basket {
	sets := make(map[string]map[string]bool)
	order := []string{}

	for _, item := range items {
		set, ok := sets[item.TransactionID]
		if !ok {
			set = make(map[string]bool)
			sets[item.TransactionID] = set
			order = append(order, item.TransactionID)
		}
		set[item.ProductName] = true
	}

	baskets := make([]Basket, 0, len(order))
	for _, txn := range order {
		set := sets[txn]
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		baskets = append(baskets, Basket{TransactionID: txn, Items: names})
	}
	return baskets
}
