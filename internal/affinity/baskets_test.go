package affinity

import (
	"testing"

	"affinity-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItems(rows [][2]string) []models.LineItem {
	items := make([]models.LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.LineItem{TransactionID: row[0], ProductName: row[1]})
	}
	return items
}

func TestBuildBaskets(t *testing.T) {
	items := lineItems([][2]string{
		{"T1", "Milk"},
		{"T1", "Bread"},
		{"T2", "Bread"},
		{"T1", "Milk"}, // duplicate within T1 collapses
		{"T3", "Eggs"},
		{"T2", "Milk"},
	})

	baskets := BuildBaskets(items)
	require.Len(t, baskets, 3)

	// First-seen transaction order, items sorted
	assert.Equal(t, "T1", baskets[0].TransactionID)
	assert.Equal(t, []string{"Bread", "Milk"}, baskets[0].Items)
	assert.Equal(t, "T2", baskets[1].TransactionID)
	assert.Equal(t, []string{"Bread", "Milk"}, baskets[1].Items)
	assert.Equal(t, "T3", baskets[2].TransactionID)
	assert.Equal(t, []string{"Eggs"}, baskets[2].Items)
}

func TestBuildBasketsSingleLineItem(t *testing.T) {
	baskets := BuildBaskets(lineItems([][2]string{{"T1", "Milk"}}))
	require.Len(t, baskets, 1)
	assert.Equal(t, 1, baskets[0].Size())
}

func TestBuildBasketsEmpty(t *testing.T) {
	assert.Empty(t, BuildBaskets(nil))
}
