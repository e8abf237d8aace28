package models

import (
	"sort"
	"time"
)

// Product is one row of the products source table
type Product struct {
	ID   string `json:"product_id"`
	Name string `json:"product_name"`
}

// LineItem is one merged sales row: a line-items row joined with its product.
// Many line items belong to one transaction.
type LineItem struct {
	TransactionID string `json:"transaction_id"`
	ProductName   string `json:"product_name"`
}

// Snapshot is an immutable view of the loaded dataset. A new snapshot (with a
// fresh version) is minted whenever the source files change; analysis runs
// always compute over a single snapshot.
type Snapshot struct {
	// Version identifies this load of the dataset
	Version string `json:"version"`

	// Fingerprint captures the source files' size and mtime
	Fingerprint string `json:"-"`

	// LoadedAt is when the snapshot was built
	LoadedAt time.Time `json:"loaded_at"`

	Products []Product  `json:"-"`
	Items    []LineItem `json:"-"`
}

// ProductNames returns the distinct product names present in the merged data,
// sorted ascending (the dashboard's product selector ordering).
func (s *Snapshot) ProductNames() []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, item := range s.Items {
		if !seen[item.ProductName] {
			seen[item.ProductName] = true
			names = append(names, item.ProductName)
		}
	}
	sort.Strings(names)
	return names
}

// TransactionCount returns the number of distinct transactions in the snapshot
func (s *Snapshot) TransactionCount() int {
	seen := make(map[string]bool)
	for _, item := range s.Items {
		seen[item.TransactionID] = true
	}
	return len(seen)
}
