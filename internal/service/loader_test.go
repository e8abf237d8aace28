package service

import (
	"os"
	"path/filepath"
	"testing"

	"affinity-backend/internal/config"
	"affinity-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, products, lineItems string) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.csv"), []byte(products), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store_sales_line_items.csv"), []byte(lineItems), 0644))
	return config.DataConfig{
		Dir:           dir,
		ProductsFile:  "products.csv",
		LineItemsFile: "store_sales_line_items.csv",
	}
}

const validProducts = "product_id,product_name\nP1,Bread\nP2,Milk\nP3,Eggs\n"
const validLineItems = "transaction_id,product_id\nT1,P1\nT1,P2\nT2,P1\nT2,P2\nT3,P1\nT3,P3\nT4,P2\n"

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(writeDataset(t, validProducts, validLineItems))

	snapshot, err := loader.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.Version)
	assert.NotEmpty(t, snapshot.Fingerprint)
	assert.Len(t, snapshot.Items, 7)
	assert.Len(t, snapshot.Products, 3)
	assert.Equal(t, 4, snapshot.TransactionCount())
	assert.Equal(t, []string{"Bread", "Eggs", "Milk"}, snapshot.ProductNames())

	// The join resolves product ids to names
	assert.Equal(t, "T1", snapshot.Items[0].TransactionID)
	assert.Equal(t, "Bread", snapshot.Items[0].ProductName)
}

func TestLoaderMissingColumns(t *testing.T) {
	tests := []struct {
		name      string
		products  string
		lineItems string
	}{
		{
			"products missing product_name",
			"product_id,name\nP1,Bread\n",
			validLineItems,
		},
		{
			"products missing product_id",
			"id,product_name\nP1,Bread\n",
			validLineItems,
		},
		{
			"line items missing transaction_id",
			validProducts,
			"txn,product_id\nT1,P1\n",
		},
		{
			"line items missing product_id",
			validProducts,
			"transaction_id,sku\nT1,P1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(writeDataset(t, tt.products, tt.lineItems))
			_, err := loader.Load()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeMissingField))
		})
	}
}

func TestLoaderJoinMiss(t *testing.T) {
	loader := NewLoader(writeDataset(t, validProducts,
		"transaction_id,product_id\nT1,P1\nT1,P9\n"))

	_, err := loader.Load()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDataLoad))
	assert.Contains(t, err.Error(), "P9")
}

func TestLoaderEmptyJoin(t *testing.T) {
	loader := NewLoader(writeDataset(t, validProducts, "transaction_id,product_id\n"))

	_, err := loader.Load()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDataLoad))
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(config.DataConfig{
		Dir:           t.TempDir(),
		ProductsFile:  "products.csv",
		LineItemsFile: "store_sales_line_items.csv",
	})

	_, err := loader.Load()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDataLoad))
}

func TestLoaderExtraColumnsIgnored(t *testing.T) {
	products := "product_id,product_name,category\nP1,Bread,Bakery\nP2,Milk,Dairy\n"
	items := "transaction_id,product_id,quantity\nT1,P1,2\nT1,P2,1\n"
	loader := NewLoader(writeDataset(t, products, items))

	snapshot, err := loader.Load()
	require.NoError(t, err)
	assert.Len(t, snapshot.Items, 2)
}
