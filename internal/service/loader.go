package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"affinity-backend/internal/config"
	"affinity-backend/internal/errors"
	"affinity-backend/internal/models"

	"github.com/google/uuid"
)

// Loader reads the two source CSV tables from an injected data directory and
// joins them into the merged line-item view the engine consumes. The core is
// agnostic to storage location; only the loader knows about files.
type Loader struct {
	productsPath  string
	lineItemsPath string
}

// NewLoader creates a loader for the configured data directory
func NewLoader(cfg config.DataConfig) *Loader {
	return &Loader{
		productsPath:  filepath.Join(cfg.Dir, cfg.ProductsFile),
		lineItemsPath: filepath.Join(cfg.Dir, cfg.LineItemsFile),
	}
}

// Fingerprint captures size and mtime of both source files. It is the cache
// key for snapshot reuse: if neither file changed, a cached snapshot is
// still valid.
func (l *Loader) Fingerprint() (string, error) {
	fp := ""
	for _, path := range []string{l.productsPath, l.lineItemsPath} {
		info, err := os.Stat(path)
		if err != nil {
			return "", errors.DataLoad("source file not accessible", err)
		}
		fp += fmt.Sprintf("%s:%d:%d;", path, info.Size(), info.ModTime().UnixNano())
	}
	return fp, nil
}

// Load reads, validates and joins the source tables into a fresh snapshot
func (l *Loader) Load() (*models.Snapshot, error) {
	fingerprint, err := l.Fingerprint()
	if err != nil {
		return nil, err
	}

	products, err := l.loadProducts()
	if err != nil {
		return nil, err
	}

	items, err := l.loadLineItems(products)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.DataLoad("join produced no rows", nil)
	}

	productList := make([]models.Product, 0, len(products))
	for id, name := range products {
		productList = append(productList, models.Product{ID: id, Name: name})
	}

	return &models.Snapshot{
		Version:     uuid.NewString(),
		Fingerprint: fingerprint,
		LoadedAt:    time.Now().UTC(),
		Products:    productList,
		Items:       items,
	}, nil
}

// loadProducts reads products.csv into a product_id → product_name map
func (l *Loader) loadProducts() (map[string]string, error) {
	file, err := os.Open(l.productsPath)
	if err != nil {
		return nil, errors.DataLoad("cannot open products table", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, errors.DataLoad("cannot read products header", err)
	}

	idIdx, err := columnIndex(headers, "products", "product_id")
	if err != nil {
		return nil, err
	}
	nameIdx, err := columnIndex(headers, "products", "product_name")
	if err != nil {
		return nil, err
	}

	products := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.DataLoad("malformed products row", err)
		}
		products[record[idIdx]] = record[nameIdx]
	}
	return products, nil
}

// loadLineItems reads the line-items table and resolves each row's product
// name through the products map (the inner join from the original schema).
func (l *Loader) loadLineItems(products map[string]string) ([]models.LineItem, error) {
	file, err := os.Open(l.lineItemsPath)
	if err != nil {
		return nil, errors.DataLoad("cannot open line items table", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, errors.DataLoad("cannot read line items header", err)
	}

	txnIdx, err := columnIndex(headers, "line_items", "transaction_id")
	if err != nil {
		return nil, err
	}
	productIdx, err := columnIndex(headers, "line_items", "product_id")
	if err != nil {
		return nil, err
	}

	items := []models.LineItem{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.DataLoad("malformed line items row", err)
		}
		line++

		name, ok := products[record[productIdx]]
		if !ok {
			return nil, errors.DataLoad(
				fmt.Sprintf("line %d references unknown product_id %q", line, record[productIdx]), nil)
		}
		items = append(items, models.LineItem{
			TransactionID: record[txnIdx],
			ProductName:   name,
		})
	}
	return items, nil
}

// columnIndex finds a required column in the header row
func columnIndex(headers []string, table, column string) (int, error) {
	for i, h := range headers {
		if h == column {
			return i, nil
		}
	}
	return 0, errors.MissingField(table, column)
}
