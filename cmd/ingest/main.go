// Command ingest dumps the source tables from a relational store into the
// flat CSV files consumed by the affinity backend's data loader.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"affinity-backend/internal/logging"
	"affinity-backend/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dsn    string
	tables []string
	outDir string
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Dump source tables from PostgreSQL to CSV files",
	Long: `ingest connects to the retail database and writes each requested
table to <out>/<table>.csv (UTF-8, header row).

Examples:
  ingest --dsn "host=localhost user=retail dbname=retail sslmode=disable"
  ingest --tables products,store_sales_line_items --out data/raw`,
	RunE: runIngest,
}

func init() {
	rootCmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (required)")
	rootCmd.Flags().StringSliceVar(&tables, "tables", []string{"products", "store_sales_line_items"}, "tables to dump")
	rootCmd.Flags().StringVar(&outDir, "out", "data/raw", "output directory for CSV files")
	_ = rootCmd.MarkFlagRequired("dsn")
}

func runIngest(cmd *cobra.Command, args []string) error {
	logging.InitializeDefault()
	defer logging.Sync()

	var ds service.DataSource = &service.PostgresDataSource{}
	if err := ds.Connect(dsn); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer ds.Close()

	known, err := ds.ListTables()
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	whitelist := make(map[string]bool, len(known))
	for _, t := range known {
		whitelist[t] = true
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, table := range tables {
		// Table names go into the dump query verbatim, so only names the
		// database reports are accepted.
		if !whitelist[table] {
			return fmt.Errorf("unknown table %q", table)
		}

		path := filepath.Join(outDir, table+".csv")
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}

		rows, err := ds.DumpTable(table, file)
		closeErr := file.Close()
		if err != nil {
			return fmt.Errorf("dumping %s: %w", table, err)
		}
		if closeErr != nil {
			return fmt.Errorf("writing %s: %w", path, closeErr)
		}

		logging.Info("table dumped",
			zap.String("table", table),
			zap.String("path", path),
			zap.Int("rows", rows))
	}

	logging.Info("ingestion completed", zap.Int("tables", len(tables)))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
