package service

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"
)

// DataSource defines the interface for relational sources the ingest
// utility can dump tables from.
type DataSource interface {
	Connect(dsn string) error
	Close() error
	ListTables() ([]string, error)
	DumpTable(tableName string, w io.Writer) (int, error)
}

// PostgresDataSource implements DataSource for PostgreSQL
type PostgresDataSource struct {
	db *sql.DB
}

func (p *PostgresDataSource) Connect(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	p.db = db
	return nil
}

func (p *PostgresDataSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresDataSource) ListTables() ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;
	`
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// DumpTable writes every row of a table as CSV (header row included) and
// returns the number of data rows written. The table name is interpolated
// into the query, so callers must validate it against ListTables first.
func (p *PostgresDataSource) DumpTable(tableName string, w io.Writer) (int, error) {
	query := fmt.Sprintf("SELECT * FROM %s", tableName)

	rows, err := p.db.Query(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return count, err
		}

		record := make([]string, len(columns))
		for i, val := range values {
			record[i] = formatValue(val)
		}
		if err := writer.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	writer.Flush()
	return count, writer.Error()
}

// formatValue renders a scanned database value as CSV text
func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
