package service

import (
	"encoding/csv"
	"io"
	"strconv"

	"affinity-backend/internal/affinity"
	"affinity-backend/internal/errors"
)

// ExportService serializes rule tables to delimited text for download
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// ruleHeader matches the dashboard's download column layout
var ruleHeader = []string{"Product A", "Product B", "Support", "Confidence", "Lift"}

// WriteRules writes the rule table as CSV: header row, UTF-8, no index
// column, metric values rounded to 4 decimals.
func (s *ExportService) WriteRules(w io.Writer, rules []affinity.Rule) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ruleHeader); err != nil {
		return errors.Internal("writing export header", err)
	}
	for _, rule := range rules {
		record := []string{
			rule.ItemA,
			rule.ItemB,
			formatMetric(rule.Support),
			formatMetric(rule.Confidence),
			formatMetric(rule.Lift),
		}
		if err := writer.Write(record); err != nil {
			return errors.Internal("writing export row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Internal("flushing export", err)
	}
	return nil
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(affinity.Round4(v), 'f', -1, 64)
}
