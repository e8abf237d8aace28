package models

import "time"

// Default analysis parameters, matching the dashboard's control panel defaults
const (
	DefaultMinSupport    = 0.02
	DefaultMinConfidence = 0.3
	DefaultTopK          = 10
)

// AnalyzeRequest is the body of POST /api/analyze. Pointer fields distinguish
// an omitted parameter (use the default) from an explicit zero.
type AnalyzeRequest struct {
	MinSupport    *float64 `json:"min_support,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	TopK          *int     `json:"top_k,omitempty"`
}

// RuleRow is one row of the affinity table as presented to clients.
// Metric values are rounded to 4 decimals.
type RuleRow struct {
	Rank       int     `json:"rank,omitempty"`
	ProductA   string  `json:"product_a"`
	ProductB   string  `json:"product_b"`
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
}

// RecommendationRow is one row of the per-product recommendations view
type RecommendationRow struct {
	RecommendedProduct string  `json:"recommended_product"`
	Support            float64 `json:"support"`
	Confidence         float64 `json:"confidence"`
	Lift               float64 `json:"lift"`
}

// AnalyzeResponse is returned by POST /api/analyze
type AnalyzeResponse struct {
	Message         string    `json:"message"`
	SnapshotVersion string    `json:"snapshot_version"`
	Transactions    int       `json:"transactions"`
	Products        int       `json:"products"`
	RuleCount       int       `json:"rule_count"`
	StrongRules     int       `json:"strong_rules"`
	TopRules        []RuleRow `json:"top_rules"`
}

// DatasetStatus describes the loaded snapshot
type DatasetStatus struct {
	Loaded       bool      `json:"loaded"`
	Version      string    `json:"version,omitempty"`
	LoadedAt     time.Time `json:"loaded_at,omitempty"`
	Rows         int       `json:"rows"`
	Products     int       `json:"products"`
	Transactions int       `json:"transactions"`
}

// ResultStatus describes the stored analysis result
type ResultStatus struct {
	Present         bool      `json:"present"`
	SnapshotVersion string    `json:"snapshot_version,omitempty"`
	RanAt           time.Time `json:"ran_at,omitempty"`
	RuleCount       int       `json:"rule_count"`
	MinSupport      float64   `json:"min_support"`
	MinConfidence   float64   `json:"min_confidence"`
	TopK            int       `json:"top_k"`
}

// StatusResponse is returned by GET /api/status
type StatusResponse struct {
	Dataset DatasetStatus `json:"dataset"`
	Result  ResultStatus  `json:"result"`
}

// ProductFrequency is one bar of the dashboard's product-frequency chart,
// counted over raw line items (not basket membership).
type ProductFrequency struct {
	Product string `json:"product"`
	Count   int    `json:"count"`
}

// ScatterPoint is one point of the support/confidence explainability plot
type ScatterPoint struct {
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
}

// SummaryResponse is returned by GET /api/summary
type SummaryResponse struct {
	Transactions int                `json:"transactions"`
	Products     int                `json:"products"`
	StrongRules  int                `json:"strong_rules"`
	TopProducts  []ProductFrequency `json:"top_products"`
	Scatter      []ScatterPoint     `json:"scatter"`
}

// ErrorResponse is the JSON shape of any error reply
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
