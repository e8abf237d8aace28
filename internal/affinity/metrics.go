package affinity

import (
	"math"
	"sort"

	"affinity-backend/internal/errors"
	"affinity-backend/internal/models"
)

// Rule is one row of the affinity table. The pair key is directionless
// (ItemA sorts before ItemB) but Confidence is the directed A→B value.
// Metric values are kept unrounded; rounding to 4 decimals is a
// presentation concern handled at the serialization boundary.
type Rule struct {
	ItemA      string
	ItemB      string
	Support    float64
	Confidence float64
	Lift       float64

	// PairCount is the co-occurrence count behind the metrics, kept so the
	// reverse-direction confidence can be derived without recounting.
	PairCount int
}

// Result is the immutable outcome of one analysis run. It is materialized
// fresh on every invocation and only ever filtered or sorted into views.
type Result struct {
	Rules []Rule
	Freq  *FrequencyTable
}

// Engine runs the full affinity pipeline: baskets → pairs → counts → metrics.
// It holds no state, so concurrent runs need no coordination.
type Engine struct{}

// NewEngine creates a new engine
func NewEngine() *Engine {
	return &Engine{}
}

// Run computes the affinity table for the given merged line items.
// Rules come out in canonical order (ItemA, then ItemB), so two runs over
// the same dataset produce identical tables.
func (e *Engine) Run(items []models.LineItem) (*Result, error) {
	baskets := BuildBaskets(items)
	if len(baskets) == 0 {
		return nil, errors.EmptyDataset()
	}

	pairs := EnumeratePairs(baskets)
	freq := CountFrequencies(baskets, pairs)

	keys := make([]Pair, 0, len(freq.PairCounts))
	for pair := range freq.PairCounts {
		keys = append(keys, pair)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})

	total := float64(freq.TotalBaskets)
	rules := make([]Rule, 0, len(keys))
	for _, pair := range keys {
		count := freq.PairCounts[pair]
		c := float64(count)

		// item counts are each >= pair count >= 1 by construction, so the
		// denominators below cannot be zero.
		support := c / total
		confidence := c / float64(freq.ItemCounts[pair.A])
		lift := confidence / (float64(freq.ItemCounts[pair.B]) / total)

		rules = append(rules, Rule{
			ItemA:      pair.A,
			ItemB:      pair.B,
			Support:    support,
			Confidence: confidence,
			Lift:       lift,
			PairCount:  count,
		})
	}

	return &Result{Rules: rules, Freq: freq}, nil
}

// ReverseConfidence derives the B→A confidence for a rule from its counts.
// Lift needs no counterpart: it is symmetric in the two items.
func (r *Result) ReverseConfidence(rule Rule) float64 {
	return float64(rule.PairCount) / float64(r.Freq.ItemCounts[rule.ItemB])
}

// Round4 rounds a metric value to 4 decimal places for display
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
