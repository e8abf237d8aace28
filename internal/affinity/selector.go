package affinity

import (
	"sort"

	"affinity-backend/internal/errors"
)

// Recommendation is a rule normalized around one product: the other member
// of the pair becomes the recommended product and Confidence is directed
// from the viewed product toward it.
type Recommendation struct {
	Product    string
	Support    float64
	Confidence float64
	Lift       float64
}

// ValidateParams checks the selector's tunable parameters against their
// documented domains before any filtering happens.
func ValidateParams(minSupport, minConfidence float64, k int) error {
	if minSupport < 0 || minSupport > 1 {
		return errors.InvalidParameter("min_support", minSupport, "[0,1]")
	}
	if minConfidence < 0 || minConfidence > 1 {
		return errors.InvalidParameter("min_confidence", minConfidence, "[0,1]")
	}
	if k < 1 {
		return errors.InvalidParameter("top_k", k, "positive integers")
	}
	return nil
}

// TopRules filters the table by minimum support and stored A→B confidence,
// sorts descending by lift and returns the first k rows. The sort is stable,
// so lift ties keep the table's canonical order and the view is
// deterministic.
func TopRules(result *Result, minSupport, minConfidence float64, k int) ([]Rule, error) {
	if err := ValidateParams(minSupport, minConfidence, k); err != nil {
		return nil, err
	}

	filtered := []Rule{}
	for _, rule := range result.Rules {
		if rule.Support >= minSupport && rule.Confidence >= minConfidence {
			filtered = append(filtered, rule)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Lift > filtered[j].Lift
	})

	if len(filtered) > k {
		filtered = filtered[:k]
	}
	return filtered, nil
}

// RecommendationsFor returns every rule involving the given product as a
// recommendation of the pair's other member, with the correct directional
// confidence. The stored table is canonicalized by sort order, not by which
// product a user is viewing, so rows where the product is ItemB use the
// derived B→A confidence.
func RecommendationsFor(result *Result, product string, minSupport, minConfidence float64) ([]Recommendation, error) {
	// k is not a parameter of this view; validate the thresholds only.
	if err := ValidateParams(minSupport, minConfidence, 1); err != nil {
		return nil, err
	}

	recs := []Recommendation{}
	for _, rule := range result.Rules {
		var rec Recommendation
		switch product {
		case rule.ItemA:
			rec = Recommendation{
				Product:    rule.ItemB,
				Support:    rule.Support,
				Confidence: rule.Confidence,
				Lift:       rule.Lift,
			}
		case rule.ItemB:
			rec = Recommendation{
				Product:    rule.ItemA,
				Support:    rule.Support,
				Confidence: result.ReverseConfidence(rule),
				Lift:       rule.Lift,
			}
		default:
			continue
		}
		if rec.Support >= minSupport && rec.Confidence >= minConfidence {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Lift > recs[j].Lift
	})
	return recs, nil
}
