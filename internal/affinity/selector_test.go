package affinity

import (
	"testing"

	"affinity-backend/internal/errors"
	"affinity-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asymmetricItems extends the worked example with T5:[Bread] so the two
// confidence directions of (Bread,Milk) differ: Bread→Milk = 2/4,
// Milk→Bread = 2/3.
func asymmetricItems() []models.LineItem {
	return lineItems([][2]string{
		{"T1", "Bread"}, {"T1", "Milk"},
		{"T2", "Bread"}, {"T2", "Milk"},
		{"T3", "Bread"}, {"T3", "Eggs"},
		{"T4", "Milk"},
		{"T5", "Bread"},
	})
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name          string
		minSupport    float64
		minConfidence float64
		k             int
		wantErr       bool
	}{
		{"all valid", 0.02, 0.3, 10, false},
		{"zero thresholds", 0, 0, 1, false},
		{"upper bounds", 1, 1, 1, false},
		{"negative support", -0.1, 0.3, 10, true},
		{"support above one", 1.1, 0.3, 10, true},
		{"negative confidence", 0.02, -0.3, 10, true},
		{"confidence above one", 0.02, 1.5, 10, true},
		{"zero k", 0.02, 0.3, 0, true},
		{"negative k", 0.02, 0.3, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.minSupport, tt.minConfidence, tt.k)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.TypeInvalidParameter))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTopRulesUnfiltered(t *testing.T) {
	result, err := NewEngine().Run(exampleItems())
	require.NoError(t, err)

	// Zero thresholds return min(k, distinct pairs) rows
	top, err := TopRules(result, 0, 0, 100)
	require.NoError(t, err)
	assert.Len(t, top, len(result.Rules))

	top, err = TopRules(result, 0, 0, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	// (Bread,Eggs) has lift 4/3, above (Bread,Milk)'s 8/9
	assert.Equal(t, "Eggs", top[0].ItemB)
}

func TestTopRulesSortedByLift(t *testing.T) {
	result, err := NewEngine().Run(asymmetricItems())
	require.NoError(t, err)

	top, err := TopRules(result, 0, 0, 100)
	require.NoError(t, err)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Lift, top[i].Lift, "lift must be non-increasing")
	}
}

func TestTopRulesFilters(t *testing.T) {
	result, err := NewEngine().Run(exampleItems())
	require.NoError(t, err)

	// Support 0.5 keeps only (Bread,Milk)
	top, err := TopRules(result, 0.5, 0, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Milk", top[0].ItemB)

	// Confidence 0.5 drops (Bread,Eggs) at 1/3
	top, err = TopRules(result, 0, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Milk", top[0].ItemB)

	// Thresholds nothing passes
	top, err = TopRules(result, 0.9, 0.9, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTopRulesRejectsBadParams(t *testing.T) {
	result, err := NewEngine().Run(exampleItems())
	require.NoError(t, err)

	_, err = TopRules(result, -1, 0, 10)
	assert.True(t, errors.IsType(err, errors.TypeInvalidParameter))
}

func TestRecommendationsForDirectionalConfidence(t *testing.T) {
	result, err := NewEngine().Run(asymmetricItems())
	require.NoError(t, err)

	// Viewing Milk: the (Bread,Milk) rule is stored with Milk as ItemB, so
	// the recommendation must use the derived Milk→Bread confidence 2/3,
	// not the stored Bread→Milk value 2/4.
	recs, err := RecommendationsFor(result, "Milk", 0, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Bread", recs[0].Product)
	assert.InDelta(t, 2.0/3.0, recs[0].Confidence, 1e-9)

	// Viewing Bread: stored direction applies
	recs, err = RecommendationsFor(result, "Bread", 0, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		switch rec.Product {
		case "Milk":
			assert.InDelta(t, 0.5, rec.Confidence, 1e-9)
		case "Eggs":
			assert.InDelta(t, 0.25, rec.Confidence, 1e-9)
		default:
			t.Fatalf("unexpected recommendation %q", rec.Product)
		}
	}
}

func TestRecommendationsForSortedAndFiltered(t *testing.T) {
	result, err := NewEngine().Run(asymmetricItems())
	require.NoError(t, err)

	recs, err := RecommendationsFor(result, "Bread", 0, 0)
	require.NoError(t, err)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Lift, recs[i].Lift)
	}

	// Confidence threshold applies to the directional value
	recs, err = RecommendationsFor(result, "Bread", 0, 0.4)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Milk", recs[0].Product)
}

func TestRecommendationsForUnknownProduct(t *testing.T) {
	result, err := NewEngine().Run(exampleItems())
	require.NoError(t, err)

	recs, err := RecommendationsFor(result, "Caviar", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
