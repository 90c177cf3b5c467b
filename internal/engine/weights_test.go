package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatehq/fate-cli/internal/catalog"
	"github.com/fatehq/fate-cli/internal/model"
)

// testCatalog builds a small synthetic catalog covering the interesting
// shapes: a freedom-maximal tool, a proprietary crowd-pleaser, and a tool
// rated on only a subset of the dimensions.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	tools := []model.Tool{
		{
			ID: "sovereign", Name: "Sovereign", URL: "https://sovereign.example",
			Scores: model.Scores{
				model.DimOpenSource:      5,
				model.DimPrivacy:         5,
				model.DimProtocolSupport: 5,
				model.DimEaseOfUse:       3,
				model.DimCostEfficiency:  5,
				model.DimCapabilities:    4,
				model.DimPortability:     5,
			},
			Pricing: model.PricingInfo{Type: "free", FreeTier: true},
			Protocols: []model.Protocol{
				{Name: "Nostr", Supported: true, Quality: model.QualityExcellent},
				{Name: "Bitcoin/Lightning", Supported: true, Quality: model.QualityGood},
			},
			PrivacyLevel:    model.PrivacyHigh,
			OpenSourceLevel: model.FullyOpen,
		},
		{
			ID: "polished", Name: "Polished", URL: "https://polished.example",
			Scores: model.Scores{
				model.DimOpenSource:      1,
				model.DimPrivacy:         2,
				model.DimProtocolSupport: 1,
				model.DimEaseOfUse:       5,
				model.DimCostEfficiency:  3,
				model.DimCapabilities:    5,
			},
			Pricing: model.PricingInfo{Type: "freemium", FreeTier: true},
			Protocols: []model.Protocol{
				{Name: "Nostr", Supported: false, Quality: model.QualityNone},
				{Name: "Bitcoin/Lightning", Supported: false, Quality: model.QualityNone},
			},
			PrivacyLevel:    model.PrivacyLow,
			OpenSourceLevel: model.Proprietary,
		},
		{
			ID: "sparse", Name: "Sparse", URL: "https://sparse.example",
			Scores: model.Scores{
				model.DimOpenSource: 5,
				model.DimPrivacy:    4,
			},
			Pricing: model.PricingInfo{Type: "free", FreeTier: true},
			Protocols: []model.Protocol{
				{Name: "Nostr", Supported: false, Quality: model.QualityLimited},
				{Name: "Bitcoin/Lightning", Supported: true, Quality: model.QualityLimited},
			},
			PrivacyLevel:    model.PrivacyHigh,
			OpenSourceLevel: model.FullyOpen,
		},
	}

	questions := []model.QuizQuestion{
		{
			ID: "openSource", Question: "How important is open source to you?",
			Options: []model.QuizOption{
				{ID: "essential", Label: "Essential", Weights: map[string]float64{"sovereign": 5, "sparse": 4, "polished": 0}},
				{ID: "indifferent", Label: "Doesn't Matter", Weights: map[string]float64{"sovereign": 3, "sparse": 3, "polished": 5}},
			},
		},
		{
			ID: "privacy", Question: "How important is privacy to you?",
			Options: []model.QuizOption{
				{ID: "critical", Label: "Critical", Weights: map[string]float64{"sovereign": 5, "sparse": 5, "polished": 1}},
				{ID: "low", Label: "Not a Priority", Weights: map[string]float64{"sovereign": 3, "sparse": 3, "polished": 4}},
			},
		},
		{
			ID: "retired", Question: "Question kept for an old dataset revision",
			Options: []model.QuizOption{
				{ID: "yes", Label: "Yes", Weights: map[string]float64{"ghost-tool": 9, "sovereign": 1}},
				{ID: "no", Label: "No", Weights: nil},
			},
		},
	}

	return catalog.New(tools, questions, nil)
}

func TestDisplayScoreBounded(t *testing.T) {
	t.Parallel()

	def, err := catalog.Default()
	require.NoError(t, err)

	tables := map[string]WeightTable{
		"card":    CardWeights(),
		"freedom": FreedomWeights(),
	}

	for name, table := range tables {
		for _, tool := range def.Tools() {
			score := DisplayScore(tool, table)
			assert.GreaterOrEqual(t, score, 0, "%s/%s", name, tool.ID)
			assert.LessOrEqual(t, score, 100, "%s/%s", name, tool.ID)
		}
	}
}

func TestDisplayScoreKnownValues(t *testing.T) {
	t.Parallel()

	def, err := catalog.Default()
	require.NoError(t, err)

	shakespeare, ok := def.Tool("shakespeare")
	require.True(t, ok)
	lovable, ok := def.Tool("lovable")
	require.True(t, ok)

	// shakespeare card: 45 weighted points of 47 possible.
	assert.Equal(t, 96, DisplayScore(shakespeare, CardWeights()))
	assert.Equal(t, 44, DisplayScore(lovable, CardWeights()))
}

func TestDisplayScoreSkipsAbsentDimensions(t *testing.T) {
	t.Parallel()

	sparse := model.Tool{
		ID: "sparse",
		Scores: model.Scores{
			model.DimOpenSource: 5,
			model.DimPrivacy:    5,
		},
	}

	// Only the two rated dimensions count, so a perfect rating on them is a
	// perfect score regardless of how many dimensions the table names.
	assert.Equal(t, 100, DisplayScore(sparse, CardWeights()))

	half := model.Tool{
		ID:     "half",
		Scores: model.Scores{model.DimEaseOfUse: 5},
	}
	table := WeightTable{
		model.DimEaseOfUse:   1,
		model.DimPortability: 10, // absent from the tool, must not zero it out
	}
	assert.Equal(t, 100, DisplayScore(half, table))
}

func TestDisplayScoreNoSharedDimensions(t *testing.T) {
	t.Parallel()

	tool := model.Tool{ID: "x", Scores: model.Scores{model.DimPrivacy: 5}}
	assert.Equal(t, 0, DisplayScore(tool, WeightTable{model.DimEaseOfUse: 1}))
	assert.Equal(t, 0, DisplayScore(tool, WeightTable{}))
}

func TestTableByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "card", "freedom", "Freedom"} {
		table, err := TableByName(name)
		require.NoError(t, err, name)
		assert.NoError(t, table.Validate())
	}

	_, err := TableByName("bespoke")
	assert.Error(t, err)
}

func TestWeightTableValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, WeightTable{}.Validate(), "empty table has zero sum")
	assert.Error(t, WeightTable{model.DimPrivacy: -1, model.DimEaseOfUse: 2}.Validate())
	assert.NoError(t, WeightTable{model.DimPrivacy: 1.5}.Validate())
}
