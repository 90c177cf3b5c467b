// Package engine implements the scoring and ranking logic: display-score
// calculation under named weight tables, catalog sort strategies, quiz
// weight accumulation, and requirement-mismatch detection. Every function
// is a pure transformation of the catalog and the caller's input; none of
// them perform I/O or return errors for malformed data. Inconsistencies in
// the hand-maintained dataset are skipped, optionally with a debug log.
package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/fatehq/fate-cli/internal/model"
)

// WeightTable maps a dimension to its relative importance when reducing a
// tool's score vector to a single display number. Tables are parameters,
// never baked into the calculator: different display contexts weigh the
// dimensions differently.
type WeightTable map[model.Dimension]float64

// CardWeights is the canonical table for the tool-card and comparison-table
// badge. It favors openness and privacy, then protocol and model freedom.
func CardWeights() WeightTable {
	return WeightTable{
		model.DimOpenSource:       1.5,
		model.DimPrivacy:          1.5,
		model.DimProtocolSupport:  1.2,
		model.DimOpenModelSupport: 1.2,
		model.DimDecentralization: 1.0,
		model.DimEaseOfUse:        1.0,
		model.DimCostEfficiency:   1.0,
		model.DimCapabilities:     1.0,
	}
}

// FreedomWeights is the canonical table for the "freedom score" badge shown
// on the top-pick banner: openness, privacy, and portability at 1.5x.
func FreedomWeights() WeightTable {
	return WeightTable{
		model.DimOpenSource:       1.5,
		model.DimPrivacy:          1.5,
		model.DimPortability:      1.5,
		model.DimProtocolSupport:  1.2,
		model.DimDecentralization: 1.2,
		model.DimOpenModelSupport: 1.0,
		model.DimEaseOfUse:        1.0,
		model.DimCostEfficiency:   1.0,
		model.DimCapabilities:     1.0,
	}
}

// tableByName resolves the named weight tables exposed through config and
// the CLI --weights flag.
func tableByName(name string) (WeightTable, bool) {
	switch strings.ToLower(name) {
	case "", "card":
		return CardWeights(), true
	case "freedom":
		return FreedomWeights(), true
	}
	return nil, false
}

// TableByName returns the named canonical weight table.
func TableByName(name string) (WeightTable, error) {
	t, ok := tableByName(name)
	if !ok {
		return nil, eris.Errorf("engine: unknown weight table %q (want card or freedom)", name)
	}
	return t, nil
}

// Validate checks that a weight table can produce a meaningful score:
// no negative weights and a positive total.
func (w WeightTable) Validate() error {
	var sum float64
	for dim, weight := range w {
		if weight < 0 {
			return eris.Errorf("engine: weight for %s must be >= 0", dim)
		}
		sum += weight
	}
	if sum <= 0 {
		return eris.New("engine: weight table sum must be > 0")
	}
	return nil
}

// maxDimensionScore is the top of the per-dimension rating scale.
const maxDimensionScore = 5

// DisplayScore reduces a tool's score vector to an integer in [0,100] under
// the given weight table. Dimensions the tool has never been rated on are
// skipped entirely: they contribute to neither the numerator nor the
// denominator, so a tool is scored only against the axes it was actually
// evaluated on. A tool sharing no dimensions with the table scores 0.
func DisplayScore(tool model.Tool, weights WeightTable) int {
	var got, possible float64
	for dim, weight := range weights {
		if weight <= 0 {
			continue
		}
		score, ok := tool.Score(dim)
		if !ok {
			continue
		}
		got += float64(score) * weight
		possible += maxDimensionScore * weight
	}
	if possible == 0 {
		return 0
	}
	return int(math.Round(got / possible * 100))
}

// sortToolsDesc stably sorts tools descending by key, preserving catalog
// order among ties so results are reproducible across runs.
func sortToolsDesc(tools []model.Tool, key func(model.Tool) float64) {
	sort.SliceStable(tools, func(i, j int) bool {
		return key(tools[i]) > key(tools[j])
	})
}
