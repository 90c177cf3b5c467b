package engine

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/fatehq/fate-cli/internal/model"
)

// Strategy names one ordering of the comparison view.
type Strategy string

const (
	// StrategyFreedom orders by openness and privacy first:
	// openSource*2 + privacy*2 + protocolSupport.
	StrategyFreedom Strategy = "freedom"
	// StrategyEase orders by ease of use alone.
	StrategyEase Strategy = "ease"
	// StrategyBalanced orders by the unweighted sum of every rated dimension.
	StrategyBalanced Strategy = "balanced"
)

// Strategies lists the valid sort strategies in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyFreedom, StrategyEase, StrategyBalanced}
}

// ParseStrategy resolves a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(s)) {
	case StrategyFreedom:
		return StrategyFreedom, nil
	case StrategyEase:
		return StrategyEase, nil
	case StrategyBalanced, "overall":
		return StrategyBalanced, nil
	}
	return "", eris.Errorf("engine: unknown sort strategy %q (want freedom, ease, or balanced)", s)
}

// StrategyScore computes the raw sort key for one tool under a strategy.
// Missing dimensions contribute zero. Unknown strategies score everything
// zero, which leaves the catalog order untouched.
func StrategyScore(tool model.Tool, strategy Strategy) float64 {
	dim := func(d model.Dimension) float64 {
		v, _ := tool.Score(d)
		return float64(v)
	}

	switch strategy {
	case StrategyFreedom:
		return dim(model.DimOpenSource)*2 + dim(model.DimPrivacy)*2 + dim(model.DimProtocolSupport)
	case StrategyEase:
		return dim(model.DimEaseOfUse)
	case StrategyBalanced:
		var sum float64
		for _, v := range tool.Scores {
			sum += float64(v)
		}
		return sum
	}
	return 0
}

// SortCatalog returns a new slice with the tools ordered descending under
// the given strategy. The input is never mutated; ties keep catalog order.
func SortCatalog(tools []model.Tool, strategy Strategy) []model.Tool {
	sorted := make([]model.Tool, len(tools))
	copy(sorted, tools)
	sortToolsDesc(sorted, func(t model.Tool) float64 {
		return StrategyScore(t, strategy)
	})
	return sorted
}
