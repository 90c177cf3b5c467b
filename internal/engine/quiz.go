package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/fatehq/fate-cli/internal/catalog"
	"github.com/fatehq/fate-cli/internal/model"
)

// ScoreQuiz converts a user's answer set, complete or not, into the full
// catalog ranked by accumulated option weights. The function is total:
// unknown question ids, unknown option ids, and weight entries for tools
// that left the catalog are all skipped (logged at debug as an authoring
// aid), and an empty answer set yields every tool at zero in catalog order.
// The same answers always produce the same ranking.
func ScoreQuiz(cat *catalog.Catalog, answers model.Answers) []model.RankedTool {
	scores := make(map[string]float64, len(answers))

	// Walk the question bank in authored order rather than ranging over the
	// answers map, so accumulation order (and float summation) is identical
	// on every run.
	for _, q := range cat.Questions() {
		optionID, answered := answers[q.ID]
		if !answered {
			continue
		}
		option, ok := q.Option(optionID)
		if !ok {
			zap.L().Debug("engine: answer references unknown option",
				zap.String("question", q.ID),
				zap.String("option", optionID),
			)
			continue
		}
		for toolID, weight := range option.Weights {
			if !cat.HasTool(toolID) {
				zap.L().Debug("engine: quiz weight references unknown tool",
					zap.String("question", q.ID),
					zap.String("option", optionID),
					zap.String("tool", toolID),
				)
				continue
			}
			scores[toolID] += weight
		}
	}

	for questionID := range answers {
		if _, ok := cat.Question(questionID); !ok {
			zap.L().Debug("engine: answer references unknown question",
				zap.String("question", questionID),
			)
		}
	}

	ranked := make([]model.RankedTool, 0, len(cat.Tools()))
	for _, t := range cat.Tools() {
		ranked = append(ranked, model.RankedTool{Tool: t, Score: scores[t.ID]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
