// Package catalog loads and indexes the static dataset the whole system
// runs on: the evaluated tools, the quiz question bank, and the rubric
// metadata. The catalog is built once, validated entry by entry, and is
// immutable afterwards; every engine function takes it as an explicit
// parameter rather than reading ambient state.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/fatehq/fate-cli/internal/model"
)

// Catalog is the immutable, indexed dataset. Authored order is preserved:
// ranking functions use it as the deterministic tie-breaker.
type Catalog struct {
	tools      []model.Tool
	questions  []model.QuizQuestion
	dimensions []model.DimensionInfo

	toolIdx     map[string]int
	questionIdx map[string]int

	revision string
}

// New builds a Catalog from authored entries. The dataset is hand-maintained
// and edited incrementally, so New never fails: invalid entries and
// duplicate ids are dropped with a warning (first occurrence wins), and quiz
// weights referencing unknown tool ids are reported but kept; the engine
// ignores them at scoring time.
func New(tools []model.Tool, questions []model.QuizQuestion, dimensions []model.DimensionInfo) *Catalog {
	c := &Catalog{
		dimensions:  dimensions,
		toolIdx:     make(map[string]int),
		questionIdx: make(map[string]int),
	}

	for _, t := range tools {
		if err := model.ValidateTool(t); err != nil {
			zap.L().Warn("catalog: dropping invalid tool", zap.String("id", t.ID), zap.Error(err))
			continue
		}
		if _, dup := c.toolIdx[t.ID]; dup {
			zap.L().Warn("catalog: dropping duplicate tool id", zap.String("id", t.ID))
			continue
		}
		c.toolIdx[t.ID] = len(c.tools)
		c.tools = append(c.tools, t)
	}

	for _, q := range questions {
		if err := model.ValidateQuestion(q); err != nil {
			zap.L().Warn("catalog: dropping invalid question", zap.String("id", q.ID), zap.Error(err))
			continue
		}
		if _, dup := c.questionIdx[q.ID]; dup {
			zap.L().Warn("catalog: dropping duplicate question id", zap.String("id", q.ID))
			continue
		}
		c.questionIdx[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	c.reportStaleWeights()
	c.revision = computeRevision(c.tools, c.questions)

	return c
}

// reportStaleWeights logs weight-map keys that no longer match a tool id.
// Purely an authoring aid; stale keys are legal and scored as zero.
func (c *Catalog) reportStaleWeights() {
	for _, q := range c.questions {
		for _, o := range q.Options {
			for toolID := range o.Weights {
				if _, ok := c.toolIdx[toolID]; !ok {
					zap.L().Warn("catalog: quiz weight references unknown tool",
						zap.String("question", q.ID),
						zap.String("option", o.ID),
						zap.String("tool", toolID),
					)
				}
			}
		}
	}
}

// computeRevision derives a short content hash over the kept dataset so
// snapshots can tell which edition of the data produced a ranking.
func computeRevision(tools []model.Tool, questions []model.QuizQuestion) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(tools)
	_ = enc.Encode(questions)
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// Tools returns the tools in authored order. The slice is a copy; the
// records themselves are values.
func (c *Catalog) Tools() []model.Tool {
	out := make([]model.Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// Tool returns the tool with the given id.
func (c *Catalog) Tool(id string) (model.Tool, bool) {
	i, ok := c.toolIdx[id]
	if !ok {
		return model.Tool{}, false
	}
	return c.tools[i], true
}

// HasTool reports whether id names a catalog tool.
func (c *Catalog) HasTool(id string) bool {
	_, ok := c.toolIdx[id]
	return ok
}

// Questions returns the question bank in authored order.
func (c *Catalog) Questions() []model.QuizQuestion {
	out := make([]model.QuizQuestion, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question returns the question with the given id.
func (c *Catalog) Question(id string) (model.QuizQuestion, bool) {
	i, ok := c.questionIdx[id]
	if !ok {
		return model.QuizQuestion{}, false
	}
	return c.questions[i], true
}

// Dimensions returns the rubric metadata in authored order.
func (c *Catalog) Dimensions() []model.DimensionInfo {
	out := make([]model.DimensionInfo, len(c.dimensions))
	copy(out, c.dimensions)
	return out
}

// Revision is a short content hash identifying this edition of the dataset.
func (c *Catalog) Revision() string {
	return c.revision
}
