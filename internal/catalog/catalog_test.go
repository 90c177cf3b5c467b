package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatehq/fate-cli/internal/model"
)

func validTool(id string) model.Tool {
	return model.Tool{
		ID:   id,
		Name: id,
		URL:  "https://" + id + ".example",
		Scores: model.Scores{
			model.DimOpenSource: 4,
			model.DimPrivacy:    3,
		},
		Pricing:         model.PricingInfo{Type: "free", FreeTier: true},
		PrivacyLevel:    model.PrivacyMedium,
		OpenSourceLevel: model.PartiallyOpen,
	}
}

func validQuestion(id string) model.QuizQuestion {
	return model.QuizQuestion{
		ID:       id,
		Question: "Question " + id + "?",
		Options: []model.QuizOption{
			{ID: "a", Label: "A", Weights: map[string]float64{"one": 2}},
			{ID: "b", Label: "B"},
		},
	}
}

func TestNewPreservesAuthoredOrder(t *testing.T) {
	t.Parallel()

	cat := New(
		[]model.Tool{validTool("one"), validTool("two"), validTool("three")},
		[]model.QuizQuestion{validQuestion("q1"), validQuestion("q2")},
		nil,
	)

	tools := cat.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "one", tools[0].ID)
	assert.Equal(t, "two", tools[1].ID)
	assert.Equal(t, "three", tools[2].ID)

	questions := cat.Questions()
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "q2", questions[1].ID)
}

func TestNewDropsInvalidEntries(t *testing.T) {
	t.Parallel()

	bad := validTool("bad")
	bad.URL = "not a url"

	oneOption := validQuestion("short")
	oneOption.Options = oneOption.Options[:1]

	cat := New(
		[]model.Tool{validTool("one"), bad},
		[]model.QuizQuestion{validQuestion("q1"), oneOption},
		nil,
	)

	assert.Len(t, cat.Tools(), 1)
	assert.False(t, cat.HasTool("bad"))
	assert.Len(t, cat.Questions(), 1)
	_, ok := cat.Question("short")
	assert.False(t, ok)
}

func TestNewDropsDuplicateIDs(t *testing.T) {
	t.Parallel()

	second := validTool("one")
	second.Name = "Second"

	cat := New(
		[]model.Tool{validTool("one"), second},
		[]model.QuizQuestion{validQuestion("q1"), validQuestion("q1")},
		nil,
	)

	require.Len(t, cat.Tools(), 1)
	// First occurrence wins.
	assert.Equal(t, "one", cat.Tools()[0].Name)
	assert.Len(t, cat.Questions(), 1)
}

func TestLookups(t *testing.T) {
	t.Parallel()

	cat := New(
		[]model.Tool{validTool("one")},
		[]model.QuizQuestion{validQuestion("q1")},
		[]model.DimensionInfo{{ID: model.DimPrivacy, Name: "Privacy", Weight: "critical"}},
	)

	tool, ok := cat.Tool("one")
	assert.True(t, ok)
	assert.Equal(t, "one", tool.ID)

	_, ok = cat.Tool("missing")
	assert.False(t, ok)

	q, ok := cat.Question("q1")
	assert.True(t, ok)
	assert.Equal(t, "q1", q.ID)

	dims := cat.Dimensions()
	require.Len(t, dims, 1)
	assert.Equal(t, model.DimPrivacy, dims[0].ID)
}

func TestRevision(t *testing.T) {
	t.Parallel()

	base := New([]model.Tool{validTool("one")}, []model.QuizQuestion{validQuestion("q1")}, nil)
	same := New([]model.Tool{validTool("one")}, []model.QuizQuestion{validQuestion("q1")}, nil)

	assert.Len(t, base.Revision(), 12)
	assert.Equal(t, base.Revision(), same.Revision())

	edited := validTool("one")
	edited.Scores[model.DimPrivacy] = 5
	changed := New([]model.Tool{edited}, []model.QuizQuestion{validQuestion("q1")}, nil)
	assert.NotEqual(t, base.Revision(), changed.Revision())
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	cat := New([]model.Tool{validTool("one"), validTool("two")}, nil, nil)

	tools := cat.Tools()
	tools[0], tools[1] = tools[1], tools[0]

	assert.Equal(t, "one", cat.Tools()[0].ID)
}
