package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatehq/fate-cli/internal/catalog"
	"github.com/fatehq/fate-cli/internal/model"
)

func TestScoreQuizEmptyAnswers(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	ranked := ScoreQuiz(cat, model.Answers{})
	require.Len(t, ranked, 3)

	for _, r := range ranked {
		assert.Zero(t, r.Score)
	}
	// All-zero scores keep catalog order.
	assert.Equal(t, "sovereign", ranked[0].Tool.ID)
	assert.Equal(t, "polished", ranked[1].Tool.ID)
	assert.Equal(t, "sparse", ranked[2].Tool.ID)
}

func TestScoreQuizIgnoresUnknownIDs(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	ranked := ScoreQuiz(cat, model.Answers{
		"noSuchQuestion": "essential",
		"openSource":     "noSuchOption",
	})
	require.Len(t, ranked, 3)
	for _, r := range ranked {
		assert.Zero(t, r.Score)
	}
}

func TestScoreQuizIgnoresStaleToolWeights(t *testing.T) {
	t.Parallel()

	// The retired question's weight table names a tool that is no longer in
	// the catalog. Its weight must not surface anywhere.
	cat := testCatalog(t)
	ranked := ScoreQuiz(cat, model.Answers{"retired": "yes"})
	require.Len(t, ranked, 3)

	assert.Equal(t, "sovereign", ranked[0].Tool.ID)
	assert.InDelta(t, 1, ranked[0].Score, 1e-9)
	for _, r := range ranked[1:] {
		assert.Zero(t, r.Score)
		assert.NotEqual(t, "ghost-tool", r.Tool.ID)
	}
}

func TestScoreQuizFullAnswers(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	ranked := ScoreQuiz(cat, model.Answers{
		"openSource": "essential",
		"privacy":    "critical",
		"retired":    "no",
	})
	require.Len(t, ranked, 3)

	// The freedom-maximizing answers rank the fully open, high privacy tool
	// first.
	assert.Equal(t, "sovereign", ranked[0].Tool.ID)
	assert.Equal(t, model.FullyOpen, ranked[0].Tool.OpenSourceLevel)
	assert.Equal(t, model.PrivacyHigh, ranked[0].Tool.PrivacyLevel)
	assert.InDelta(t, 10, ranked[0].Score, 1e-9)
	assert.Equal(t, "sparse", ranked[1].Tool.ID)
	assert.InDelta(t, 9, ranked[1].Score, 1e-9)
	assert.Equal(t, "polished", ranked[2].Tool.ID)
	assert.InDelta(t, 1, ranked[2].Score, 1e-9)
}

func TestScoreQuizMonotonic(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)

	partial := ScoreQuiz(cat, model.Answers{"openSource": "essential"})
	full := ScoreQuiz(cat, model.Answers{"openSource": "essential", "privacy": "critical"})

	partialByID := make(map[string]float64, len(partial))
	for _, r := range partial {
		partialByID[r.Tool.ID] = r.Score
	}
	for _, r := range full {
		assert.GreaterOrEqual(t, r.Score, partialByID[r.Tool.ID], r.Tool.ID)
	}
}

func TestScoreQuizDeterministic(t *testing.T) {
	t.Parallel()

	def, err := catalog.Default()
	require.NoError(t, err)

	answers := model.Answers{
		"priority":   "freedom",
		"protocols":  "nostr",
		"privacy":    "critical",
		"experience": "expert",
		"openSource": "essential",
	}

	first := ScoreQuiz(def, answers)
	for range 20 {
		assert.Equal(t, first, ScoreQuiz(def, answers))
	}
}

func TestScoreQuizDefaultCatalogFreedomAnswers(t *testing.T) {
	t.Parallel()

	def, err := catalog.Default()
	require.NoError(t, err)

	ranked := ScoreQuiz(def, model.Answers{
		"priority":   "freedom",
		"privacy":    "critical",
		"openSource": "essential",
	})
	require.NotEmpty(t, ranked)

	top := ranked[0].Tool
	assert.Equal(t, model.FullyOpen, top.OpenSourceLevel)
	assert.Equal(t, model.PrivacyHigh, top.PrivacyLevel)
}

func TestScoreQuizRoundTrip(t *testing.T) {
	t.Parallel()

	def, err := catalog.Default()
	require.NoError(t, err)

	answers := model.Answers{"priority": "ease", "experience": "beginner"}
	ranked := ScoreQuiz(def, answers)

	// Re-derive the order from the serialized (id, score) pairs alone.
	scores := make(map[string]float64, len(ranked))
	for _, r := range ranked {
		scores[r.Tool.ID] = r.Score
	}
	rebuilt := def.Tools()
	sort.SliceStable(rebuilt, func(i, j int) bool {
		return scores[rebuilt[i].ID] > scores[rebuilt[j].ID]
	})

	require.Len(t, rebuilt, len(ranked))
	for i := range rebuilt {
		assert.Equal(t, ranked[i].Tool.ID, rebuilt[i].ID, "rank %d", i)
	}
}
