package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTool() Tool {
	return Tool{
		ID:      "quill",
		Name:    "Quill",
		Tagline: "Test fixture tool",
		URL:     "https://quill.example.com",
		Scores: Scores{
			DimOpenSource: 5,
			DimPrivacy:    4,
			DimEaseOfUse:  3,
		},
		Pricing: PricingInfo{Type: "free", FreeTier: true, Details: "free forever"},
		Protocols: []Protocol{
			{Name: "Nostr", Supported: true, Quality: QualityExcellent},
			{Name: "Bitcoin/Lightning", Supported: false, Quality: QualityNone},
		},
		PrivacyLevel:    PrivacyHigh,
		OpenSourceLevel: FullyOpen,
	}
}

func TestToolScore(t *testing.T) {
	t.Parallel()

	tool := validTool()

	v, ok := tool.Score(DimOpenSource)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = tool.Score(DimPortability)
	assert.False(t, ok, "unrated dimension must report absent, not zero")
}

func TestToolProtocolLookup(t *testing.T) {
	t.Parallel()

	tool := validTool()

	p, ok := tool.ProtocolByName("Nostr")
	require.True(t, ok)
	assert.Equal(t, QualityExcellent, p.Quality)

	assert.True(t, tool.SupportsProtocol("Nostr"))
	assert.False(t, tool.SupportsProtocol("Bitcoin/Lightning"), "listed but unsupported")
	assert.False(t, tool.SupportsProtocol("ActivityPub"), "absent entry")
}

func TestLevelValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, PrivacyHigh.Valid())
	assert.False(t, PrivacyLevel("secret").Valid())

	assert.True(t, Proprietary.Valid())
	assert.False(t, OpenSourceLevel("open-ish").Valid())
}

func TestValidateTool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Tool)
		wantErr bool
	}{
		{"valid", func(*Tool) {}, false},
		{"missing id", func(tool *Tool) { tool.ID = "" }, true},
		{"score above range", func(tool *Tool) { tool.Scores[DimPrivacy] = 6 }, true},
		{"score below range", func(tool *Tool) { tool.Scores[DimPrivacy] = 0 }, true},
		{"bad privacy level", func(tool *Tool) { tool.PrivacyLevel = "secret" }, true},
		{"bad openness level", func(tool *Tool) { tool.OpenSourceLevel = "open-ish" }, true},
		{"bad pricing type", func(tool *Tool) { tool.Pricing.Type = "donationware" }, true},
		{"bad url", func(tool *Tool) { tool.URL = "not a url" }, true},
		{"duplicate protocol", func(tool *Tool) {
			tool.Protocols = append(tool.Protocols, Protocol{Name: "Nostr", Quality: QualityGood})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tool := validTool()
			tt.mutate(&tool)
			err := ValidateTool(tool)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
