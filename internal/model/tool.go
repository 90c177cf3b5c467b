// Package model defines the value types shared by the catalog, the scoring
// engine, and the API: evaluated tools, scoring dimensions, quiz questions,
// and derived results. All types are plain values; nothing here is mutated
// after the catalog is loaded.
package model

// Dimension names one scored axis of evaluation. The set is open: the
// dataset has grown new dimensions across revisions without retiring old
// ones, so Dimension is a string type rather than a closed enum. Consumers
// must tolerate dimensions they do not know and tools that lack dimensions
// they do.
type Dimension string

// Dimensions present in the current dataset.
const (
	DimOpenSource       Dimension = "openSource"
	DimPrivacy          Dimension = "privacy"
	DimProtocolSupport  Dimension = "protocolSupport"
	DimOpenModelSupport Dimension = "openModelSupport"
	DimDecentralization Dimension = "decentralization"
	DimEaseOfUse        Dimension = "easeOfUse"
	DimCostEfficiency   Dimension = "costEfficiency"
	DimCapabilities     Dimension = "capabilities"
	DimPortability      Dimension = "portability"
)

// Scores maps a dimension to its 1-5 rating. A missing key means the
// dimension was never rated for that tool, which is distinct from zero.
type Scores map[Dimension]int

// PrivacyLevel is the qualitative privacy rating of a tool.
type PrivacyLevel string

const (
	PrivacyHigh   PrivacyLevel = "high"
	PrivacyMedium PrivacyLevel = "medium"
	PrivacyLow    PrivacyLevel = "low"
)

// Valid reports whether the level is one of the known values.
func (p PrivacyLevel) Valid() bool {
	switch p {
	case PrivacyHigh, PrivacyMedium, PrivacyLow:
		return true
	}
	return false
}

// OpenSourceLevel is the qualitative openness rating of a tool.
type OpenSourceLevel string

const (
	FullyOpen     OpenSourceLevel = "fully-open"
	PartiallyOpen OpenSourceLevel = "partially-open"
	Proprietary   OpenSourceLevel = "proprietary"
)

// Valid reports whether the level is one of the known values.
func (o OpenSourceLevel) Valid() bool {
	switch o {
	case FullyOpen, PartiallyOpen, Proprietary:
		return true
	}
	return false
}

// PricingInfo describes how a tool is paid for.
type PricingInfo struct {
	Type          string `json:"type" yaml:"type" validate:"oneof=free freemium paid pay-as-you-go"`
	FreeTier      bool   `json:"free_tier" yaml:"free_tier"`
	StartingPrice string `json:"starting_price,omitempty" yaml:"starting_price,omitempty"`
	Details       string `json:"details" yaml:"details"`
}

// ProtocolQuality grades how well a tool handles a protocol.
type ProtocolQuality string

const (
	QualityExcellent ProtocolQuality = "excellent"
	QualityGood      ProtocolQuality = "good"
	QualityLimited   ProtocolQuality = "limited"
	QualityNone      ProtocolQuality = "none"
)

// Protocol is one named protocol-support entry. At most one entry per
// protocol name exists on a tool.
type Protocol struct {
	Name      string          `json:"name" yaml:"name" validate:"required"`
	Supported bool            `json:"supported" yaml:"supported"`
	Quality   ProtocolQuality `json:"quality" yaml:"quality" validate:"oneof=excellent good limited none"`
}

// Tool is one evaluated AI coding assistant, the catalog's core record.
// IDs are stable across dataset revisions; quiz weight maps join on them.
type Tool struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Tagline     string   `json:"tagline" yaml:"tagline"`
	Description string   `json:"description" yaml:"description"`
	URL         string   `json:"url" yaml:"url" validate:"required,url"`
	Logo        string   `json:"logo,omitempty" yaml:"logo,omitempty"`
	Scores      Scores   `json:"scores" yaml:"scores" validate:"required,dive,gte=1,lte=5"`
	Features    []string `json:"features" yaml:"features"`
	Limitations []string `json:"limitations" yaml:"limitations"`
	BestFor     []string `json:"best_for" yaml:"best_for"`

	Pricing         PricingInfo     `json:"pricing" yaml:"pricing"`
	Protocols       []Protocol      `json:"protocols" yaml:"protocols" validate:"dive"`
	PrivacyLevel    PrivacyLevel    `json:"privacy_level" yaml:"privacy_level" validate:"oneof=high medium low"`
	OpenSourceLevel OpenSourceLevel `json:"open_source_level" yaml:"open_source_level" validate:"oneof=fully-open partially-open proprietary"`
}

// Score returns the rating for dim and whether the tool has it.
func (t Tool) Score(dim Dimension) (int, bool) {
	v, ok := t.Scores[dim]
	return v, ok
}

// ProtocolByName returns the protocol entry with the given name, if any.
func (t Tool) ProtocolByName(name string) (Protocol, bool) {
	for _, p := range t.Protocols {
		if p.Name == name {
			return p, true
		}
	}
	return Protocol{}, false
}

// SupportsProtocol reports whether the tool has a supported entry for name.
func (t Tool) SupportsProtocol(name string) bool {
	p, ok := t.ProtocolByName(name)
	return ok && p.Supported
}
