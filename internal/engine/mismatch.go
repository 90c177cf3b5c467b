package engine

import (
	"github.com/fatehq/fate-cli/internal/catalog"
	"github.com/fatehq/fate-cli/internal/model"
)

// maxBetterMatches caps the alternatives suggested per mismatch.
const maxBetterMatches = 3

// requirementRule binds one (question, option) answer to a predicate over a
// tool. The predicate returns true when the tool FAILS the requirement the
// answer expresses.
type requirementRule struct {
	questionID string
	optionID   string
	issue      string
	severity   model.Severity
	fails      func(model.Tool) bool
}

// requirementRules is the static table of answers that encode hard or
// strong requirements. Order here fixes the discovery order within each
// severity, so the output is stable.
var requirementRules = []requirementRule{
	{
		questionID: "openSource",
		optionID:   "essential",
		issue:      "is not fully open-source, but you said open source is non-negotiable",
		severity:   model.SeverityCritical,
		fails: func(t model.Tool) bool {
			return t.OpenSourceLevel != model.FullyOpen
		},
	},
	{
		questionID: "openSource",
		optionID:   "prefer",
		issue:      "is fully proprietary, while you strongly prefer open source",
		severity:   model.SeverityWarning,
		fails: func(t model.Tool) bool {
			return t.OpenSourceLevel == model.Proprietary
		},
	},
	{
		questionID: "privacy",
		optionID:   "critical",
		issue:      "does not offer high privacy, which your threat model requires",
		severity:   model.SeverityCritical,
		fails: func(t model.Tool) bool {
			return t.PrivacyLevel != model.PrivacyHigh
		},
	},
	{
		questionID: "privacy",
		optionID:   "important",
		issue:      "has a low privacy rating, while data sovereignty matters deeply to you",
		severity:   model.SeverityWarning,
		fails: func(t model.Tool) bool {
			return t.PrivacyLevel == model.PrivacyLow
		},
	},
	{
		questionID: "protocols",
		optionID:   "nostr",
		issue:      "does not support the Nostr protocol you want to build on",
		severity:   model.SeverityCritical,
		fails: func(t model.Tool) bool {
			return !t.SupportsProtocol("Nostr")
		},
	},
	{
		questionID: "protocols",
		optionID:   "bitcoin",
		issue:      "does not support Bitcoin/Lightning, which your project needs",
		severity:   model.SeverityCritical,
		fails: func(t model.Tool) bool {
			return !t.SupportsProtocol("Bitcoin/Lightning")
		},
	},
	{
		questionID: "priority",
		optionID:   "freedom",
		issue:      "scores poorly on sovereignty even though freedom is your top priority",
		severity:   model.SeverityWarning,
		fails: func(t model.Tool) bool {
			return t.OpenSourceLevel == model.Proprietary || t.PrivacyLevel == model.PrivacyLow
		},
	},
}

// FindMismatches checks the user's answers against the requirement table
// and reports every hard requirement the top-ranked tool fails, each with
// up to three alternatives from the ranked results that do satisfy it.
// Critical mismatches come before warnings; within a severity the rule
// table order is kept. The ranking itself is never altered. Answers whose
// question or option no longer exists are skipped like everywhere else.
func FindMismatches(cat *catalog.Catalog, answers model.Answers, ranked []model.RankedTool) []model.RequirementMismatch {
	if len(ranked) == 0 || len(answers) == 0 {
		return nil
	}
	winner := ranked[0].Tool

	var critical, warnings []model.RequirementMismatch
	for _, rule := range requirementRules {
		if answers[rule.questionID] != rule.optionID {
			continue
		}
		if !rule.fails(winner) {
			continue
		}

		m := model.RequirementMismatch{
			QuestionID: rule.questionID,
			OptionID:   rule.optionID,
			Issue:      winner.Name + " " + rule.issue,
			Severity:   rule.severity,
		}
		// Enrich with display text when the dataset still has the entries.
		if q, ok := cat.Question(rule.questionID); ok {
			m.QuestionText = q.Question
			if o, ok := q.Option(rule.optionID); ok {
				m.OptionLabel = o.Label
			}
		}

		for _, r := range ranked[1:] {
			if rule.fails(r.Tool) {
				continue
			}
			m.BetterMatches = append(m.BetterMatches, r.Tool)
			if len(m.BetterMatches) == maxBetterMatches {
				break
			}
		}

		if rule.severity == model.SeverityCritical {
			critical = append(critical, m)
		} else {
			warnings = append(warnings, m)
		}
	}

	return append(critical, warnings...)
}
