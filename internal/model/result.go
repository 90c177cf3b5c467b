package model

// RankedTool pairs a tool with its accumulated quiz score. Results are
// ordered descending by score with catalog order breaking ties.
type RankedTool struct {
	Tool  Tool    `json:"tool"`
	Score float64 `json:"score"`
}

// Severity grades a requirement mismatch.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// RequirementMismatch flags a hard requirement expressed by a quiz answer
// that the top-ranked tool fails to satisfy. It annotates the ranking but
// never changes it.
type RequirementMismatch struct {
	QuestionID    string   `json:"question_id"`
	QuestionText  string   `json:"question_text"`
	OptionID      string   `json:"option_id"`
	OptionLabel   string   `json:"option_label"`
	Issue         string   `json:"issue"`
	Severity      Severity `json:"severity"`
	BetterMatches []Tool   `json:"better_matches"`
}
