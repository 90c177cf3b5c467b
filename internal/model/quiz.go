package model

// QuizQuestion is one multiple-choice question in the recommendation quiz.
type QuizQuestion struct {
	ID          string       `json:"id" yaml:"id" validate:"required"`
	Question    string       `json:"question" yaml:"question" validate:"required"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []QuizOption `json:"options" yaml:"options" validate:"required,min=2,dive"`
}

// Option returns the option with the given id within this question.
func (q QuizQuestion) Option(id string) (QuizOption, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return QuizOption{}, false
}

// QuizOption is one selectable answer. Its weight map is sparse: tool ids
// not present contribute zero, and ids that no longer exist in the catalog
// are ignored by the engine (the question bank and the catalog are edited
// independently and may lag each other).
type QuizOption struct {
	ID          string             `json:"id" yaml:"id" validate:"required"`
	Label       string             `json:"label" yaml:"label" validate:"required"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Weights     map[string]float64 `json:"weights" yaml:"weights"`
}

// Answers maps a question id to the chosen option id. Partial answer sets
// (quiz in progress) and stale ids are both legal inputs to the engine.
type Answers map[string]string
