package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateTool checks a tool record against its struct tags: required
// identity fields, score values in [1,5], and known enum values. The loader
// calls this per entry and drops failures with a warning; `fate validate`
// surfaces the errors verbatim.
func ValidateTool(t Tool) error {
	if err := validate.Struct(t); err != nil {
		return eris.Wrapf(err, "model: tool %q", t.ID)
	}
	if err := uniqueProtocolNames(t); err != nil {
		return err
	}
	return nil
}

// ValidateQuestion checks a quiz question record: required ids and labels,
// at least two options, and option ids unique within the question.
func ValidateQuestion(q QuizQuestion) error {
	if err := validate.Struct(q); err != nil {
		return eris.Wrapf(err, "model: question %q", q.ID)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := seen[o.ID]; dup {
			return eris.Errorf("model: question %q: duplicate option id %q", q.ID, o.ID)
		}
		seen[o.ID] = struct{}{}
	}
	return nil
}

func uniqueProtocolNames(t Tool) error {
	seen := make(map[string]struct{}, len(t.Protocols))
	for _, p := range t.Protocols {
		if _, dup := seen[p.Name]; dup {
			return eris.Errorf("model: tool %q: duplicate protocol entry %q", t.ID, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
