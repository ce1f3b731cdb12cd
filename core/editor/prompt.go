package editor

import (
	"strings"

	"golang.org/x/text/cases"
)

// Step is the outcome of one ingredient-name prompt
type Step int

const (
	// StepContinue means the answer names an ingredient
	StepContinue Step = iota
	// StepDone means the user finished entering ingredients
	StepDone
	// StepCancelled means the prompt was closed without an answer
	StepCancelled
)

// String returns string representation
func (s Step) String() string {
	switch s {
	case StepContinue:
		return "continue"
	case StepDone:
		return "done"
	case StepCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ClassifyIngredientInput decides what an ingredient-name answer means.
// A nil answer is a cancelled prompt and is checked before any text
// comparison. A blank answer or one matching a sentinel (case-folded,
// surrounding space ignored) ends entry.
func ClassifyIngredientInput(raw *string, sentinels []string) Step {
	if raw == nil {
		return StepCancelled
	}
	answer := strings.TrimSpace(*raw)
	if answer == "" {
		return StepDone
	}
	folder := cases.Fold()
	folded := folder.String(answer)
	for _, s := range sentinels {
		if folded == folder.String(strings.TrimSpace(s)) {
			return StepDone
		}
	}
	return StepContinue
}
