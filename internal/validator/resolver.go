package validator

import (
	"github.com/povarna/generative-ai-agents/guard-agent/internal/models"
)

// FailClosedPrefix marks reasoning strings produced by the fail-closed
// path so callers can tell "the model judged it unsafe" apart from "the
// system could not trust the model's output at all".
const FailClosedPrefix = "guard deterministic failure: "

// Resolve maps a validation outcome to the final verdict. An accepted
// outcome returns the model's own judgment verbatim; any rejection
// becomes safe=false carrying the machine-stated reason.
func Resolve(outcome Outcome) models.Verdict {
	if outcome.Accepted {
		return outcome.Verdict
	}

	return models.Verdict{
		Safe:      false,
		Reasoning: FailClosedPrefix + outcome.Message,
	}
}
