package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/povarna/generative-ai-agents/guard-agent/internal/models"
)

// ReasonCode identifies why a model response was rejected.
type ReasonCode string

const (
	ReasonInvalidJSON  ReasonCode = "invalid_json"
	ReasonNotAnObject  ReasonCode = "not_an_object"
	ReasonWrongKeys    ReasonCode = "wrong_keys"
	ReasonWrongType    ReasonCode = "wrong_type"
	ReasonExtraContent ReasonCode = "extra_content"
)

// Outcome is the result of validating raw model output: either Accepted
// with the parsed verdict, or rejected with a reason code and a human
// diagnostic.
type Outcome struct {
	Accepted bool
	Verdict  models.Verdict
	Code     ReasonCode
	Message  string
}

// fencedBlock matches the one tolerated formatting variant: the entire
// trimmed output wrapped in a ```json fence. The tag must be lowercase,
// followed by optional horizontal whitespace and exactly one LF; the
// closing fence sits on its own final line. CRLF bodies, extra backticks
// and uppercase tags do not match and fall through to the raw JSON path.
var fencedBlock = regexp.MustCompile("(?s)^```json[ \t]*\n(.*)\n```$")

// Validate decides whether raw model output is exactly one well-formed
// JSON object with exactly the keys "safe" (bool) and "reasoning"
// (string), optionally fenced, with zero extraneous characters anywhere.
// It is total: it never panics and always returns an outcome.
func Validate(raw string) Outcome {
	trimmed := strings.TrimSpace(raw)

	candidate := trimmed
	fenced := false
	if m := fencedBlock.FindStringSubmatch(trimmed); m != nil {
		candidate = strings.TrimSpace(m[1])
		fenced = true
	}

	dec := json.NewDecoder(strings.NewReader(candidate))
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return rejected(ReasonInvalidJSON, fmt.Sprintf("invalid JSON: %v", err))
	}
	// encoding/json stops after the first complete value; anything left
	// over besides whitespace is trailing data, not a parse success.
	if _, err := dec.Token(); err != io.EOF {
		return rejected(ReasonInvalidJSON, "invalid JSON: trailing data after value")
	}

	object, ok := parsed.(map[string]any)
	if !ok {
		return rejected(ReasonNotAnObject, "JSON value is not an object")
	}

	safeValue, hasSafe := object["safe"]
	reasoningValue, hasReasoning := object["reasoning"]
	if len(object) != 2 || !hasSafe || !hasReasoning {
		return rejected(ReasonWrongKeys,
			fmt.Sprintf("incorrect keys %v, expected exactly: safe, reasoning", sortedKeys(object)))
	}

	safe, ok := safeValue.(bool)
	if !ok {
		return rejected(ReasonWrongType, `"safe" value is not a boolean`)
	}
	reasoning, ok := reasoningValue.(string)
	if !ok {
		return rejected(ReasonWrongType, `"reasoning" value is not a string`)
	}

	// Reconstruct the exact accepted textual form and require it to equal
	// the trimmed input. The parser cannot see formatting noise between
	// the fence and the JSON body (indentation, blank lines, tabs) nor
	// text sitting outside the fence; this check rejects all of it.
	reconstructed := candidate
	if fenced {
		reconstructed = "```json\n" + candidate + "\n```"
	}
	if strings.TrimSpace(reconstructed) != trimmed {
		return rejected(ReasonExtraContent, "extra content outside the JSON payload")
	}

	return Outcome{
		Accepted: true,
		Verdict:  models.Verdict{Safe: safe, Reasoning: reasoning},
	}
}

func rejected(code ReasonCode, message string) Outcome {
	return Outcome{Code: code, Message: message}
}

func sortedKeys(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
