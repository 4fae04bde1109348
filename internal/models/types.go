package models

// Verdict is the safety judgment returned to the caller.
// Exactly these two fields, always.
type Verdict struct {
	Safe      bool   `json:"safe"`
	Reasoning string `json:"reasoning"`
}

// AnalyzeRequest is the boundary input.
//
// PromptOverrideKey is a pointer so an explicitly empty key ("use the
// default template", overriding any deploy-time key) is distinguishable
// from an absent one.
type AnalyzeRequest struct {
	UserInput         string  `json:"user_input"`
	PromptOverrideKey *string `json:"prompt_override_key,omitempty"`
}

// StreamRequest is one message on the analyze request stream.
type StreamRequest struct {
	RequestID string `json:"request_id"`
	AnalyzeRequest
}

// StreamResult is one message on the verdict stream. Verdict is set when
// the analysis completed (including fail-closed verdicts); Error is set
// when the pipeline itself failed.
type StreamResult struct {
	RequestID string   `json:"request_id"`
	Verdict   *Verdict `json:"verdict,omitempty"`
	Error     string   `json:"error,omitempty"`
}
