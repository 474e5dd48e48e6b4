// Package session composes the decision engine: it parses a request
// envelope, updates ability and mastery from the graded answer, schedules
// review, selects the next unit, evaluates termination, and persists the
// session state through the injected repository.
package session

import (
	"encoding/json"
	"fmt"
)

// Actions accepted in the request envelope.
const (
	ActionStart    = "start"
	ActionResponse = "response"
)

// Request is one turn's input envelope.
type Request struct {
	Action      string `json:"action,omitempty"`
	UnitID      string `json:"unitId,omitempty"`
	Answer      string `json:"answer,omitempty"`
	RawResponse string `json:"rawResponse,omitempty"`
	IsCorrect   *bool  `json:"isCorrect,omitempty"`
	Reset       bool   `json:"reset,omitempty"`
}

// RawAnswer returns the learner's answer text, whichever field carried it.
func (r *Request) RawAnswer() string {
	if r.Answer != "" {
		return r.Answer
	}
	return r.RawResponse
}

// ParseRequest decodes and validates a raw request payload. An empty
// payload is a valid default request. Malformed JSON or a schema violation
// is a *ValidationError: fatal for the turn, no state is touched.
func ParseRequest(raw []byte) (*Request, error) {
	if len(raw) == 0 {
		return &Request{Action: ActionResponse}, nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ValidationError{Reason: "request is not valid JSON", Err: err}
	}

	if err := validateRequest(parsed); err != nil {
		return nil, err
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, &ValidationError{Reason: "request does not match envelope", Err: err}
	}
	if req.Action == "" {
		req.Action = ActionResponse
	}
	if req.Action != ActionStart && req.Action != ActionResponse {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown action %q", req.Action)}
	}
	return &req, nil
}
