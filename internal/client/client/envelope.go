package client

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/sgrsensor/internal/common"
)

// ErrNoData is returned by DecodeData when the envelope has no data or
// data is null.
var ErrNoData = errors.New("envelope has no data")

// Envelope is a decoded API response. Body holds the exact bytes received;
// the accessors read the conventional top-level fields when the body is a
// JSON object and return zero values otherwise.
type Envelope struct {
	StatusCode int
	Body       json.RawMessage

	fields map[string]json.RawMessage
}

// NewEnvelope validates body as JSON and wraps it. Empty or malformed
// bodies are rejected.
func NewEnvelope(statusCode int, body []byte) (*Envelope, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	env := &Envelope{StatusCode: statusCode, Body: body}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(body, &env.fields); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (e *Envelope) str(key string) string {
	raw, ok := e.fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Status is the top-level "status" string, or "" when missing or not a string.
func (e *Envelope) Status() string { return e.str("status") }

// Message is the top-level "message" string.
func (e *Envelope) Message() string { return e.str("message") }

// Token is the top-level "token" string returned by login.
func (e *Envelope) Token() string { return e.str("token") }

// Unauthorized reports whether the body carries the reserved
// unauthorized sentinel.
func (e *Envelope) Unauthorized() bool {
	return e.Status() == common.StatusUnauthorized
}

// Data returns the raw top-level "data" member, or nil.
func (e *Envelope) Data() json.RawMessage {
	return e.fields["data"]
}

// Decode unmarshals the whole body into v.
func (e *Envelope) Decode(v any) error {
	return json.Unmarshal(e.Body, v)
}

// DecodeData unmarshals the "data" member into v.
func (e *Envelope) DecodeData(v any) error {
	data := e.Data()
	if len(data) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return ErrNoData
	}
	return json.Unmarshal(data, v)
}
