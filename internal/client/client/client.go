package client

import (
	"context"
	"net/http"
)

// Client is the verb-level API contract consumed by the services.
type Client interface {
	Get(ctx context.Context, endpoint string) (*Envelope, error)
	Post(ctx context.Context, endpoint string, body any) (*Envelope, error)
	Put(ctx context.Context, endpoint string, body any) (*Envelope, error)
	Delete(ctx context.Context, endpoint string) (*Envelope, error)
	Auth(ctx context.Context, endpoint string, body any) (*Envelope, error)
}

// SessionStore is what the client needs from the session: the current token
// ("" when logged out) and a way to tear the session down.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// Verb is a request kind. VerbAuth is a POST that never carries the token.
type Verb string

const (
	VerbGet    Verb = "GET"
	VerbPost   Verb = "POST"
	VerbPut    Verb = "PUT"
	VerbDelete Verb = "DELETE"
	VerbAuth   Verb = "AUTH"
)

// Method returns the HTTP method the verb is sent with.
func (v Verb) Method() string {
	if v == VerbAuth {
		return http.MethodPost
	}
	return string(v)
}

func (v Verb) hasBody() bool {
	return v == VerbPost || v == VerbPut || v == VerbAuth
}

func (v Verb) sendsToken() bool {
	return v != VerbAuth
}

// Request describes one API call. Body is ignored for GET and DELETE.
type Request struct {
	Verb     Verb
	Endpoint string
	Body     any
}
