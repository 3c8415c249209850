package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"github.com/dmitrijs2005/sgrsensor/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	session    SessionStore
	log        logging.Logger
	timeout    time.Duration
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithLogger sets the logger; the default discards output.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout bounds each call, including reading the response body.
// Zero means no client-side limit beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// NewHTTPClient returns a client for the API at baseURL, e.g.
// "http://127.0.0.1:5000/api". Endpoints are appended verbatim, so they
// should start with "/".
func NewHTTPClient(baseURL string, session SessionStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    session,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API origin requests are sent to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Get(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Do(ctx, Request{Verb: VerbGet, Endpoint: endpoint})
}

func (c *HTTPClient) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, Request{Verb: VerbPost, Endpoint: endpoint, Body: body})
}

func (c *HTTPClient) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, Request{Verb: VerbPut, Endpoint: endpoint, Body: body})
}

func (c *HTTPClient) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Do(ctx, Request{Verb: VerbDelete, Endpoint: endpoint})
}

func (c *HTTPClient) Auth(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, Request{Verb: VerbAuth, Endpoint: endpoint, Body: body})
}

// Do sends r and decodes the response. When the response carries the
// unauthorized sentinel the session is invalidated before Do returns.
func (c *HTTPClient) Do(ctx context.Context, r Request) (*Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "verb", string(r.Verb), "endpoint", r.Endpoint)

	req, err := c.newRequest(ctx, r, requestID)
	if err != nil {
		return nil, c.fail(ctx, log, err)
	}

	log.Debug(ctx, "sending request", "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(ctx, log, &RequestError{Verb: r.Verb, Endpoint: r.Endpoint, Kind: ErrTransport, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(ctx, log, &RequestError{Verb: r.Verb, Endpoint: r.Endpoint, StatusCode: resp.StatusCode, Kind: ErrTransport, Err: err})
	}

	env, err := NewEnvelope(resp.StatusCode, body)
	if err != nil {
		return nil, c.fail(ctx, log, &RequestError{Verb: r.Verb, Endpoint: r.Endpoint, StatusCode: resp.StatusCode, Kind: ErrDecode, Err: err})
	}

	log.Debug(ctx, "response received", "http_status", resp.StatusCode, "status", env.Status())

	if env.Unauthorized() {
		c.invalidate(ctx, log)
	}

	return env, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, r Request, requestID string) (*http.Request, error) {
	var payload io.Reader
	if r.Verb.hasBody() {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &RequestError{Verb: r.Verb, Endpoint: r.Endpoint, Kind: ErrEncode, Err: err}
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Verb.Method(), c.baseURL+r.Endpoint, payload)
	if err != nil {
		return nil, &RequestError{Verb: r.Verb, Endpoint: r.Endpoint, Kind: ErrTransport, Err: err}
	}

	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if r.Verb.sendsToken() {
		token, err := c.session.Token(ctx)
		if err != nil {
			return nil, &RequestError{Verb: r.Verb, Endpoint: r.Endpoint, Kind: ErrSession, Err: err}
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	return req, nil
}

// invalidate tears the session down. It must finish even when the call's
// own deadline has just expired.
func (c *HTTPClient) invalidate(ctx context.Context, log logging.Logger) {
	ctx = context.WithoutCancel(ctx)
	log.Info(ctx, "server reported unauthorized, closing session")
	if err := c.session.Invalidate(ctx); err != nil {
		log.Error(ctx, "session teardown failed", "error", err)
	}
}

func (c *HTTPClient) fail(ctx context.Context, log logging.Logger, err error) error {
	log.Warn(ctx, "request failed", "error", err)
	return err
}

var _ Client = (*HTTPClient)(nil)

// String is used in log lines and the CLI banner.
func (c *HTTPClient) String() string {
	return fmt.Sprintf("sgr api %s", c.baseURL)
}
