package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type reply struct {
	code int
	body string
	err  error
}

type call struct {
	verb     client.Verb
	endpoint string
	body     any
}

// fakeClient answers from a table keyed by "VERB endpoint" and records
// every call.
type fakeClient struct {
	t       *testing.T
	replies map[string]reply

	mu    sync.Mutex
	calls []call
}

func newFakeClient(t *testing.T) *fakeClient {
	return &fakeClient{t: t, replies: map[string]reply{}}
}

func (f *fakeClient) on(verb client.Verb, endpoint string, code int, body string) {
	f.replies[string(verb)+" "+endpoint] = reply{code: code, body: body}
}

func (f *fakeClient) fail(verb client.Verb, endpoint string, err error) {
	f.replies[string(verb)+" "+endpoint] = reply{err: err}
}

func (f *fakeClient) do(verb client.Verb, endpoint string, body any) (*client.Envelope, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{verb: verb, endpoint: endpoint, body: body})
	f.mu.Unlock()

	r, ok := f.replies[string(verb)+" "+endpoint]
	if !ok {
		f.t.Fatalf("unexpected call %s %s", verb, endpoint)
	}
	if r.err != nil {
		return nil, r.err
	}
	env, err := client.NewEnvelope(r.code, []byte(r.body))
	require.NoError(f.t, err)
	return env, nil
}

func (f *fakeClient) Get(_ context.Context, endpoint string) (*client.Envelope, error) {
	return f.do(client.VerbGet, endpoint, nil)
}

func (f *fakeClient) Post(_ context.Context, endpoint string, body any) (*client.Envelope, error) {
	return f.do(client.VerbPost, endpoint, body)
}

func (f *fakeClient) Put(_ context.Context, endpoint string, body any) (*client.Envelope, error) {
	return f.do(client.VerbPut, endpoint, body)
}

func (f *fakeClient) Delete(_ context.Context, endpoint string) (*client.Envelope, error) {
	return f.do(client.VerbDelete, endpoint, nil)
}

func (f *fakeClient) Auth(_ context.Context, endpoint string, body any) (*client.Envelope, error) {
	return f.do(client.VerbAuth, endpoint, body)
}

func (f *fakeClient) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// ---- fake session ----

type fakeSession struct {
	token    string
	user     *models.User
	startErr error
	closed   int
}

func (s *fakeSession) Start(_ context.Context, token string, user *models.User) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.token, s.user = token, user
	return nil
}

func (s *fakeSession) Invalidate(context.Context) error {
	s.token, s.user = "", nil
	s.closed++
	return nil
}

func (s *fakeSession) User() *models.User { return s.user }
