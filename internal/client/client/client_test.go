package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu          sync.Mutex
	token       string
	tokenErr    error
	invalidated int
	invalidErr  error
	ctxErr      error
}

func (f *fakeSession) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.tokenErr
}

func (f *fakeSession) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErr = ctx.Err()
	if f.token != "" {
		f.invalidated++
	}
	f.token = ""
	return f.invalidErr
}

type captured struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.header = r.Header.Clone()
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func TestHTTPClient_GetSendsBearer(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"status":"success","data":[{"id":1}]}`)
	sess := &fakeSession{token: "abc"}
	c := NewHTTPClient(srv.URL+"/api/", sess)

	env, err := c.Get(context.Background(), "/sensor")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/sensor", got.path)
	assert.Equal(t, "Bearer abc", got.header.Get("Authorization"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	_, err = uuid.Parse(got.header.Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Empty(t, got.body)

	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "success", env.Status())
	assert.JSONEq(t, `[{"id":1}]`, string(env.Data()))
	assert.Equal(t, 0, sess.invalidated)
}

func TestHTTPClient_NoTokenOmitsHeader(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"status":"success"}`)
	c := NewHTTPClient(srv.URL, &fakeSession{})

	_, err := c.Delete(context.Background(), "/sensor/3")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Empty(t, got.header.Values("Authorization"))
}

func TestHTTPClient_BodyVerbs(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *HTTPClient) (*Envelope, error)
		wantMethod string
		wantAuth   string
	}{
		{
			name: "post",
			call: func(c *HTTPClient) (*Envelope, error) {
				return c.Post(context.Background(), "/x", map[string]any{"name": "n", "n": 2})
			},
			wantMethod: http.MethodPost,
			wantAuth:   "Bearer tok",
		},
		{
			name: "put",
			call: func(c *HTTPClient) (*Envelope, error) {
				return c.Put(context.Background(), "/x", map[string]any{"name": "n", "n": 2})
			},
			wantMethod: http.MethodPut,
			wantAuth:   "Bearer tok",
		},
		{
			name: "auth",
			call: func(c *HTTPClient) (*Envelope, error) {
				return c.Auth(context.Background(), "/x", map[string]any{"name": "n", "n": 2})
			},
			wantMethod: http.MethodPost,
			wantAuth:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newServer(t, http.StatusOK, `{"status":"success"}`)
			c := NewHTTPClient(srv.URL, &fakeSession{token: "tok"})

			_, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, got.method)
			assert.Equal(t, tt.wantAuth, got.header.Get("Authorization"))
			assert.JSONEq(t, `{"name":"n","n":2}`, string(got.body))
		})
	}
}

func TestHTTPClient_UnauthorizedInvalidatesSession(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"status":"unauthorized","message":"Please, sign in to get access."}`)
	sess := &fakeSession{token: "stale"}
	c := NewHTTPClient(srv.URL, sess)

	env, err := c.Get(context.Background(), "/user")
	require.NoError(t, err)
	assert.True(t, env.Unauthorized())
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
	assert.Equal(t, "Please, sign in to get access.", env.Message())
	assert.Equal(t, 1, sess.invalidated)
	assert.Empty(t, sess.token)

	_, err = c.Get(context.Background(), "/user")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.invalidated)
}

func TestHTTPClient_UnauthorizedOnAuthEndpoint(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"status":"unauthorized"}`)
	sess := &fakeSession{token: "t"}
	c := NewHTTPClient(srv.URL, sess)

	_, err := c.Auth(context.Background(), "/auth/login", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 1, sess.invalidated)
}

func TestHTTPClient_HTTP401WithoutSentinelKeepsSession(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"status":"fail","message":"nope"}`)
	sess := &fakeSession{token: "t"}
	c := NewHTTPClient(srv.URL, sess)

	env, err := c.Get(context.Background(), "/user")
	require.NoError(t, err)
	assert.False(t, env.Unauthorized())
	assert.Equal(t, "t", sess.token)
}

func TestHTTPClient_InvalidationSurvivesCancelledContext(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"status":"unauthorized"}`)
	sess := &fakeSession{token: "t"}
	c := NewHTTPClient(srv.URL, sess, WithTimeout(time.Minute))

	_, err := c.Get(context.Background(), "/user")
	require.NoError(t, err)
	assert.NoError(t, sess.ctxErr)
}

func TestHTTPClient_InvalidateErrorIsNotReturned(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"status":"unauthorized"}`)
	sess := &fakeSession{token: "t", invalidErr: errors.New("disk full")}
	c := NewHTTPClient(srv.URL, sess)

	env, err := c.Get(context.Background(), "/user")
	require.NoError(t, err)
	assert.True(t, env.Unauthorized())
}

func TestHTTPClient_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"html", "<html>Internal Server Error</html>"},
		{"truncated", `{"status":"succ`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusInternalServerError, tt.body)
			sess := &fakeSession{token: "t"}
			c := NewHTTPClient(srv.URL, sess)

			env, err := c.Get(context.Background(), "/sensor")
			require.Error(t, err)
			assert.Nil(t, env)
			assert.ErrorIs(t, err, ErrDecode)
			assert.NotErrorIs(t, err, ErrTransport)

			var re *RequestError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
			assert.Equal(t, VerbGet, re.Verb)
			assert.Equal(t, "/sensor", re.Endpoint)
			assert.Equal(t, 0, sess.invalidated)
		})
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, &fakeSession{})
	env, err := c.Post(context.Background(), "/user", map[string]string{"a": "b"})
	require.Error(t, err)
	assert.Nil(t, env)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestHTTPClient_SessionReadError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	storeErr := errors.New("locked")
	c := NewHTTPClient(srv.URL, &fakeSession{tokenErr: storeErr})

	_, err := c.Get(context.Background(), "/user")
	assert.ErrorIs(t, err, ErrSession)
	assert.ErrorIs(t, err, storeErr)

	_, err = c.Auth(context.Background(), "/auth/login", nil)
	assert.NoError(t, err)
}

func TestHTTPClient_EncodeError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	c := NewHTTPClient(srv.URL, &fakeSession{})

	_, err := c.Post(context.Background(), "/user", map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, ErrEncode)
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewHTTPClient(srv.URL, &fakeSession{}, WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "/slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPClient_NonObjectBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[1,2,3]`},
		{"string", `"ok"`},
		{"null", `null`},
		{"object without status", `{"foo":"bar"}`},
		{"non-string status", `{"status":401}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tt.body)
			sess := &fakeSession{token: "t"}
			c := NewHTTPClient(srv.URL, sess)

			env, err := c.Get(context.Background(), "/x")
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(env.Body))
			assert.Equal(t, "", env.Status())
			assert.False(t, env.Unauthorized())
			assert.Equal(t, 0, sess.invalidated)
		})
	}
}

func TestHTTPClient_ConcurrentCalls(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"status":"success"}`)
	c := NewHTTPClient(srv.URL, &fakeSession{token: "t"})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), "/sensor")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestEnvelope_DecodeData(t *testing.T) {
	env, err := NewEnvelope(http.StatusOK, []byte(`{"status":"success","data":{"id":7,"name":"s"}}`))
	require.NoError(t, err)

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, env.DecodeData(&out))
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "s", out.Name)

	var whole map[string]json.RawMessage
	require.NoError(t, env.Decode(&whole))
	assert.Contains(t, whole, "status")

	env, err = NewEnvelope(http.StatusOK, []byte(`{"status":"success","data":null}`))
	require.NoError(t, err)
	assert.ErrorIs(t, env.DecodeData(&out), ErrNoData)

	env, err = NewEnvelope(http.StatusOK, []byte(`{"status":"success"}`))
	require.NoError(t, err)
	assert.ErrorIs(t, env.DecodeData(&out), ErrNoData)
}

func TestEnvelope_Token(t *testing.T) {
	env, err := NewEnvelope(http.StatusOK, []byte(`{"status":"success","token":"jwt","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "jwt", env.Token())
	assert.Equal(t, "", env.Message())
}

func TestVerb_Method(t *testing.T) {
	assert.Equal(t, http.MethodPost, VerbAuth.Method())
	assert.Equal(t, http.MethodPut, VerbPut.Method())
	assert.False(t, VerbAuth.sendsToken())
	assert.True(t, VerbDelete.sendsToken())
	assert.False(t, VerbGet.hasBody())
}
