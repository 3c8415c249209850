package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, code int, body string) *client.Envelope {
	t.Helper()
	env, err := client.NewEnvelope(code, []byte(body))
	require.NoError(t, err)
	return env
}

func TestCheckEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		body    string
		wantErr error
		apiErr  *APIError
	}{
		{name: "success", code: 200, body: `{"status":"success","data":null}`},
		{name: "unauthorized", code: 401, body: `{"status":"unauthorized","message":"Please, sign in to get access."}`, wantErr: ErrUnauthorized},
		{name: "fail", code: 404, body: `{"status":"fail","message":"User not found."}`, apiErr: &APIError{Status: "fail", Message: "User not found.", Code: 404}},
		{name: "error", code: 500, body: `{"status":"error","message":"boom"}`, apiErr: &APIError{Status: "error", Message: "boom", Code: 500}},
		{name: "no status", code: 200, body: `[1]`, apiErr: &APIError{Code: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkEnvelope(envelope(t, tt.code, tt.body))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.apiErr != nil:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.apiErr, apiErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeList_NullIsEmpty(t *testing.T) {
	out, err := decodeList[int](envelope(t, http.StatusOK, `{"status":"success","data":null}`), nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDecode_PassesCallErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := decode[int](nil, boom)
	assert.ErrorIs(t, err, boom)
}

func TestDecode_MissingData(t *testing.T) {
	_, err := decode[struct{}](envelope(t, http.StatusOK, `{"status":"success"}`), nil)
	assert.ErrorIs(t, err, client.ErrNoData)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api fail (http 400): bad", (&APIError{Status: "fail", Message: "bad", Code: 400}).Error())
	assert.Equal(t, "api error (http 500)", (&APIError{Status: "error", Code: 500}).Error())
}
