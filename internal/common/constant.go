// Package common contains wire-level constants shared by the SGR Sensor
// client and the local backend stand-in.
package common

// Header names sent on every API request.
const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	RequestIDHeaderName     = "X-Request-ID"

	BearerPrefix    = "Bearer "
	JSONContentType = "application/json"
)

// Envelope status values used by the backend in the top-level "status" field.
//
// StatusUnauthorized is reserved: any response carrying it tears down the
// client session, whatever the endpoint.
const (
	StatusSuccess      = "success"
	StatusFail         = "fail"
	StatusError        = "error"
	StatusUnauthorized = "unauthorized"
)

// Session storage keys.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// DefaultAPIURL is used when no origin is configured.
const DefaultAPIURL = "http://127.0.0.1:5000/api"

// DefaultSensorID is the sensor the dashboard opens when none is configured.
const DefaultSensorID int64 = 1
