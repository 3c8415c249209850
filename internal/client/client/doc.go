// Package client is the session-aware HTTP client of the SGR Sensor API.
//
// # Overview
//
// HTTPClient wraps net/http so that every call:
//  1. targets the configured API origin + endpoint,
//  2. carries the stored bearer token (all verbs except Auth),
//  3. sends and receives JSON,
//  4. tears the session down when the response body says
//     {"status": "unauthorized"}, whatever the endpoint.
//
// The five verbs Get, Post, Put, Delete and Auth return the decoded
// response as an *Envelope. Auth is a POST without the bearer header, used
// for login-type calls made before a token exists. The client never stores
// the token an Auth call returns: starting the session is the caller's job
// (see services.AuthService).
//
// # Error Handling
//
// The unauthorized sentinel is not an error: the envelope is returned as
// usual after the session has been invalidated. Failures are reported as
// *RequestError values whose kind can be matched with errors.Is:
// ErrTransport (network, timeout, cancellation), ErrDecode (the body is not
// JSON), ErrEncode (the request body cannot be serialized) and ErrSession
// (the token could not be read).
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Calls are not ordered with respect
// to each other; a call already in flight keeps the token it read even if a
// concurrent call invalidates the session.
package client
