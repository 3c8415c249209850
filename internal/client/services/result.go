package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/common"
)

// ErrUnauthorized is returned when the backend answered with the
// unauthorized sentinel. The client has already closed the session.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a "fail" or "error" envelope, or any envelope whose status is
// not "success".
type APIError struct {
	Status  string
	Message string
	Code    int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s (http %d)", e.Status, e.Code)
	}
	return fmt.Sprintf("api %s (http %d): %s", e.Status, e.Code, e.Message)
}

// checkEnvelope maps a non-success envelope to an error.
func checkEnvelope(env *client.Envelope) error {
	switch env.Status() {
	case common.StatusSuccess:
		return nil
	case common.StatusUnauthorized:
		if msg := env.Message(); msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	}
	return &APIError{Status: env.Status(), Message: env.Message(), Code: env.StatusCode}
}

// expect runs a call that returns no payload.
func expect(env *client.Envelope, err error) error {
	if err != nil {
		return err
	}
	return checkEnvelope(env)
}

// decode runs a call and unmarshals its data member into a T.
func decode[T any](env *client.Envelope, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if err := checkEnvelope(env); err != nil {
		return out, err
	}
	if err := env.DecodeData(&out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// decodeList is decode for collections; a null data member is an empty list.
func decodeList[T any](env *client.Envelope, err error) ([]T, error) {
	out, err := decode[[]T](env, err)
	if errors.Is(err, client.ErrNoData) {
		return []T{}, nil
	}
	return out, err
}
