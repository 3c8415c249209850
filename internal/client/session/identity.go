package session

import (
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/observable"
)

// Identity is the observable current user; nil means logged out.
type Identity = observable.Value[*models.User]

// NewIdentity returns an empty (logged out) Identity.
func NewIdentity() *Identity {
	return observable.New[*models.User](nil)
}
