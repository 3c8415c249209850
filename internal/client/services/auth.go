// Package services maps the SGR Sensor REST API onto typed operations.
// Each service validates its input, issues calls through a client.Client
// and turns response envelopes into results or errors:
//
//   - "success": the data member is decoded into the result type
//   - "unauthorized": ErrUnauthorized (the session is already closed)
//   - anything else: *APIError carrying status, message and HTTP code
//
// Transport and decode failures are passed through unchanged as
// *client.RequestError.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/client/validator"
)

// ErrMissingToken is returned when a login succeeds without a token.
var ErrMissingToken = errors.New("login response carries no token")

// SessionManager is the part of the session the auth service drives.
type SessionManager interface {
	Start(ctx context.Context, token string, user *models.User) error
	Invalidate(ctx context.Context) error
	User() *models.User
}

// Registration is the sign-up form.
type Registration struct {
	Name                 string
	LastName             string
	Email                string
	Password             string
	PasswordConfirmation string
}

func (r Registration) fields() map[string]string {
	return map[string]string{
		"name":                  r.Name,
		"last_name":             r.LastName,
		"email":                 r.Email,
		"password":              r.Password,
		"password_confirmation": r.PasswordConfirmation,
	}
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate the form, authenticate and start the session.
//   - RestorePassword: ask the backend to mail a new password.
//   - Register: validate the form and create the account.
//   - Logout: close the local session.
//   - CurrentUser: the logged-in user, or nil.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	RestorePassword(ctx context.Context, email string) error
	Register(ctx context.Context, form Registration) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
}

type authService struct {
	client  client.Client
	session SessionManager
}

// NewAuthService constructs an AuthService bound to the given API client and session.
func NewAuthService(c client.Client, s SessionManager) AuthService {
	return &authService{client: c, session: s}
}

// Login posts the credentials without a bearer token. On success the
// returned token and user start the session.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validator.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	env, err := a.client.Auth(ctx, "/auth/login", models.Credentials{Email: email, Password: password})
	user, err := decode[models.User](env, err)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	token := env.Token()
	if token == "" {
		return nil, ErrMissingToken
	}
	if err := a.session.Start(ctx, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authService) RestorePassword(ctx context.Context, email string) error {
	if err := validator.ValidateForm(map[string]string{"email": email}); err != nil {
		return err
	}
	if !validator.CheckEmail(email) {
		return &validator.FieldError{Field: "email", Reason: "is not a valid e-mail address"}
	}
	if err := expect(a.client.Auth(ctx, "/auth/password/restore", map[string]string{"email": email})); err != nil {
		return fmt.Errorf("restore password: %w", err)
	}
	return nil
}

// Register creates the account through the user endpoint, which the
// backend protects: an operator has to be logged in.
func (a *authService) Register(ctx context.Context, form Registration) (*models.User, error) {
	if err := validator.ValidateRegistration(form.fields(), form.Email, form.Password, form.PasswordConfirmation); err != nil {
		return nil, err
	}

	body := models.NewUser{
		Name:     form.Name,
		LastName: form.LastName,
		Email:    form.Email,
		Password: form.Password,
	}
	user, err := decode[models.User](a.client.Post(ctx, "/user", body))
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

// Logout is local: the backend keeps no server-side session.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.Invalidate(ctx)
}

func (a *authService) CurrentUser() *models.User {
	return a.session.User()
}
