package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/client/services"
	"github.com/dmitrijs2005/sgrsensor/internal/client/session"
	"github.com/dmitrijs2005/sgrsensor/internal/logging"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/auth"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@sgr.com"
	adminPassword = "Admin123!"
	secret        = "test-secret"
)

type env struct {
	srv     *httptest.Server
	store   *store.Store
	session *session.Session
	client  *client.HTTPClient
	auth    services.AuthService
	sensors services.SensorService
	signals services.SignalService
	users   services.UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := store.New(bcrypt.MinCost)
	require.NoError(t, st.Seed(adminEmail, adminPassword))

	h := NewHandler(st, secret, time.Hour, logging.Discard())
	srv := httptest.NewServer(h.NewRouter())
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStorage(), nil, nil)
	c := client.NewHTTPClient(srv.URL+"/api", sess)

	return &env{
		srv:     srv,
		store:   st,
		session: sess,
		client:  c,
		auth:    services.NewAuthService(c, sess),
		sensors: services.NewSensorService(c),
		signals: services.NewSignalService(c),
		users:   services.NewUserService(c),
	}
}

func (e *env) login(t *testing.T) {
	t.Helper()
	_, err := e.auth.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
}

func rawCall(t *testing.T, method, url, token, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return resp.StatusCode, out
}

func TestLogin_StartsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var seen []*models.User
	unsubscribe := e.session.Identity().Subscribe(func(u *models.User) { seen = append(seen, u) })
	defer unsubscribe()

	user, err := e.auth.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	token, err := e.session.Token(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := e.session.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.Expired(time.Now()))

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0])
	assert.Equal(t, user.ID, seen[1].ID)
}

func TestLogin_Failures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.auth.Login(ctx, adminEmail, "Wrong123!")
	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Equal(t, "Incorrect email or password.", apiErr.Message)

	_, err = e.auth.Login(ctx, "ghost@sgr.com", "Wrong123!")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Nil(t, e.auth.CurrentUser())
}

func TestProtectedRoute_WithoutToken(t *testing.T) {
	e := newEnv(t)

	code, body := rawCall(t, http.MethodGet, e.srv.URL+"/api/sensor", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", body["status"])
	assert.Equal(t, "Please, sign in to get access.", body["message"])

	code, _ = rawCall(t, http.MethodGet, e.srv.URL+"/api/sensor", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestExpiredToken_TearsDownSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t)

	expired, err := auth.GenerateToken(1, []byte(secret), -time.Minute)
	require.NoError(t, err)
	user := e.session.User()
	require.NoError(t, e.session.Start(ctx, expired, user))

	var closed bool
	unsubscribe := e.session.Identity().Subscribe(func(u *models.User) { closed = u == nil })
	defer unsubscribe()

	_, err = e.sensors.List(ctx)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.True(t, closed)
	assert.Nil(t, e.session.User())

	token, err := e.session.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDeletedUser_TearsDownSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t)

	require.NoError(t, e.store.DeleteUser(1))

	_, err := e.users.List(ctx)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Nil(t, e.auth.CurrentUser())
}

func TestSensorFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t)

	sensors, err := e.sensors.List(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
	assert.False(t, e.sensors.StateOf(1).Get())

	require.NoError(t, e.sensors.Start(ctx, 1))
	running, err := e.sensors.State(ctx, 1)
	require.NoError(t, err)
	assert.True(t, running)

	states, err := e.sensors.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SensorState{{SensorID: 1, State: true}}, states)

	require.NoError(t, e.sensors.Stop(ctx, 1))
	assert.False(t, e.sensors.StateOf(1).Get())

	running, err = e.sensors.SetState(ctx, 1, true)
	require.NoError(t, err)
	assert.True(t, running)
	require.NoError(t, e.sensors.Reset(ctx))
	running, err = e.sensors.State(ctx, 1)
	require.NoError(t, err)
	assert.False(t, running)

	mode, err := e.sensors.SetMode(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, mode)
	mode, err = e.sensors.Mode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, mode)

	require.NoError(t, e.sensors.Build(ctx, 1))
	builds, err := e.sensors.Builds(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, builds, 1)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	data, err := e.sensors.Data(ctx, 1, start, start.Add(10*time.Second))
	require.NoError(t, err)
	assert.Len(t, data.DateTime, 3)
	assert.Len(t, data.Values, 3)

	data, err = e.sensors.Data(ctx, 1, start, start)
	require.NoError(t, err)
	assert.Len(t, data.DateTime, 1)
}

func TestSensorCRUD(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t)

	created, err := e.sensors.Create(ctx, models.NewSensor{Name: "second", SamplingPeriod: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	updated, err := e.sensors.Update(ctx, created.ID, models.NewSensor{Name: "renamed", SamplingPeriod: 4})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 4, updated.SamplingPeriod)

	require.NoError(t, e.sensors.Delete(ctx, created.ID))
	_, err = e.sensors.Get(ctx, created.ID)
	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)

	require.NoError(t, e.sensors.DeleteAll(ctx))
	sensors, err := e.sensors.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sensors)
}

func TestSetpoints(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t)

	sg, err := e.signals.SetSetpoint(ctx, 1, 42.5)
	require.NoError(t, err)
	assert.Equal(t, 42.5, sg.Setpoint)
	assert.Equal(t, "FT-101", sg.Name)
	assert.Equal(t, 100.0, sg.SetpointMax)

	_, err = e.signals.SetSetpoint(ctx, 2, 300)
	assert.ErrorIs(t, err, models.ErrSetpointOutOfRange)

	signals, err := e.sensors.SetVariables(ctx, 1, []float64{10, 200})
	require.NoError(t, err)
	assert.Equal(t, 10.0, signals[0].Setpoint)
	assert.Equal(t, 200.0, signals[1].Setpoint)

	all, err := e.signals.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSignalCRUD(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t)

	sg, err := e.signals.Create(ctx, models.NewSignal{SensorID: 1, Name: "PT-103", Group: models.GroupInput, SetpointMin: 1, SetpointMax: 5, SetpointStep: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), sg.ID)

	_, err = e.signals.Update(ctx, sg.ID, models.NewSignal{SensorID: 1, Name: "PT-104", SetpointMin: 1, SetpointMax: 5, SetpointStep: 1})
	require.NoError(t, err)
	got, err := e.signals.Get(ctx, sg.ID)
	require.NoError(t, err)
	assert.Equal(t, "PT-104", got.Name)

	require.NoError(t, e.signals.Delete(ctx, sg.ID))
	require.NoError(t, e.signals.DeleteAll(ctx))
	all, err := e.signals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterAndUsers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	form := services.Registration{
		Name:                 "Rui",
		LastName:             "Costa",
		Email:                "rui@sgr.com",
		Password:             "Passw0rd!",
		PasswordConfirmation: "Passw0rd!",
	}

	_, err := e.auth.Register(ctx, form)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	e.login(t)
	u, err := e.auth.Register(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, "operator", u.Role)

	_, err = e.auth.Register(ctx, form)
	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)

	users, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = e.users.Update(ctx, u.ID, models.UserUpdate{LastName: "Silva", Password: "Passw0rd?"})
	require.NoError(t, err)
	got, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silva", got.LastName)

	require.NoError(t, e.auth.Logout(ctx))
	_, err = e.auth.Login(ctx, "rui@sgr.com", "Passw0rd?")
	require.NoError(t, err)

	require.NoError(t, e.users.Delete(ctx, 1))
}

func TestRestorePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.auth.RestorePassword(ctx, adminEmail))

	_, err := e.auth.Login(ctx, adminEmail, adminPassword)
	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)

	err = e.auth.RestorePassword(ctx, "ghost@sgr.com")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
	assert.Equal(t, "fail", apiErr.Status)
}

func TestBadPathParams(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	token, err := e.session.Token(context.Background())
	require.NoError(t, err)

	code, body := rawCall(t, http.MethodGet, e.srv.URL+"/api/sensor/abc", token, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "fail", body["status"])

	code, _ = rawCall(t, http.MethodGet, e.srv.URL+"/api/sensor/1/data/yesterday/today", token, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = rawCall(t, http.MethodPost, e.srv.URL+"/api/auth/login", "", "{")
	assert.Equal(t, http.StatusBadRequest, code)
}
