// Package httpapi serves the SGR Sensor REST API over gin, backed by the
// in-memory store. Responses use the backend's envelope:
// {"status": "success"|"fail"|"error"|"unauthorized", "data", "message"}.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"github.com/dmitrijs2005/sgrsensor/internal/logging"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/auth"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/store"
	"github.com/gin-gonic/gin"
)

// Handler wires HTTP routes to the store.
type Handler struct {
	store    *store.Store
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
}

func NewHandler(s *store.Store, secretKey string, tokenTTL time.Duration, log logging.Logger) *Handler {
	return &Handler{
		store:    s,
		secret:   []byte(secretKey),
		tokenTTL: tokenTTL,
		log:      log.With("module", "httpapi"),
	}
}

// NewRouter returns a gin engine with every route registered.
func (h *Handler) NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())
	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	public := api.Group("/auth")
	{
		public.POST("/login", h.login)
		public.POST("/password/restore", h.restorePassword)
	}

	users := api.Group("/user", h.protect())
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
		users.DELETE("", h.deleteUsers)
	}

	sensors := api.Group("/sensor", h.protect())
	{
		sensors.POST("", h.createSensor)
		sensors.GET("", h.listSensors)
		sensors.GET("/:id", h.getSensor)
		sensors.PUT("/:id", h.updateSensor)
		sensors.DELETE("/:id", h.deleteSensor)
		sensors.DELETE("", h.deleteSensors)
		sensors.GET("/:id/signals", h.sensorSignals)
		sensors.GET("/:id/builds", h.sensorBuilds)
		sensors.GET("/:id/build", h.buildSensor)
		sensors.GET("/:id/start", h.startSensor)
		sensors.GET("/:id/stop", h.stopSensor)
		sensors.GET("/reset", h.resetSensors)
		sensors.GET("/:id/state", h.sensorState)
		sensors.GET("/:id/state/:state", h.setSensorState)
		sensors.GET("/states", h.sensorStates)
		sensors.GET("/:id/mode", h.sensorMode)
		sensors.GET("/:id/mode/:mode", h.setSensorMode)
		sensors.GET("/:id/data/:start/:end", h.sensorData)
		sensors.POST("/variables", h.setVariables)
	}

	signals := api.Group("/signal", h.protect())
	{
		signals.POST("", h.createSignal)
		signals.GET("", h.listSignals)
		signals.GET("/:id", h.getSignal)
		signals.PUT("/:id", h.updateSignal)
		signals.DELETE("/:id", h.deleteSignal)
		signals.DELETE("", h.deleteSignals)
	}
}

func pathInt(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		fail(c, http.StatusNotFound, "invalid "+name)
		return 0, false
	}
	return v, true
}

// storeError maps store errors onto the backend's status codes.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrUserAlreadyExists), errors.Is(err, store.ErrMissingField):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		serverError(c, err)
	}
}

// ---- auth ----

func (h *Handler) login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, "User not found.")
		return
	case errors.Is(err, store.ErrInvalidCredentials):
		fail(c, http.StatusBadRequest, "Incorrect email or password.")
		return
	case err != nil:
		serverError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": common.StatusSuccess, "token": token, "data": user})
}

// restorePassword logs the new password where the real backend mails it.
func (h *Handler) restorePassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	password, err := h.store.ResetPassword(req.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "User not found.")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	h.log.Info(c.Request.Context(), "password restored", "email", req.Email, "password", password)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ---- users ----

func (h *Handler) createUser(c *gin.Context) {
	var req models.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.store.CreateUser(req, "")
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusCreated, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	success(c, http.StatusOK, h.store.Users())
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	user, err := h.store.User(id)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.store.UpdateUser(id, req)
	if err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteUser(id); err != nil {
		storeError(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *Handler) deleteUsers(c *gin.Context) {
	h.store.DeleteUsers()
	success(c, http.StatusOK, nil)
}
