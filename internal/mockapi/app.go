// Package mockapi runs a local stand-in of the SGR Sensor backend: the same
// REST routes and envelopes, HS256 bearer tokens and an in-memory data set
// seeded with an admin account and one sensor.
package mockapi

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/sgrsensor/internal/logging"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/config"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/httpapi"
	"github.com/dmitrijs2005/sgrsensor/internal/mockapi/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logging.ParseLevel(c.LogLevel))
	logger := logging.NewLogrusLogger(l)

	st := store.New(bcrypt.DefaultCost)
	if err := st.Seed(c.AdminEmail, c.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	h := httpapi.NewHandler(st, c.SecretKey, c.TokenTTL, logger)
	srv := httpapi.NewServer(c.Addr, h.NewRouter(), logger)

	return &App{config: c, logger: logger, server: srv}, nil
}

// Run serves until ctx is cancelled or the process receives SIGINT,
// SIGTERM or SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting mock API...", "admin", app.config.AdminEmail)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
