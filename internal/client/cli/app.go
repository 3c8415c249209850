package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/config"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/client/services"
	"github.com/dmitrijs2005/sgrsensor/internal/client/session"
	"github.com/dmitrijs2005/sgrsensor/internal/logging"
	"github.com/sirupsen/logrus"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	session  *session.Session
	db       *sql.DB
	auth     services.AuthService
	users    services.UserService
	sensors  services.SensorService
	signals  services.SignalService
	sensorID int64
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logging.ParseLevel(c.LogLevel))
	logger := logging.NewLogrusLogger(l)

	storage, db, err := session.OpenSQLStorage(ctx, c.SessionDSN)
	if err != nil {
		logger.Error(ctx, "error opening session store", "error", err)
		return nil, err
	}

	sess := session.New(storage, nil, logger)
	if err := sess.Restore(ctx); err != nil {
		logger.Warn(ctx, "could not restore session", "error", err)
	}

	api := client.NewHTTPClient(c.APIURL, sess,
		client.WithLogger(logger),
		client.WithTimeout(c.RequestTimeout),
	)

	return &App{
		config:   c,
		logger:   logger,
		session:  sess,
		db:       db,
		auth:     services.NewAuthService(api, sess),
		users:    services.NewUserService(api),
		sensors:  services.NewSensorService(api),
		signals:  services.NewSignalService(api),
		sensorID: c.SensorID,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}

	unsubscribe := a.session.Identity().Subscribe(a.sessionWatcher())
	defer unsubscribe()

	runREPL(ctx, a, a.status, a.reader)
}

// sessionWatcher reports the transition from a logged-in user to none,
// whether caused by logout or by the backend rejecting the token.
func (a *App) sessionWatcher() func(*models.User) {
	var last *models.User
	return func(u *models.User) {
		if u == nil && last != nil {
			fmt.Fprintf(a.out, "Session of %s closed. Log in to continue.\n", last.Email)
		}
		last = u
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return "guest"
	}

	state := "stopped"
	if a.sensors.StateOf(a.sensorID).Get() {
		state = "running"
	}
	return fmt.Sprintf("%s | sensor %d %s", u.Email, a.sensorID, state)
}
