package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/migrations"
	sessionrepo "github.com/dmitrijs2005/sgrsensor/internal/client/repositories/session"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// MemoryDSN keeps the session database in memory for the life of the
// process, which is what "session-scoped" means for a terminal client.
const MemoryDSN = "file:sgrsensor-session?mode=memory&cache=shared"

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens the SQLite database at dsn and applies migrations.
// A single connection is kept open so an in-memory database survives
// between calls.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return db, nil
}

// OpenSQLStorage opens the session database and wraps it as Storage.
// The caller closes the returned *sql.DB.
func OpenSQLStorage(ctx context.Context, dsn string) (*SQLStorage, *sql.DB, error) {
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return NewSQLStorage(sessionrepo.NewSQLiteRepository(db)), db, nil
}
