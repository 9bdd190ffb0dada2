// Package postgres inserts contact submissions straight into the Postgres
// database behind the hosted table.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"

	"github.com/Zachkp/portfolio/internal/sink"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const insertSubmission = `
	INSERT INTO contact_submissions (name, email, subject, message)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects with lib/pq and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, sink.NotConfigured("postgres open", "DATABASE_URL")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Insert writes s and fills the id and timestamp assigned by the database.
func (s *Store) Insert(ctx context.Context, sub *sink.Submission) error {
	const op = "postgres insert"

	err := s.db.QueryRowContext(ctx, insertSubmission,
		sub.Name, sub.Email, sub.Subject, sub.Message,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err == nil {
		return nil
	}

	if sink.IsNetwork(err) {
		return sink.Network(op, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == "08" {
			return sink.Network(op, err)
		}
		return sink.Remote(op, pqErr.Message, err)
	}
	return sink.Remote(op, "", err)
}

// RunMigrations applies the embedded schema. Already-applied migrations are skipped.
func RunMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
