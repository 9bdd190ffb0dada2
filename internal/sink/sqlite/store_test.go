package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/sink"
)

// setupTestDB opens a named shared in-memory database with migrations applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", url.PathEscape(t.Name()))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStore_Insert(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	sub := &sink.Submission{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Hello",
		Message: "This is a test message.",
	}
	require.NoError(t, store.Insert(context.Background(), sub))

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, fixed, sub.CreatedAt)

	var name, email, subject, message string
	err := db.QueryRow(`SELECT name, email, subject, message FROM contact_submissions WHERE id = ?`, sub.ID).
		Scan(&name, &email, &subject, &message)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "jane@x.com", email)
	assert.Equal(t, "Hello", subject)
	assert.Equal(t, "This is a test message.", message)
}

func TestStore_Insert_AssignsDistinctIDs(t *testing.T) {
	store := NewStore(setupTestDB(t))

	a := &sink.Submission{Name: "a", Email: "a@x.com", Subject: "one", Message: "first message"}
	b := &sink.Submission{Name: "b", Email: "b@x.com", Subject: "two", Message: "second message"}
	require.NoError(t, store.Insert(context.Background(), a))
	require.NoError(t, store.Insert(context.Background(), b))

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, RunMigrations(db))
}

func TestStore_Insert_ClosedDB(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	require.NoError(t, db.Close())

	err := store.Insert(context.Background(), &sink.Submission{Name: "x"})

	require.Error(t, err)
	assert.Equal(t, sink.KindRemote, sink.KindOf(err))
}
