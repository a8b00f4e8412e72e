// SPDX-License-Identifier: Apache-2.0

// Package bitemporaltest provides a shared PostgreSQL testcontainer for
// integration tests across this module, adapted from the teacher's
// pkg/testutils: one container is started per test binary (SharedTestMain),
// and each test gets its own freshly created database inside it
// (setupTestDatabase / WithConnectionToContainer), so tests can run with
// t.Parallel() without fighting over shared tables.
package bitemporaltest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bitempodb/bitempodb/pkg/engine"
)

// defaultPostgresVersion is used when the POSTGRES_VERSION environment
// variable is unset. Invariant 1 (the GiST exclusion constraint) and the
// CTE-based query rewriter both require PostgreSQL >= 9.0; the default here
// is comfortably newer.
const defaultPostgresVersion = "15.3"

var tConnStr string

// SharedTestMain starts a single postgres container for all tests in a
// package. Call it from a TestMain in each package that needs a live
// database.
func SharedTestMain(m *testing.M) {
	ctx := context.Background()

	waitForLogs := wait.
		ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(5 * time.Second)

	pgVersion := os.Getenv("POSTGRES_VERSION")
	if pgVersion == "" {
		pgVersion = defaultPostgresVersion
	}

	ctr, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:"+pgVersion),
		testcontainers.WithWaitStrategy(waitForLogs),
	)
	if err != nil {
		os.Exit(1)
	}

	tConnStr, err = ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		os.Exit(1)
	}

	exitCode := m.Run()

	if err := ctr.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %v", err)
	}

	os.Exit(exitCode)
}

// WithConnectionToContainer hands fn a fresh database and its connection
// string inside the shared container.
func WithConnectionToContainer(t *testing.T, fn func(conn *sql.DB, connStr string)) {
	t.Helper()
	db, connStr, _ := setupTestDatabase(t)
	fn(db, connStr)
}

// WithEngine hands fn an Engine (pkg/engine) wired to a fresh database
// inside the shared container, with the btree_gist extension and the
// current/history schemas ready for create_table.
func WithEngine(t *testing.T, fn func(e *engine.Engine, db *sql.DB)) {
	t.Helper()
	ctx := context.Background()

	conn, connStr, _ := setupTestDatabase(t)

	e, err := engine.New(ctx, connStr)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	t.Cleanup(func() {
		if err := e.Close(); err != nil {
			t.Fatalf("closing engine: %v", err)
		}
	})

	if err := e.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrapping engine: %v", err)
	}

	fn(e, conn)
}

// setupTestDatabase creates a new database inside the shared container and
// returns a connection to it, its connection string, and its name.
func setupTestDatabase(t *testing.T) (*sql.DB, string, string) {
	t.Helper()
	ctx := context.Background()

	tDB, err := sql.Open("postgres", tConnStr)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := tDB.Close(); err != nil {
			t.Fatalf("failed to close database connection: %v", err)
		}
	})

	dbName := randomDBName()
	_, err = tDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(dbName)))
	if err != nil {
		t.Fatal(err)
	}

	u, err := url.Parse(tConnStr)
	if err != nil {
		t.Fatal(err)
	}
	u.Path = "/" + dbName
	connStr := u.String()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("failed to close database connection: %v", err)
		}
	})

	return db, connStr, dbName
}

func randomDBName() string {
	const length = 15
	const charset = "abcdefghijklmnopqrstuvwxyz"

	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))] // #nosec G404
	}

	return "testdb_" + string(b)
}
