package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"seatbook/internal/shared/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB connects to TEST_DATABASE_URL, migrates it and empties every
// table. The test is skipped when the variable is unset.
//
// Row locks only exist on this store; NewDB serializes everything through a
// single SQLite connection and drops FOR UPDATE. Keep the tests that use it
// in one package so `go test ./...` never runs two of them against the same
// database at once.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), database.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(50)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.MigrateConstraints(db))
	require.NoError(t, db.Exec("TRUNCATE booking_seats, bookings, seats, users RESTART IDENTITY CASCADE").Error)
	return db
}

// SQLRecorder is a GORM logger that keeps every statement it is handed
type SQLRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *SQLRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }

func (r *SQLRecorder) Info(context.Context, string, ...interface{}) {}
func (r *SQLRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *SQLRecorder) Error(context.Context, string, ...interface{}) {}

func (r *SQLRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, sql)
}

// Last returns the most recent statement, or "" when none was recorded
func (r *SQLRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statements) == 0 {
		return ""
	}
	return r.statements[len(r.statements)-1]
}

// PostgresDryRun returns a handle that renders PostgreSQL statements into the
// recorder without connecting to a server.
func PostgresDryRun(t *testing.T) (*gorm.DB, *SQLRecorder) {
	t.Helper()

	rec := &SQLRecorder{}
	db, err := gorm.Open(postgres.Open("host=localhost user=seatbook dbname=seatbook sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db, rec
}
