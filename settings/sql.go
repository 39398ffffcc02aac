package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	namespace TEXT NOT NULL,
	name      TEXT NOT NULL,
	value     TEXT NOT NULL,
	PRIMARY KEY (namespace, name)
)`

const upsertSetting = `
INSERT INTO settings (namespace, name, value) VALUES (?, ?, ?)
ON CONFLICT (namespace, name) DO UPDATE SET value = excluded.value`

const selectSettings = `SELECT name, value FROM settings WHERE namespace = ?`

// SQLStore keeps settings in a single table. The same statements run on
// SQLite and Postgres.
type SQLStore struct {
	db *sqlx.DB
}

type settingRow struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

// OpenSQLite opens path with WAL journaling and a busy timeout.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		path = "settings.db"
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		path, (5 * time.Second).Milliseconds())

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)
	return newSQLStore(ctx, db)
}

func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open failed: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)
	return newSQLStore(ctx, db)
}

func newSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping failed: %w", db.DriverName(), err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: create schema: %w", db.DriverName(), err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, namespace string) (Values, error) {
	var rows []settingRow
	query := s.db.Rebind(selectSettings)
	if err := s.db.SelectContext(ctx, &rows, query, namespace); err != nil {
		return nil, err
	}
	values := make(Values, len(rows))
	for _, r := range rows {
		values[r.Name] = r.Value
	}
	return values, nil
}

func (s *SQLStore) Set(ctx context.Context, namespace string, values Values) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := tx.Rebind(upsertSetting)
	for name, value := range values {
		if _, err := tx.ExecContext(ctx, query, namespace, name, value); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) Close() error { return s.db.Close() }
