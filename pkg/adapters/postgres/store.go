package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/lib/pq"
)

var tableNameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Store implements ports.SceneStore on a Postgres table with one row per level.
type Store struct {
	db    *sql.DB
	table string
}

// DSNFromEnv builds a connection string from the standard PG* environment variables.
func DSNFromEnv() string {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "leveledit")
	dbname := getEnv("PGDATABASE", "leveledit")
	sslmode := getEnv("PGSSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s", host, port, user, dbname, sslmode)
	if password := os.Getenv("PGPASSWORD"); password != "" {
		dsn += " password=" + password
	}
	return dsn
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// Open connects to Postgres and ensures the scenes table exists.
func Open(ctx context.Context, dsn, table string) (*Store, error) {
	if table == "" {
		table = "scenes"
	}
	if !tableNameRE.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &Store{db: db, table: table}
	if err := s.createTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s table: %w", table, err)
	}
	return s, nil
}

func (s *Store) createTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, pq.QuoteIdentifier(s.table)))
	return err
}

// Save upserts the scene.
func (s *Store) Save(ctx context.Context, name string, scene *domain.Scene) error {
	body, err := json.Marshal(scene)
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}

	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, body, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		pq.QuoteIdentifier(s.table)), name, body)
	if err != nil {
		return fmt.Errorf("failed to save level %q: %w", name, err)
	}
	return nil
}

// Load retrieves the scene.
func (s *Store) Load(ctx context.Context, name string) (*domain.Scene, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT body FROM %s WHERE name = $1`, pq.QuoteIdentifier(s.table)), name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSceneNotFound
		}
		return nil, fmt.Errorf("failed to load level %q: %w", name, err)
	}

	var scene domain.Scene
	if err := json.Unmarshal(body, &scene); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene: %w", err)
	}
	return &scene, nil
}

// Delete removes the level row.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, pq.QuoteIdentifier(s.table)), name)
	if err != nil {
		return fmt.Errorf("failed to delete level %q: %w", name, err)
	}
	return nil
}

// List returns all level names ordered by name.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, pq.QuoteIdentifier(s.table)))
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
