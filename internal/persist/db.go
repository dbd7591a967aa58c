package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/fieldboost/internal/state"
)

// Scenario is a named, saved state.
type Scenario struct {
	ID        string
	Name      string
	Query     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State decodes the saved query onto base.
func (sc Scenario) State(base state.State) (state.State, []FieldWarning, error) {
	return DecodeQuery(sc.Query, base)
}

type scenarioRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Query     string `db:"query"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r scenarioRow) scenario() Scenario {
	return Scenario{
		ID:        r.ID,
		Name:      r.Name,
		Query:     r.Query,
		CreatedAt: time.Unix(0, r.CreatedAt),
		UpdatedAt: time.Unix(0, r.UpdatedAt),
	}
}

// DB stores scenarios in SQLite.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		query TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(updated_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Save stores s under name, replacing the state of an existing scenario
// with the same name but keeping its id and creation time.
func (db *DB) Save(ctx context.Context, name string, s state.State) (Scenario, error) {
	if name == "" {
		return Scenario{}, ErrEmptyName
	}
	now := db.now().UnixNano()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, query, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET query = excluded.query, updated_at = excluded.updated_at`,
		uuid.NewString(), name, EncodeQuery(s), now, now)
	if err != nil {
		return Scenario{}, fmt.Errorf("save scenario %q: %w", name, err)
	}
	return db.Load(ctx, name)
}

// List returns all scenarios, most recently updated first.
func (db *DB) List(ctx context.Context) ([]Scenario, error) {
	var rows []scenarioRow
	err := db.conn.SelectContext(ctx, &rows,
		"SELECT id, name, query, created_at, updated_at FROM scenarios ORDER BY updated_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	out := make([]Scenario, len(rows))
	for i, r := range rows {
		out[i] = r.scenario()
	}
	return out, nil
}

// Load finds a scenario by id or, failing that, by name.
func (db *DB) Load(ctx context.Context, idOrName string) (Scenario, error) {
	var r scenarioRow
	err := db.conn.GetContext(ctx, &r,
		"SELECT id, name, query, created_at, updated_at FROM scenarios WHERE id = ? OR name = ? ORDER BY id = ? DESC LIMIT 1",
		idOrName, idOrName, idOrName)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("load scenario %q: %w", idOrName, err)
	}
	return r.scenario(), nil
}

// Delete removes a scenario by id or name.
func (db *DB) Delete(ctx context.Context, idOrName string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ? OR name = ?", idOrName, idOrName)
	if err != nil {
		return fmt.Errorf("delete scenario %q: %w", idOrName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	return nil
}
