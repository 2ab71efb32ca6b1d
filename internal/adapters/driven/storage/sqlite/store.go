package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// timeLayout is fixed-width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store is a SQLite-based storage for batch reports.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.dairyghg/data/reports.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dairyghg", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reports.db")

	// WAL mode and foreign keys apply to every pooled connection via the DSN
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReportStore returns a ReportStore interface backed by this store.
func (s *Store) ReportStore() driven.ReportStore {
	return &reportStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Report Store ====================

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Save stores or replaces a report and all its entries atomically.
func (s *reportStore) Save(ctx context.Context, report *domain.BatchReport) error {
	includeJSON, err := marshalJSON(report.Boundary.Include)
	if err != nil {
		return fmt.Errorf("marshalling boundary: %w", err)
	}
	if includeJSON == jsonNull {
		includeJSON = "[]"
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sum := report.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, boundary_scope, boundary_include, input,
			processed, succeeded, failed, skipped, total_co2eq_kg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			boundary_scope = excluded.boundary_scope,
			boundary_include = excluded.boundary_include,
			input = excluded.input,
			processed = excluded.processed,
			succeeded = excluded.succeeded,
			failed = excluded.failed,
			skipped = excluded.skipped,
			total_co2eq_kg = excluded.total_co2eq_kg
	`, report.ID, report.CreatedAt.UTC().Format(timeLayout), report.Boundary.Scope.String(), includeJSON,
		report.Input, sum.Processed, sum.Succeeded, sum.Failed, sum.Skipped, sum.TotalCO2eqKg)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE run_id = ?", report.ID); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (run_id, idx, farm_id, state, total_co2eq_kg, breakdown, intensities, error, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range report.Entries {
		breakdown, err := marshalJSON(e.Breakdown)
		if err != nil {
			return fmt.Errorf("marshalling breakdown for %s: %w", e.FarmID, err)
		}
		intensities, err := marshalJSON(e.Intensities)
		if err != nil {
			return fmt.Errorf("marshalling intensities for %s: %w", e.FarmID, err)
		}
		warnings, err := marshalJSON(e.Warnings)
		if err != nil {
			return fmt.Errorf("marshalling warnings for %s: %w", e.FarmID, err)
		}

		var total sql.NullFloat64
		if e.Total != nil {
			total = sql.NullFloat64{Float64: *e.Total, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, report.ID, e.Index, e.FarmID, e.State.String(), total,
			breakdown, intensities, e.Error, warnings); err != nil {
			return fmt.Errorf("saving entry %d: %w", e.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// Get retrieves a report with its entries.
func (s *reportStore) Get(ctx context.Context, id string) (*domain.BatchReport, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, created_at, boundary_scope, boundary_include, input,
			processed, succeeded, failed, skipped, total_co2eq_kg
		FROM runs WHERE id = ?
	`, id)

	report, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT idx, farm_id, state, total_co2eq_kg, breakdown, intensities, error, warnings
		FROM entries WHERE run_id = ? ORDER BY idx
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	report.Entries = []domain.BatchEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		report.Entries = append(report.Entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return report, nil
}

// List returns report headers, newest first. A limit of 0 returns all.
func (s *reportStore) List(ctx context.Context, limit int) ([]domain.BatchReport, error) {
	query := `
		SELECT id, created_at, boundary_scope, boundary_include, input,
			processed, succeeded, failed, skipped, total_co2eq_kg
		FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var reports []domain.BatchReport
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return reports, nil
}

// Delete removes a report and its entries.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.BatchReport, error) {
	var (
		r           domain.BatchReport
		createdAt   string
		scope       string
		includeJSON string
	)
	err := row.Scan(&r.ID, &createdAt, &scope, &includeJSON, &r.Input,
		&r.Summary.Processed, &r.Summary.Succeeded, &r.Summary.Failed, &r.Summary.Skipped,
		&r.Summary.TotalCO2eqKg)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	r.Boundary.Scope = domain.Scope(scope)
	if err := json.Unmarshal([]byte(includeJSON), &r.Boundary.Include); err != nil {
		return nil, fmt.Errorf("unmarshalling boundary: %w", err)
	}
	if len(r.Boundary.Include) == 0 {
		r.Boundary.Include = nil
	}
	return &r, nil
}

func scanEntry(rows rowScanner) (*domain.BatchEntry, error) {
	var (
		e           domain.BatchEntry
		state       string
		total       sql.NullFloat64
		breakdown   sql.NullString
		intensities sql.NullString
		warnings    sql.NullString
	)
	if err := rows.Scan(&e.Index, &e.FarmID, &state, &total, &breakdown, &intensities, &e.Error, &warnings); err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	e.State = domain.EntryState(state)
	if total.Valid {
		e.Total = domain.Float(total.Float64)
	}
	if err := unmarshalJSON(breakdown, &e.Breakdown); err != nil {
		return nil, fmt.Errorf("unmarshalling breakdown: %w", err)
	}
	if err := unmarshalJSON(intensities, &e.Intensities); err != nil {
		return nil, fmt.Errorf("unmarshalling intensities: %w", err)
	}
	if err := unmarshalJSON(warnings, &e.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshalling warnings: %w", err)
	}
	return &e, nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSON(s sql.NullString, v any) error {
	if !s.Valid || s.String == "" || s.String == jsonNull {
		return nil
	}
	return json.Unmarshal([]byte(s.String), v)
}
