package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/UnifiedTheoryPredictions/unified-theory-experimental/internal/model"
	_ "modernc.org/sqlite" // SQLite driver
)

// dbFileName is the name of the SQLite file created inside the data directory.
const dbFileName = "utep.db"

// sqliteTimeFormat is the layout used for timestamps written by this package.
// SQLite stores DATETIME values as text, so reads go through parseTimestamp.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// RunDB stores the history of analysis runs in a local SQLite database.
//
// Design decision: Reports are persisted as JSON documents alongside a few
// indexed columns (experiment, started_at, seed, success) because:
// 1. The report structure evolves with the analysis code; JSON survives new
//    fields without schema migrations
// 2. History queries only filter by experiment and time, which the indexed
//    columns cover
// 3. A single file database needs no server and travels with the user's
//    data directory
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures database behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool
	// EnableWAL enables Write-Ahead Logging for better concurrency.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// schema defines the run history table and its indexes.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	experiment TEXT NOT NULL,
	started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	elapsed_ms INTEGER NOT NULL DEFAULT 0,
	seed INTEGER NOT NULL DEFAULT 0,
	success INTEGER NOT NULL DEFAULT 0,
	report_json TEXT NOT NULL,
	summary_json TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Open opens or creates a run database in the specified directory.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows only one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	rdb := &RunDB{db: db, dbPath: dbPath}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// createTables creates the schema if it does not exist yet.
func (rdb *RunDB) createTables() error {
	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the filesystem path of the database file.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// SaveReport stores a completed analysis run and returns its row ID.
//
// The seed is stored as the int64 bit pattern because SQLite has no unsigned
// 64-bit integer type; reads convert it back.
func (rdb *RunDB) SaveReport(ctx context.Context, report *model.ExperimentReport) (int64, error) {
	if report == nil {
		return 0, fmt.Errorf("cannot save nil report")
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}

	summaryJSON, err := json.Marshal(model.NewSummaryReport(report))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal summary: %w", err)
	}

	success := 0
	if report.FitSucceeded() {
		success = 1
	}

	startedAt := report.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	result, err := rdb.db.ExecContext(ctx, `
		INSERT INTO runs (experiment, started_at, elapsed_ms, seed, success, report_json, summary_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.Experiment.String(),
		startedAt.UTC().Format(sqliteTimeFormat),
		report.Elapsed.Milliseconds(),
		int64(report.Seed),
		success,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// LatestReport returns the most recent run for the given experiment.
// Returns nil if no run has been recorded yet.
func (rdb *RunDB) LatestReport(ctx context.Context, experiment string) (*model.ExperimentReport, error) {
	var reportJSON string
	err := rdb.db.QueryRowContext(ctx, `
		SELECT report_json FROM runs
		WHERE experiment = ?
		ORDER BY started_at DESC, id DESC
		LIMIT 1`, experiment).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	var report model.ExperimentReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// ReportByID returns the run with the given row ID.
// Returns nil if no such run exists.
func (rdb *RunDB) ReportByID(ctx context.Context, id int64) (*model.ExperimentReport, error) {
	var reportJSON string
	err := rdb.db.QueryRowContext(ctx,
		`SELECT report_json FROM runs WHERE id = ?`, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", id, err)
	}

	var report model.ExperimentReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// RunHistory returns stored runs ordered from newest to oldest.
//
// An empty experiment matches all experiments, and a zero since time disables
// the time filter. Rows whose stored JSON no longer parses are skipped rather
// than failing the whole query.
func (rdb *RunDB) RunHistory(ctx context.Context, experiment string, since time.Time) ([]*model.ExperimentReport, error) {
	query := `SELECT report_json FROM runs WHERE 1=1`
	args := []any{}

	if experiment != "" {
		query += ` AND experiment = ?`
		args = append(args, experiment)
	}
	if !since.IsZero() {
		query += ` AND started_at >= ?`
		args = append(args, since.UTC().Format(sqliteTimeFormat))
	}
	query += ` ORDER BY started_at DESC, id DESC`

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var reports []*model.ExperimentReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var report model.ExperimentReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			// Row written by an incompatible version.
			continue
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// RunMetadata describes a stored run without the full report payload.
type RunMetadata struct {
	ID         int64
	Experiment string
	StartedAt  time.Time
	Elapsed    time.Duration
	Seed       uint64
	Success    bool
	// Summary is parsed from the stored summary JSON. It is nil when the
	// stored row predates summaries or no longer parses.
	Summary *model.SummaryReport
}

// RunHistoryMetadata returns lightweight metadata for stored runs, newest
// first, without deserializing full reports. The experiment and since
// arguments filter like in RunHistory.
func (rdb *RunDB) RunHistoryMetadata(ctx context.Context, experiment string, since time.Time) ([]RunMetadata, error) {
	query := `SELECT id, experiment, started_at, elapsed_ms, seed, success, summary_json FROM runs WHERE 1=1`
	args := []any{}

	if experiment != "" {
		query += ` AND experiment = ?`
		args = append(args, experiment)
	}
	if !since.IsZero() {
		query += ` AND started_at >= ?`
		args = append(args, since.UTC().Format(sqliteTimeFormat))
	}
	query += ` ORDER BY started_at DESC, id DESC`

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run metadata: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		var (
			meta        RunMetadata
			startedAt   string
			elapsedMS   int64
			seed        int64
			success     int
			summaryJSON sql.NullString
		)
		if err := rows.Scan(&meta.ID, &meta.Experiment, &startedAt, &elapsedMS, &seed, &success, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.StartedAt = parseTimestamp(startedAt)
		meta.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		meta.Seed = uint64(seed)
		meta.Success = success != 0

		if summaryJSON.Valid && summaryJSON.String != "" {
			var summary model.SummaryReport
			if err := json.Unmarshal([]byte(summaryJSON.String), &summary); err == nil {
				meta.Summary = &summary
			}
		}

		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// ListExperiments returns the distinct experiment names present in the
// database, ordered alphabetically.
func (rdb *RunDB) ListExperiments(ctx context.Context) ([]string, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT DISTINCT experiment FROM runs ORDER BY experiment`)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var experiments []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan experiment name: %w", err)
		}
		experiments = append(experiments, name)
	}

	return experiments, rows.Err()
}

// timestampFormats lists the layouts accepted when reading timestamps back.
// The exact text depends on which SQLite client wrote the row.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a timestamp string from the database.
// Returns the zero time when no known layout matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
