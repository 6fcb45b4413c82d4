package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at path with the pragmas the engine
// relies on (foreign keys, busy timeout for concurrent writers, WAL)
// and runs migrations.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates all necessary tables. The unique indexes on
// (applicant_id, job_request_id) and (job_request_id, applicant_id) are
// load-bearing: the ledger's dedup guarantee rests on them.
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS employers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		country TEXT,
		contact TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS applicants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		category TEXT NOT NULL,
		nationality TEXT DEFAULT '',
		years_experience INTEGER NOT NULL DEFAULT 0 CHECK(years_experience >= 0),
		gender TEXT DEFAULT '',
		date_of_birth DATE,
		passport_number TEXT DEFAULT '',
		training_completed BOOLEAN DEFAULT 0,
		medical_clearance BOOLEAN DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'new',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(status IN ('new', 'ready', 'shortlisted', 'selected', 'deployed'))
	);

	CREATE TABLE IF NOT EXISTS job_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employer_id INTEGER NOT NULL,
		title TEXT DEFAULT '',
		category TEXT NOT NULL,
		country TEXT DEFAULT '',
		required_experience INTEGER NOT NULL DEFAULT 0,
		gender TEXT DEFAULT '',
		age_min INTEGER DEFAULT 0,
		age_max INTEGER DEFAULT 0,
		quantity INTEGER DEFAULT 1,
		status TEXT NOT NULL DEFAULT 'open',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (employer_id) REFERENCES employers(id) ON DELETE CASCADE,
		CHECK(status IN ('open', 'closed'))
	);

	CREATE TABLE IF NOT EXISTS auto_applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		applicant_id INTEGER NOT NULL,
		job_request_id INTEGER NOT NULL,
		match_score INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		reviewed_at DATETIME,
		submitted_at DATETIME,
		declined_at DATETIME,
		FOREIGN KEY (applicant_id) REFERENCES applicants(id) ON DELETE CASCADE,
		FOREIGN KEY (job_request_id) REFERENCES job_requests(id) ON DELETE CASCADE,
		UNIQUE (applicant_id, job_request_id),
		CHECK(status IN ('pending', 'submitted', 'declined'))
	);

	CREATE TABLE IF NOT EXISTS shortlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_request_id INTEGER NOT NULL,
		applicant_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (job_request_id) REFERENCES job_requests(id) ON DELETE CASCADE,
		FOREIGN KEY (applicant_id) REFERENCES applicants(id) ON DELETE CASCADE,
		UNIQUE (job_request_id, applicant_id)
	);

	CREATE INDEX IF NOT EXISTS idx_applicants_status ON applicants(status);
	CREATE INDEX IF NOT EXISTS idx_job_requests_status ON job_requests(status);
	CREATE INDEX IF NOT EXISTS idx_auto_applications_status ON auto_applications(status);
	CREATE INDEX IF NOT EXISTS idx_auto_applications_applicant ON auto_applications(applicant_id);
	`

	_, err := db.Exec(schema)
	return err
}

// Store wraps the database handle with the repository, ledger and
// shortlist operations.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store over an opened database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}
