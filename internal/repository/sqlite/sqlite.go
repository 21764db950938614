// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of the SQLite C code, so the binary builds
// without CGo and cross-compiles anywhere Go does.
//
// LAYOUT:
// DB owns the connection pool and the schema. Each domain gets its own small
// store type (UserStore, CatalogStore, TrackerStore...) that shares the pool.
// Callers get them from the accessor methods:
//
//	db, err := sqlite.New("data/applyhelp.db")
//	if err != nil { ... }
//	defer db.Close()
//	users := db.Users()
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/applyhelp.db" → file-based database (persistent)
//   - ":memory:"          → in-memory database (tests)
//
// PRAGMAS PER CONNECTION:
// foreign_keys and busy_timeout are per-connection settings in SQLite, so a
// single "PRAGMA foreign_keys=ON" after Open would only reach one connection
// of the pool. They are passed in the DSN instead; the driver applies them to
// every connection it opens.
//
// An in-memory database exists once per connection, so the pool is pinned to
// a single connection for ":memory:".
func New(dbPath string) (*DB, error) {
	memory := dbPath == ":memory:"

	pragmas := []string{"foreign_keys(1)", "busy_timeout(5000)"}
	if !memory {
		// WAL lets readers proceed while a write is in progress.
		pragmas = append(pragmas, "journal_mode(WAL)")
	}
	dsn := dbPath + "?_pragma=" + strings.Join(pragmas, "&_pragma=")

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if memory {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Users() *UserStore       { return &UserStore{conn: db.conn} }
func (db *DB) Profiles() *ProfileStore { return &ProfileStore{conn: db.conn} }
func (db *DB) Catalog() *CatalogStore  { return &CatalogStore{conn: db.conn} }
func (db *DB) Trackers() *TrackerStore { return &TrackerStore{conn: db.conn} }
func (db *DB) Composer() *ComposerStore {
	return &ComposerStore{conn: db.conn}
}
func (db *DB) Resumes() *ResumeStore     { return &ResumeStore{conn: db.conn} }
func (db *DB) Resources() *ResourceStore { return &ResourceStore{conn: db.conn} }

// migrations run in order. Every statement is idempotent, so the whole list
// runs on each start.
//
// FOREIGN KEY ACTIONS:
// Per-user data (profile, trackers, emails, resumes) is removed with its user.
// Documents and resume sections go with their parent. Optional references to
// shared records (template, category, country...) become NULL when the
// referenced row is deleted.
var migrations = []struct {
	name string
	sql  string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id                      TEXT PRIMARY KEY,
			username                TEXT NOT NULL UNIQUE,
			email                   TEXT NOT NULL,
			password_hash           TEXT NOT NULL DEFAULT '',
			github_id               INTEGER UNIQUE,
			first_name              TEXT NOT NULL DEFAULT '',
			last_name               TEXT NOT NULL DEFAULT '',
			kurdish_name            TEXT NOT NULL DEFAULT '',
			region                  TEXT NOT NULL DEFAULT '',
			current_education_level TEXT NOT NULL DEFAULT '',
			preferred_study_level   TEXT NOT NULL DEFAULT '',
			university_name         TEXT NOT NULL DEFAULT '',
			field_of_study          TEXT NOT NULL DEFAULT '',
			graduation_year         INTEGER,
			phone_number            TEXT NOT NULL DEFAULT '',
			current_city            TEXT NOT NULL DEFAULT '',
			current_country         TEXT NOT NULL DEFAULT '',
			research_interests      TEXT NOT NULL DEFAULT '',
			created_at              DATETIME NOT NULL,
			updated_at              DATETIME NOT NULL
		);`},
	{"dialects", `
		CREATE TABLE IF NOT EXISTS dialects (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			code          TEXT NOT NULL UNIQUE,
			name_english  TEXT NOT NULL,
			name_sorani   TEXT NOT NULL DEFAULT '',
			name_kurmanji TEXT NOT NULL DEFAULT ''
		);
		INSERT OR IGNORE INTO dialects (code, name_english, name_sorani, name_kurmanji) VALUES
			('sorani',    'Sorani',    'سۆرانی',   'Soranî'),
			('kurmanji',  'Kurmanji',  'کورمانجی', 'Kurmancî'),
			('pehlewani', 'Pehlewani', 'پەهلەوانی', 'Pehlewanî'),
			('zazaki',    'Zazaki',    'زازاکی',   'Zazakî'),
			('gorani',    'Gorani',    'گۆرانی',   'Goranî');
		CREATE TABLE IF NOT EXISTS user_dialects (
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			dialect_id INTEGER NOT NULL REFERENCES dialects(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, dialect_id)
		);`},
	{"profiles", `
		CREATE TABLE IF NOT EXISTS profiles (
			id                   TEXT PRIMARY KEY,
			user_id              TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			biography            TEXT NOT NULL DEFAULT '',
			motivation_letter    TEXT NOT NULL DEFAULT '',
			gpa                  TEXT,
			academic_awards      TEXT NOT NULL DEFAULT '',
			publications         TEXT NOT NULL DEFAULT '',
			work_experience      TEXT NOT NULL DEFAULT '',
			volunteer_experience TEXT NOT NULL DEFAULT '',
			technical_skills     TEXT NOT NULL DEFAULT '',
			language_skills      TEXT NOT NULL DEFAULT '',
			cv_document          TEXT NOT NULL DEFAULT '',
			transcripts          TEXT NOT NULL DEFAULT '',
			certificates         TEXT NOT NULL DEFAULT '',
			created_at           DATETIME NOT NULL,
			updated_at           DATETIME NOT NULL
		);`},
	{"countries", `
		CREATE TABLE IF NOT EXISTS countries (
			id                     TEXT PRIMARY KEY,
			code                   TEXT NOT NULL UNIQUE,
			name                   TEXT NOT NULL,
			description            TEXT NOT NULL DEFAULT '',
			official_language      TEXT NOT NULL DEFAULT '',
			currency               TEXT NOT NULL DEFAULT '',
			academic_year_start    TEXT NOT NULL DEFAULT '',
			application_deadlines  TEXT NOT NULL DEFAULT '',
			avg_tuition_usd        TEXT,
			avg_living_cost_usd    TEXT,
			student_visa_type      TEXT NOT NULL DEFAULT '',
			visa_processing_time   TEXT NOT NULL DEFAULT '',
			work_permit_allowed    INTEGER NOT NULL DEFAULT 0,
			post_study_work_visa   INTEGER NOT NULL DEFAULT 0,
			kurdish_population     TEXT NOT NULL DEFAULT '',
			kurdish_organizations  TEXT NOT NULL DEFAULT '',
			application_difficulty INTEGER NOT NULL DEFAULT 3,
			living_quality         INTEGER NOT NULL DEFAULT 3,
			study_quality          INTEGER NOT NULL DEFAULT 3,
			is_active              INTEGER NOT NULL DEFAULT 1,
			translations           TEXT NOT NULL DEFAULT '{}',
			created_at             DATETIME NOT NULL,
			updated_at             DATETIME NOT NULL
		);`},
	{"universities", `
		CREATE TABLE IF NOT EXISTS universities (
			id                           TEXT PRIMARY KEY,
			country_id                   TEXT NOT NULL REFERENCES countries(id) ON DELETE CASCADE,
			name                         TEXT NOT NULL,
			city                         TEXT NOT NULL DEFAULT '',
			website                      TEXT NOT NULL DEFAULT '',
			university_type              TEXT NOT NULL DEFAULT 'public',
			established_year             INTEGER,
			world_ranking                INTEGER,
			national_ranking             INTEGER,
			student_population           INTEGER,
			international_students       INTEGER,
			instruction_languages        TEXT NOT NULL DEFAULT '',
			international_office_email   TEXT NOT NULL DEFAULT '',
			admission_email              TEXT NOT NULL DEFAULT '',
			kurdish_students_info        TEXT NOT NULL DEFAULT '',
			kurdish_friendly_supervisors TEXT NOT NULL DEFAULT '',
			academic_reputation          INTEGER NOT NULL DEFAULT 3,
			research_opportunities       INTEGER NOT NULL DEFAULT 3,
			international_support        INTEGER NOT NULL DEFAULT 3,
			is_active                    INTEGER NOT NULL DEFAULT 1,
			translations                 TEXT NOT NULL DEFAULT '{}',
			created_at                   DATETIME NOT NULL,
			updated_at                   DATETIME NOT NULL,
			UNIQUE (country_id, name)
		);
		CREATE INDEX IF NOT EXISTS idx_universities_country ON universities(country_id);`},
	{"programs", `
		CREATE TABLE IF NOT EXISTS programs (
			id                      TEXT PRIMARY KEY,
			university_id           TEXT NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
			name                    TEXT NOT NULL,
			level                   TEXT NOT NULL,
			field_of_study          TEXT NOT NULL DEFAULT '',
			duration_months         INTEGER NOT NULL DEFAULT 0,
			credits                 INTEGER,
			language_of_instruction TEXT NOT NULL DEFAULT '',
			min_gpa                 TEXT,
			language_requirements   TEXT NOT NULL DEFAULT '',
			other_requirements      TEXT NOT NULL DEFAULT '',
			application_deadline    TEXT,
			start_date              TEXT,
			tuition_fee             TEXT,
			currency                TEXT NOT NULL DEFAULT 'USD',
			scholarships_available  INTEGER NOT NULL DEFAULT 0,
			description             TEXT NOT NULL DEFAULT '',
			career_prospects        TEXT NOT NULL DEFAULT '',
			is_active               INTEGER NOT NULL DEFAULT 1,
			translations            TEXT NOT NULL DEFAULT '{}',
			created_at              DATETIME NOT NULL,
			updated_at              DATETIME NOT NULL,
			UNIQUE (university_id, name, level)
		);
		CREATE INDEX IF NOT EXISTS idx_programs_university ON programs(university_id);`},
	{"scholarships", `
		CREATE TABLE IF NOT EXISTS scholarships (
			id                   TEXT PRIMARY KEY,
			name                 TEXT NOT NULL,
			provider             TEXT NOT NULL DEFAULT '',
			country_id           TEXT REFERENCES countries(id) ON DELETE CASCADE,
			university_id        TEXT REFERENCES universities(id) ON DELETE CASCADE,
			scholarship_type     TEXT NOT NULL,
			amount               TEXT,
			currency             TEXT NOT NULL DEFAULT 'USD',
			eligibility_criteria TEXT NOT NULL DEFAULT '',
			kurdish_specific     INTEGER NOT NULL DEFAULT 0,
			application_deadline TEXT,
			application_process  TEXT NOT NULL DEFAULT '',
			required_documents   TEXT NOT NULL DEFAULT '',
			website              TEXT NOT NULL DEFAULT '',
			contact_email        TEXT NOT NULL DEFAULT '',
			description          TEXT NOT NULL DEFAULT '',
			is_active            INTEGER NOT NULL DEFAULT 1,
			translations         TEXT NOT NULL DEFAULT '{}',
			created_at           DATETIME NOT NULL,
			updated_at           DATETIME NOT NULL,
			UNIQUE (name, provider)
		);
		CREATE TABLE IF NOT EXISTS scholarship_programs (
			scholarship_id TEXT NOT NULL REFERENCES scholarships(id) ON DELETE CASCADE,
			program_id     TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			PRIMARY KEY (scholarship_id, program_id)
		);`},
	{"trackers", `
		CREATE TABLE IF NOT EXISTS trackers (
			id                   TEXT PRIMARY KEY,
			user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			university_id        TEXT NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
			program_id           TEXT REFERENCES programs(id) ON DELETE CASCADE,
			application_title    TEXT NOT NULL,
			status               TEXT NOT NULL DEFAULT 'planning',
			priority             TEXT NOT NULL DEFAULT 'medium',
			application_deadline TEXT,
			submission_date      TEXT,
			decision_date        TEXT,
			supervisor_name      TEXT NOT NULL DEFAULT '',
			supervisor_email     TEXT NOT NULL DEFAULT '',
			admission_contact    TEXT NOT NULL DEFAULT '',
			admission_email      TEXT NOT NULL DEFAULT '',
			research_area        TEXT NOT NULL DEFAULT '',
			funding_status       TEXT NOT NULL DEFAULT '',
			application_fee      TEXT,
			notes                TEXT NOT NULL DEFAULT '',
			progress_notes       TEXT NOT NULL DEFAULT '',
			created_at           DATETIME NOT NULL,
			updated_at           DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trackers_user ON trackers(user_id);`},
	{"documents", `
		CREATE TABLE IF NOT EXISTS documents (
			id            TEXT PRIMARY KEY,
			tracker_id    TEXT NOT NULL REFERENCES trackers(id) ON DELETE CASCADE,
			document_type TEXT NOT NULL,
			title         TEXT NOT NULL,
			file          TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL DEFAULT 'draft',
			version       INTEGER NOT NULL DEFAULT 1,
			description   TEXT NOT NULL DEFAULT '',
			deadline      TEXT,
			is_required   INTEGER NOT NULL DEFAULT 1,
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_documents_tracker ON documents(tracker_id);`},
	{"email_templates", `
		CREATE TABLE IF NOT EXISTS email_templates (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL UNIQUE,
			template_type   TEXT NOT NULL,
			formality_level TEXT NOT NULL DEFAULT 'formal',
			target_country  TEXT NOT NULL DEFAULT '',
			subject_line    TEXT NOT NULL DEFAULT '',
			greeting        TEXT NOT NULL DEFAULT '',
			body            TEXT NOT NULL DEFAULT '',
			closing         TEXT NOT NULL DEFAULT '',
			signature       TEXT NOT NULL DEFAULT '',
			description     TEXT NOT NULL DEFAULT '',
			cultural_notes  TEXT NOT NULL DEFAULT '',
			variables       TEXT NOT NULL DEFAULT '[]',
			is_active       INTEGER NOT NULL DEFAULT 1,
			translations    TEXT NOT NULL DEFAULT '{}',
			created_at      DATETIME NOT NULL,
			updated_at      DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS communication_tips (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL UNIQUE,
			context         TEXT NOT NULL,
			country         TEXT NOT NULL DEFAULT '',
			content         TEXT NOT NULL DEFAULT '',
			example         TEXT NOT NULL DEFAULT '',
			kurdish_context TEXT NOT NULL DEFAULT '',
			common_mistakes TEXT NOT NULL DEFAULT '',
			is_active       INTEGER NOT NULL DEFAULT 1,
			priority        INTEGER NOT NULL DEFAULT 1,
			translations    TEXT NOT NULL DEFAULT '{}',
			created_at      DATETIME NOT NULL
		);`},
	{"email_logs", `
		CREATE TABLE IF NOT EXISTS email_logs (
			id                TEXT PRIMARY KEY,
			user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tracker_id        TEXT REFERENCES trackers(id) ON DELETE CASCADE,
			email_type        TEXT NOT NULL,
			template_id       TEXT REFERENCES email_templates(id) ON DELETE SET NULL,
			recipient_email   TEXT NOT NULL,
			recipient_name    TEXT NOT NULL DEFAULT '',
			subject           TEXT NOT NULL,
			body              TEXT NOT NULL,
			sent_date         DATETIME NOT NULL,
			response_received INTEGER NOT NULL DEFAULT 0,
			response_date     TEXT,
			notes             TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_email_logs_user ON email_logs(user_id, sent_date);`},
	{"resumes", `
		CREATE TABLE IF NOT EXISTS cv_templates (
			id                    TEXT PRIMARY KEY,
			name                  TEXT NOT NULL UNIQUE,
			template_type         TEXT NOT NULL,
			country_style         TEXT NOT NULL,
			description           TEXT NOT NULL DEFAULT '',
			sections_order        TEXT NOT NULL DEFAULT '[]',
			formatting_guidelines TEXT NOT NULL DEFAULT '',
			is_active             INTEGER NOT NULL DEFAULT 1,
			created_at            DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS resumes (
			id                   TEXT PRIMARY KEY,
			user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			template_id          TEXT REFERENCES cv_templates(id) ON DELETE SET NULL,
			title                TEXT NOT NULL,
			target_country       TEXT NOT NULL DEFAULT '',
			target_field         TEXT NOT NULL DEFAULT '',
			full_name            TEXT NOT NULL DEFAULT '',
			kurdish_name         TEXT NOT NULL DEFAULT '',
			email                TEXT NOT NULL DEFAULT '',
			phone                TEXT NOT NULL DEFAULT '',
			address              TEXT NOT NULL DEFAULT '',
			website              TEXT NOT NULL DEFAULT '',
			linkedin             TEXT NOT NULL DEFAULT '',
			professional_summary TEXT NOT NULL DEFAULT '',
			objective            TEXT NOT NULL DEFAULT '',
			is_primary           INTEGER NOT NULL DEFAULT 0,
			created_at           DATETIME NOT NULL,
			updated_at           DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_resumes_user ON resumes(user_id);`},
	{"resume_sections", `
		CREATE TABLE IF NOT EXISTS resume_education (
			id                  TEXT PRIMARY KEY,
			resume_id           TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			degree_level        TEXT NOT NULL,
			degree_title        TEXT NOT NULL,
			field_of_study      TEXT NOT NULL DEFAULT '',
			institution_name    TEXT NOT NULL,
			institution_city    TEXT NOT NULL DEFAULT '',
			institution_country TEXT NOT NULL DEFAULT '',
			start_date          TEXT NOT NULL,
			end_date            TEXT,
			is_current          INTEGER NOT NULL DEFAULT 0,
			gpa                 TEXT NOT NULL DEFAULT '',
			thesis_title        TEXT NOT NULL DEFAULT '',
			supervisor          TEXT NOT NULL DEFAULT '',
			description         TEXT NOT NULL DEFAULT '',
			achievements        TEXT NOT NULL DEFAULT '',
			display_order       INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS resume_experience (
			id              TEXT PRIMARY KEY,
			resume_id       TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			experience_type TEXT NOT NULL,
			job_title       TEXT NOT NULL,
			company_name    TEXT NOT NULL,
			company_city    TEXT NOT NULL DEFAULT '',
			company_country TEXT NOT NULL DEFAULT '',
			start_date      TEXT NOT NULL,
			end_date        TEXT,
			is_current      INTEGER NOT NULL DEFAULT 0,
			description     TEXT NOT NULL,
			achievements    TEXT NOT NULL DEFAULT '',
			skills_used     TEXT NOT NULL DEFAULT '',
			display_order   INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS resume_skills (
			id                  TEXT PRIMARY KEY,
			resume_id           TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			category            TEXT NOT NULL,
			name                TEXT NOT NULL,
			proficiency         TEXT NOT NULL,
			description         TEXT NOT NULL DEFAULT '',
			years_of_experience INTEGER,
			display_order       INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS resume_publications (
			id                TEXT PRIMARY KEY,
			resume_id         TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			publication_type  TEXT NOT NULL,
			title             TEXT NOT NULL,
			authors           TEXT NOT NULL,
			publication_venue TEXT NOT NULL DEFAULT '',
			publication_date  TEXT,
			volume            TEXT NOT NULL DEFAULT '',
			issue             TEXT NOT NULL DEFAULT '',
			pages             TEXT NOT NULL DEFAULT '',
			doi               TEXT NOT NULL DEFAULT '',
			url               TEXT NOT NULL DEFAULT '',
			abstract          TEXT NOT NULL DEFAULT '',
			keywords          TEXT NOT NULL DEFAULT '',
			display_order     INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS resume_awards (
			id                   TEXT PRIMARY KEY,
			resume_id            TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			award_type           TEXT NOT NULL,
			title                TEXT NOT NULL,
			issuing_organization TEXT NOT NULL,
			date_received        TEXT NOT NULL,
			description          TEXT NOT NULL DEFAULT '',
			display_order        INTEGER NOT NULL DEFAULT 0
		);`},
	{"resources", `
		CREATE TABLE IF NOT EXISTS categories (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			description   TEXT NOT NULL DEFAULT '',
			icon          TEXT NOT NULL DEFAULT '',
			color         TEXT NOT NULL DEFAULT '#007bff',
			parent_id     TEXT REFERENCES categories(id) ON DELETE CASCADE,
			display_order INTEGER NOT NULL DEFAULT 0,
			is_active     INTEGER NOT NULL DEFAULT 1,
			translations  TEXT NOT NULL DEFAULT '{}',
			created_at    DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS guides (
			id                     TEXT PRIMARY KEY,
			title                  TEXT NOT NULL,
			guide_type             TEXT NOT NULL,
			category_id            TEXT REFERENCES categories(id) ON DELETE SET NULL,
			country_id             TEXT REFERENCES countries(id) ON DELETE SET NULL,
			university_id          TEXT REFERENCES universities(id) ON DELETE SET NULL,
			author_id              TEXT REFERENCES users(id) ON DELETE SET NULL,
			difficulty_level       TEXT NOT NULL DEFAULT 'beginner',
			summary                TEXT NOT NULL DEFAULT '',
			content                TEXT NOT NULL DEFAULT '',
			steps                  TEXT NOT NULL DEFAULT '[]',
			estimated_reading_time INTEGER NOT NULL DEFAULT 10,
			views                  INTEGER NOT NULL DEFAULT 0,
			helpful_votes          INTEGER NOT NULL DEFAULT 0,
			slug                   TEXT NOT NULL UNIQUE,
			meta_description       TEXT NOT NULL DEFAULT '',
			keywords               TEXT NOT NULL DEFAULT '',
			is_featured            INTEGER NOT NULL DEFAULT 0,
			is_published           INTEGER NOT NULL DEFAULT 1,
			translations           TEXT NOT NULL DEFAULT '{}',
			created_at             DATETIME NOT NULL,
			last_updated           DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_guides_category ON guides(category_id);`},
}

func (db *DB) migrate() error {
	for _, m := range migrations {
		if _, err := db.conn.Exec(m.sql); err != nil {
			return fmt.Errorf("migrating %s: %w", m.name, err)
		}
	}

	// Added after the first release; ALTER TABLE is not idempotent, so the
	// column is checked first.
	if err := db.addColumnIfNotExists("users", "avatar_url", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return fmt.Errorf("adding avatar_url to users: %w", err)
	}
	return nil
}

// addColumnIfNotExists adds a column to a table only if it doesn't already exist.
func (db *DB) addColumnIfNotExists(table, column, definition string) error {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if count > 0 {
		return nil
	}
	_, err = db.conn.Exec(fmt.Sprintf(
		`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition,
	))
	return err
}
