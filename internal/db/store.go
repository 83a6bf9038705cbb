package db

import (
	"database/sql"
	"time"

	"github.com/chriserin/jsxgen/internal/errors"
)

// Artifact actions stored in the history. Only written and same records
// describe the content currently expected on disk.
const (
	ActionCreated     = "created"
	ActionOverwritten = "overwritten"
	ActionSame        = "same"
	ActionSkipped     = "skipped"
)

type Run struct {
	ID        int64
	Source    string
	OutputDir string
	Policy    string
	DryRun    bool
	CreatedAt time.Time
	Written   int
	Skipped   int
}

type ArtifactRecord struct {
	ID        int64
	RunID     int64
	Path      string
	Kind      string
	Component string
	Hash      string
	Action    string
	CreatedAt time.Time
}

// Store records generation runs and the files each run produced.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Store) RecordRun(source, outputDir, policy string, dryRun bool) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (source_path, output_dir, policy, dry_run, created_at) VALUES (?, ?, ?, ?, ?)`,
		source, outputDir, policy, dryRun, s.timestamp(),
	)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrHistory, "recording run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrHistory, "reading run id")
	}
	return id, nil
}

func (s *Store) RecordArtifact(rec ArtifactRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO artifacts (run_id, file_path, kind, component, hash, action, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Path, rec.Kind, rec.Component, rec.Hash, rec.Action, s.timestamp(),
	)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHistory, "recording %s", rec.Path)
	}
	return nil
}

// LastHash returns the hash of the content last written to path.
func (s *Store) LastHash(path string) (string, bool, error) {
	var hash string
	err := s.db.QueryRow(`
		SELECT hash FROM artifacts
		WHERE file_path = ? AND action IN (?, ?, ?)
		ORDER BY id DESC LIMIT 1`,
		path, ActionCreated, ActionOverwritten, ActionSame,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrHistory, "reading hash of %s", path)
	}
	return hash, true, nil
}

// Runs returns the most recent runs first. A limit of zero or less returns all.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT r.id, r.source_path, r.output_dir, r.policy, r.dry_run, r.created_at,
			COALESCE(SUM(CASE WHEN a.action IN (?, ?) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN a.action = ? THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN artifacts a ON a.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?`,
		ActionCreated, ActionOverwritten, ActionSkipped, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "querying runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Source, &r.OutputDir, &r.Policy, &r.DryRun, &created, &r.Written, &r.Skipped); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistory, "scanning run")
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "iterating runs")
	}
	return runs, nil
}

// Tracked returns, per file path, the latest record describing content
// jsxgen expects on disk, ordered by path.
func (s *Store) Tracked() ([]ArtifactRecord, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.run_id, a.file_path, a.kind, a.component, a.hash, a.action, a.created_at
		FROM artifacts a
		WHERE a.id = (
			SELECT MAX(b.id) FROM artifacts b
			WHERE b.file_path = a.file_path AND b.action IN (?, ?, ?)
		)
		ORDER BY a.file_path`,
		ActionCreated, ActionOverwritten, ActionSame,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "querying tracked files")
	}
	defer rows.Close()

	var out []ArtifactRecord
	for rows.Next() {
		var rec ArtifactRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Path, &rec.Kind, &rec.Component, &rec.Hash, &rec.Action, &created); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistory, "scanning artifact")
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistory, "iterating artifacts")
	}
	return out, nil
}
