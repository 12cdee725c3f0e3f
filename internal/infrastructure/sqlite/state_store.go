package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/zjrosen/requisite/internal/state"
)

// StateStore implements state.Store on SQLite. Commit writes the settings and
// the submission record in a single transaction.
type StateStore struct {
	db  *DB
	now func() time.Time
}

var _ state.Store = (*StateStore)(nil)

func newStateStore(db *DB) *StateStore {
	return &StateStore{db: db, now: time.Now}
}

func (s *StateStore) Setting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.conn.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting: %w", err)
	}
	return value, true, nil
}

func (s *StateStore) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *StateStore) Capabilities(ctx context.Context) ([]string, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT name FROM capabilities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list capabilities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan capability: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *StateStore) Commit(ctx context.Context, requirementID string, values map[string]string) error {
	for k := range values {
		if err := state.ValidateKey(k); err != nil {
			return err
		}
	}

	now := s.now()
	model := toSubmissionModel(state.NewSubmission(requirementID, maps.Clone(values), now))

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO submissions (id, requirement_id, submitted_at) VALUES (?, ?, ?)`,
		model.ID, model.RequirementID, model.SubmittedAt,
	); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	for k, v := range values {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO submission_values (submission_id, key, value) VALUES (?, ?, ?)`,
			model.ID, k, v,
		); err != nil {
			return fmt.Errorf("failed to insert submission value: %w", err)
		}
		if err := upsertSetting(ctx, tx, k, v, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit configuration: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertSetting(ctx context.Context, db execer, key, value string, at time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

func (s *StateStore) SetSetting(ctx context.Context, key, value string) error {
	if err := state.ValidateKey(key); err != nil {
		return err
	}
	return upsertSetting(ctx, s.db.conn, key, value, s.now())
}

func (s *StateStore) DeleteSetting(ctx context.Context, key string) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

func (s *StateStore) SetCapability(ctx context.Context, name string, enabled bool) error {
	n, err := state.NormalizeCapability(name)
	if err != nil {
		return err
	}
	if enabled {
		_, err = s.db.conn.ExecContext(ctx,
			`INSERT INTO capabilities (name, enabled_at) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
			n, s.now().UnixMilli(),
		)
	} else {
		_, err = s.db.conn.ExecContext(ctx, `DELETE FROM capabilities WHERE name = ?`, n)
	}
	if err != nil {
		return fmt.Errorf("failed to set capability: %w", err)
	}
	return nil
}

func (s *StateStore) Submissions(ctx context.Context, requirementID string) ([]state.Submission, error) {
	query := `SELECT s.id, s.requirement_id, s.submitted_at, v.key, v.value
		FROM submissions s LEFT JOIN submission_values v ON v.submission_id = s.id`
	var args []any
	if requirementID != "" {
		query += ` WHERE s.requirement_id = ?`
		args = append(args, requirementID)
	}
	query += ` ORDER BY s.submitted_at, s.rowid, v.key`

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var models []*SubmissionModel
	for rows.Next() {
		var m SubmissionModel
		var key, value sql.NullString
		if err := rows.Scan(&m.ID, &m.RequirementID, &m.SubmittedAt, &key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if n := len(models); n == 0 || models[n-1].ID != m.ID {
			m.Values = make(map[string]string)
			models = append(models, &m)
		}
		if key.Valid {
			models[len(models)-1].Values[key.String] = value.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]state.Submission, 0, len(models))
	for _, m := range models {
		sub, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode submission %s: %w", m.ID, err)
		}
		out = append(out, sub)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *StateStore) Close() error {
	return s.db.Close()
}
