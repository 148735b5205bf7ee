package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id              TEXT PRIMARY KEY,
		position        BIGINT NOT NULL,
		name            TEXT NOT NULL,
		gender          TEXT NOT NULL DEFAULT '',
		tech            TEXT NOT NULL DEFAULT '',
		training_status TEXT NOT NULL DEFAULT '',
		training_mode   TEXT NOT NULL DEFAULT '',
		session         TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		address         TEXT NOT NULL DEFAULT '',
		attendance      BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_position ON students(position)`,
}

const selectColumns = `id, name, gender, tech, training_status, training_mode, session, phone, email, address, attendance`

// SQLRepository persists the roster in Postgres or SQLite. Queries are written
// with '?' bind vars and rebound for the driver in use.
type SQLRepository struct {
	db *sqlx.DB
}

// NewSQLRepository creates a repo.
func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Migrate creates the students table when missing.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// List returns every student ordered by insertion.
func (r *SQLRepository) List(ctx context.Context) ([]StudentRecord, error) {
	var out []StudentRecord
	if err := r.db.SelectContext(ctx, &out, `SELECT `+selectColumns+` FROM students ORDER BY position`); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single student by id.
func (r *SQLRepository) Get(ctx context.Context, id string) (StudentRecord, bool, error) {
	var rec StudentRecord
	err := r.db.GetContext(ctx, &rec, r.db.Rebind(`SELECT `+selectColumns+` FROM students WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return StudentRecord{}, false, nil
	}
	if err != nil {
		return StudentRecord{}, false, err
	}
	return rec, true, nil
}

// Insert appends a student after the current last position.
func (r *SQLRepository) Insert(ctx context.Context, rec StudentRecord) error {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM students WHERE id = ?`), rec.ID); err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateID
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO students (id, position, name, gender, tech, training_status, training_mode, session, phone, email, address, attendance)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM students), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), rec.ID, rec.Name, rec.Gender, rec.Tech, rec.TrainingStatus,
		string(rec.TrainingMode), string(rec.Session), rec.Phone, rec.Email, rec.Address, rec.Attendance)
	return err
}

// Replace overwrites every field of an existing student except its id.
func (r *SQLRepository) Replace(ctx context.Context, rec StudentRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE students
		SET name = ?, gender = ?, tech = ?, training_status = ?, training_mode = ?,
			session = ?, phone = ?, email = ?, address = ?, attendance = ?
		WHERE id = ?
	`), rec.Name, rec.Gender, rec.Tech, rec.TrainingStatus, string(rec.TrainingMode),
		string(rec.Session), rec.Phone, rec.Email, rec.Address, rec.Attendance, rec.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Delete removes a student by id.
func (r *SQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM students WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
