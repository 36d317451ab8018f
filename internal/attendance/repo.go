package attendance

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"classtrack/internal/roster"
	"classtrack/internal/store"
)

// Repository persists submitted attendance in Postgres.
type Repository struct {
	db *store.DB
}

// NewRepository creates a repo.
func NewRepository(db *store.DB) *Repository {
	return &Repository{db: db}
}

// SaveSubmission durably records one session's roster and topic and marks the
// session completed, all in one transaction. Completion is the one-shot write
// path: once set it is never reset.
func (r *Repository) SaveSubmission(ctx context.Context, sessionID, facultyID, topic string, entries []roster.Entry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM attendance_records WHERE session_id = $1
		`, sessionID); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO attendance_records (id, session_id, student_number, student_name, status)
				VALUES ($1,$2,$3,$4,$5)
			`, uuid.NewString(), sessionID, e.StudentNumber, e.StudentName, string(e.Status)); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE class_sessions
			SET completed = TRUE, topic = $2
			WHERE id = $1 AND faculty_id = $3
		`, sessionID, topic, facultyID)
		return err
	})
}

// GetRoster returns a previously submitted roster and its topic, in the order
// it was recorded. An empty slice means no submission exists yet.
func (r *Repository) GetRoster(ctx context.Context, sessionID string) ([]roster.Entry, string, error) {
	var topic string
	err := r.db.Client.QueryRowContext(ctx, `
		SELECT COALESCE(topic, '') FROM class_sessions WHERE id = $1
	`, sessionID).Scan(&topic)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}

	rows, err := r.db.Client.QueryContext(ctx, `
		SELECT student_number, COALESCE(student_name, ''), status
		FROM attendance_records
		WHERE session_id = $1
		ORDER BY student_number
	`, sessionID)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var entries []roster.Entry
	for rows.Next() {
		var e roster.Entry
		var status string
		if err := rows.Scan(&e.StudentNumber, &e.StudentName, &status); err != nil {
			return nil, "", err
		}
		e.Status = roster.Status(status)
		entries = append(entries, e)
	}
	return entries, topic, rows.Err()
}

// ClassTally aggregates one student's attendance across a class's completed
// sessions. The worker recomputes these after every submission.
type ClassTally struct {
	StudentNumber int `json:"student_number"`
	Present       int `json:"present"`
	Absent        int `json:"absent"`
}

// TalliesForClass counts per-student present/absent marks across every
// session of the class owning sessionID.
func (r *Repository) TalliesForClass(ctx context.Context, sessionID string) ([]ClassTally, error) {
	rows, err := r.db.Client.QueryContext(ctx, `
		SELECT ar.student_number,
		       COUNT(*) FILTER (WHERE ar.status = 'present'),
		       COUNT(*) FILTER (WHERE ar.status = 'absent')
		FROM attendance_records ar
		JOIN class_sessions cs ON cs.id = ar.session_id
		WHERE (cs.year, cs.department, cs.section) =
		      (SELECT year, department, section FROM class_sessions WHERE id = $1)
		GROUP BY ar.student_number
		ORDER BY ar.student_number
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClassTally
	for rows.Next() {
		var t ClassTally
		if err := rows.Scan(&t.StudentNumber, &t.Present, &t.Absent); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ClassKey returns the class identity for a session, used as the tally cache
// key component.
func (r *Repository) ClassKey(ctx context.Context, sessionID string) (string, error) {
	var year, department, section string
	err := r.db.Client.QueryRowContext(ctx, `
		SELECT year, department, section FROM class_sessions WHERE id = $1
	`, sessionID).Scan(&year, &department, &section)
	if err != nil {
		return "", err
	}
	return year + ":" + department + ":" + section, nil
}
