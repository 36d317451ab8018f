package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"classtrack/internal/session"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = errors.New("session not found")

// Repository persists class sessions and the class directory in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const sessionColumns = `id, faculty_id, subject_code, subject_name, year, department, section, venue, session_date, start_time, end_time, completed, COALESCE(topic, '')`

func scanSession(row interface{ Scan(...any) error }) (session.Session, error) {
	var s session.Session
	err := row.Scan(&s.ID, &s.FacultyID, &s.SubjectCode, &s.Subject, &s.Year, &s.Department,
		&s.Section, &s.Venue, &s.Date, &s.StartTime, &s.EndTime, &s.Completed, &s.Topic)
	return s, err
}

// ListByFacultyAndDate returns one faculty member's sessions for a calendar day.
func (r *Repository) ListByFacultyAndDate(ctx context.Context, facultyID string, day time.Time) ([]session.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM class_sessions
		WHERE faculty_id = $1 AND session_date = $2
		ORDER BY start_time
	`, facultyID, day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByClassAndDate returns every session booked for a class on a day,
// regardless of faculty. Used for slot availability.
func (r *Repository) ListByClassAndDate(ctx context.Context, year, department, section string, day time.Time) ([]session.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM class_sessions
		WHERE year = $1 AND department = $2 AND section = $3 AND session_date = $4
		ORDER BY start_time
	`, year, department, section, day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a single session by id.
func (r *Repository) Get(ctx context.Context, id string) (session.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM class_sessions WHERE id = $1
	`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, ErrNotFound
	}
	return s, err
}

// Insert writes a new session.
func (r *Repository) Insert(ctx context.Context, s session.Session) (session.Session, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO class_sessions
			(id, faculty_id, subject_code, subject_name, year, department, section, venue, session_date, start_time, end_time, completed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,FALSE)
	`, s.ID, s.FacultyID, s.SubjectCode, s.Subject, s.Year, s.Department, s.Section,
		s.Venue, s.Date.Format("2006-01-02"), s.StartTime, s.EndTime)
	return s, err
}

// Delete cancels a session owned by the faculty member.
func (r *Repository) Delete(ctx context.Context, id, facultyID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM class_sessions WHERE id = $1 AND faculty_id = $2
	`, id, facultyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Student is one member of a class directory.
type Student struct {
	ID         string `json:"id"`
	RollNumber int    `json:"roll_number"`
	Name       string `json:"name"`
}

// CountStudents returns the head count for a class.
func (r *Repository) CountStudents(ctx context.Context, year, department, section string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM students WHERE year = $1 AND department = $2 AND section = $3
	`, year, department, section).Scan(&n)
	return n, err
}

// ListStudents returns the class directory ordered by roll number.
func (r *Repository) ListStudents(ctx context.Context, year, department, section string) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, roll_number, name
		FROM students
		WHERE year = $1 AND department = $2 AND section = $3
		ORDER BY roll_number
	`, year, department, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.RollNumber, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Subject is one course a faculty member teaches.
type Subject struct {
	Code string `json:"subject_code"`
	Name string `json:"subject_name"`
	Type string `json:"subject_type"`
}

// ListSubjects returns the subjects assigned to a faculty member.
func (r *Repository) ListSubjects(ctx context.Context, facultyID string) ([]Subject, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT subject_code, subject_name, subject_type
		FROM faculty_subjects
		WHERE faculty_id = $1
		ORDER BY subject_code
	`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Subject
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.Code, &sub.Name, &sub.Type); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Faculty is an authenticated teacher account.
type Faculty struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// FacultyByEmail looks up a faculty account for login. Returns nil when the
// email is unknown.
func (r *Repository) FacultyByEmail(ctx context.Context, email string) (*Faculty, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash FROM faculty WHERE email = $1
	`, email)
	var f Faculty
	if err := row.Scan(&f.ID, &f.Name, &f.Email, &f.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
