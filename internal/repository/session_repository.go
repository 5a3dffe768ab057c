package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
	"github.com/classboard/backend/internal/repository/base"
)

const sessionColumns = `id, subject_name, instructor_id, instructor_name, access_code, duration_minutes, start_time, end_time, created_at`

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a session and fills in the storage-generated fields. A
// collision on the access_code unique index comes back as
// errorz.ErrDuplicateAccessCode so the caller can retry with a fresh code.
func (r *SessionRepository) Create(ctx context.Context, session *model.ClassSession) error {
	query := `
		INSERT INTO class_sessions (subject_name, instructor_id, instructor_name, access_code, duration_minutes, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		session.SubjectName,
		session.InstructorID,
		session.InstructorName,
		session.AccessCode,
		session.DurationMinutes,
		session.StartTime,
		session.EndTime,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err, "class_sessions_access_code_key") {
			return errorz.ErrDuplicateAccessCode
		}
		return fmt.Errorf("create class session: %w", err)
	}

	return nil
}

// GetByID returns the session or errorz.ErrNotFound.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM class_sessions WHERE id = $1`

	session, err := r.scanOne(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, errorz.ErrNotFound
		}
		return nil, fmt.Errorf("get class session by id: %w", err)
	}
	return session, nil
}

// GetByAccessCode returns the session registered under code, regardless of
// whether it has ended. Callers decide what an ended session means for them.
func (r *SessionRepository) GetByAccessCode(ctx context.Context, code string) (*model.ClassSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM class_sessions WHERE access_code = $1`

	session, err := r.scanOne(r.QueryRow(ctx, query, code))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, errorz.ErrNotFound
		}
		return nil, fmt.Errorf("get class session by access code: %w", err)
	}
	return session, nil
}

// ListByInstructor returns the instructor's sessions, newest first.
func (r *SessionRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*model.ClassSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM class_sessions
		WHERE instructor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list class sessions by instructor: %w", err)
	}
	defer rows.Close()

	var sessions []*model.ClassSession
	for rows.Next() {
		session, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class sessions: %w", err)
	}

	return sessions, nil
}

// Delete removes the session. Questions and the board snapshot go with it via
// ON DELETE CASCADE.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class session: %w", err)
	}
	if affected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) scanOne(row pgx.Row) (*model.ClassSession, error) {
	var session model.ClassSession
	err := row.Scan(
		&session.ID,
		&session.SubjectName,
		&session.InstructorID,
		&session.InstructorName,
		&session.AccessCode,
		&session.DurationMinutes,
		&session.StartTime,
		&session.EndTime,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
