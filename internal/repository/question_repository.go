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

// questionColumns joins the owning session so reads come back enriched with
// the denormalized subject and instructor names in one query, which keeps the
// list endpoint cheap enough for per-client polling.
const questionColumns = `
	q.id, q.class_id, q.text, q.author, q.color, q.status, q.created_at,
	cs.subject_name, cs.instructor_name
`

type QuestionRepository struct {
	*base.Repository
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a question. A (class_id, text) collision is reported as
// errorz.ErrDuplicateQuestion; the unique index makes sure exactly one of two
// racing identical submissions wins.
func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	query := `
		INSERT INTO questions (class_id, text, author, color, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		question.ClassID,
		question.Text,
		question.Author,
		question.Color,
		question.Status,
	).Scan(&question.ID, &question.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err, "questions_class_id_text_key") {
			return errorz.ErrDuplicateQuestion
		}
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

// GetByID returns the question with session enrichment or errorz.ErrNotFound.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		JOIN class_sessions cs ON cs.id = q.class_id
		WHERE q.id = $1
	`

	question, err := r.scanOne(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, errorz.ErrNotFound
		}
		return nil, fmt.Errorf("get question by id: %w", err)
	}
	return question, nil
}

// ListByClass returns the session's questions newest first, optionally
// narrowed to one status. An empty status means no filtering.
func (r *QuestionRepository) ListByClass(ctx context.Context, classID uuid.UUID, status model.QuestionStatus) ([]*model.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		JOIN class_sessions cs ON cs.id = q.class_id
		WHERE q.class_id = $1 AND ($2 = '' OR q.status = $2)
		ORDER BY q.created_at DESC
	`

	rows, err := r.Query(ctx, query, classID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list questions by class: %w", err)
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		question, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// UpdateStatus sets the question's status and returns the updated row.
func (r *QuestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.QuestionStatus) (*model.Question, error) {
	query := `
		UPDATE questions q
		SET status = $2
		FROM class_sessions cs
		WHERE q.id = $1 AND cs.id = q.class_id
		RETURNING ` + questionColumns + `
	`

	question, err := r.scanOne(r.QueryRow(ctx, query, id, status))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, errorz.ErrNotFound
		}
		return nil, fmt.Errorf("update question status: %w", err)
	}
	return question, nil
}

// Delete removes a single question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if affected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}

// DeleteByClass removes every question on the session's board and returns how
// many were cleared.
func (r *QuestionRepository) DeleteByClass(ctx context.Context, classID uuid.UUID) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM questions WHERE class_id = $1`, classID)
	if err != nil {
		return 0, fmt.Errorf("clear questions for class: %w", err)
	}
	return affected, nil
}

// CountByStatus aggregates the board's status counts in one pass.
func (r *QuestionRepository) CountByStatus(ctx context.Context, classID uuid.UUID) (total, answered, pending, important int, err error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'answered'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'important')
		FROM questions
		WHERE class_id = $1
	`

	err = r.QueryRow(ctx, query, classID).Scan(&total, &answered, &pending, &important)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("count questions by status: %w", err)
	}
	return total, answered, pending, important, nil
}

func (r *QuestionRepository) scanOne(row pgx.Row) (*model.Question, error) {
	var question model.Question
	err := row.Scan(
		&question.ID,
		&question.ClassID,
		&question.Text,
		&question.Author,
		&question.Color,
		&question.Status,
		&question.CreatedAt,
		&question.SubjectName,
		&question.InstructorName,
	)
	if err != nil {
		return nil, err
	}
	return &question, nil
}
