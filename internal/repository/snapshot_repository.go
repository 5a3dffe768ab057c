package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
	"github.com/classboard/backend/internal/repository/base"
)

type SnapshotRepository struct {
	*base.Repository
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{Repository: base.NewRepository(pool)}
}

// Get returns the cached snapshot for a session or errorz.ErrNotFound.
func (r *SnapshotRepository) Get(ctx context.Context, classID uuid.UUID) (*model.BoardSnapshot, error) {
	query := `
		SELECT class_id, total_questions, answered, unanswered, important, created_at
		FROM board_snapshots
		WHERE class_id = $1
	`

	var snapshot model.BoardSnapshot
	err := r.QueryRow(ctx, query, classID).Scan(
		&snapshot.ClassID,
		&snapshot.TotalQuestions,
		&snapshot.Answered,
		&snapshot.Unanswered,
		&snapshot.Important,
		&snapshot.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, errorz.ErrNotFound
		}
		return nil, fmt.Errorf("get board snapshot: %w", err)
	}
	return &snapshot, nil
}

// CreateIfAbsent stores the snapshot unless one already exists for the
// session. First write wins; repeat observations of an ended session never
// overwrite the counts taken at the first one.
func (r *SnapshotRepository) CreateIfAbsent(ctx context.Context, snapshot *model.BoardSnapshot) (bool, error) {
	query := `
		INSERT INTO board_snapshots (class_id, total_questions, answered, unanswered, important)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_id) DO NOTHING
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		snapshot.ClassID,
		snapshot.TotalQuestions,
		snapshot.Answered,
		snapshot.Unanswered,
		snapshot.Important,
	).Scan(&snapshot.CreatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			// Lost the race or already snapshotted earlier.
			return false, nil
		}
		return false, fmt.Errorf("create board snapshot: %w", err)
	}
	return true, nil
}
