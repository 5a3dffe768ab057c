package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
)

// AnalyticsService computes per-session question counts and caches them so
// the numbers survive the board being cleared. The first snapshot taken for a
// session wins; later attempts are no-ops.
type AnalyticsService struct {
	questions QuestionRepository
	snapshots SnapshotRepository
	logger    *zap.Logger
}

func NewAnalyticsService(questions QuestionRepository, snapshots SnapshotRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		questions: questions,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Ensure returns the session's snapshot, computing and caching it from the
// current board if none exists yet. Called the first time a session is
// observed ended, and right before a board clear.
func (s *AnalyticsService) Ensure(ctx context.Context, classID uuid.UUID) (*model.BoardSnapshot, error) {
	snapshot, err := s.snapshots.Get(ctx, classID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, errorz.ErrNotFound) {
		return nil, err
	}

	total, answered, pending, important, err := s.questions.CountByStatus(ctx, classID)
	if err != nil {
		return nil, err
	}

	snapshot = &model.BoardSnapshot{
		ClassID:        classID,
		TotalQuestions: total,
		Answered:       answered,
		Unanswered:     pending,
		Important:      important,
	}

	created, err := s.snapshots.CreateIfAbsent(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if !created {
		// Another request snapshotted first; its counts are authoritative.
		return s.snapshots.Get(ctx, classID)
	}

	s.logger.Info("Board snapshot taken",
		zap.String("session_id", classID.String()),
		zap.Int("total_questions", total),
		zap.Int("answered", answered),
		zap.Int("unanswered", pending),
		zap.Int("important", important),
	)

	return snapshot, nil
}

// Snapshot returns the cached snapshot if one exists, otherwise the live
// counts for a still-running board, without caching them.
func (s *AnalyticsService) Snapshot(ctx context.Context, classID uuid.UUID) (*model.BoardSnapshot, error) {
	snapshot, err := s.snapshots.Get(ctx, classID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, errorz.ErrNotFound) {
		return nil, err
	}

	total, answered, pending, important, err := s.questions.CountByStatus(ctx, classID)
	if err != nil {
		return nil, err
	}

	return &model.BoardSnapshot{
		ClassID:        classID,
		TotalQuestions: total,
		Answered:       answered,
		Unanswered:     pending,
		Important:      important,
	}, nil
}
