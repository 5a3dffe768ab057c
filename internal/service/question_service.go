package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
)

// QuestionService is the moderation board: student submissions gated by
// session activity, instructor status transitions, and clearing. All mutating
// instructor operations check ownership of the session; there are no
// unauthorized side doors.
type QuestionService struct {
	sessions  SessionRepository
	questions QuestionRepository
	analytics *AnalyticsService
	logger    *zap.Logger
}

func NewQuestionService(
	sessions SessionRepository,
	questions QuestionRepository,
	analytics *AnalyticsService,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		sessions:  sessions,
		questions: questions,
		analytics: analytics,
		logger:    logger,
	}
}

// Submit posts a new sticky note to a live session's board. The same text can
// be asked once per session; the storage unique index decides races.
func (s *QuestionService) Submit(ctx context.Context, classID uuid.UUID, text, author string) (*model.Question, error) {
	session, err := s.sessions.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if !session.Active(time.Now()) {
		return nil, errorz.ErrSessionEnded
	}

	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > model.MaxQuestionLength {
		return nil, errorz.ErrInvalidInput
	}

	author = strings.TrimSpace(author)
	if author == "" {
		author = model.DefaultAuthor
	}

	question := &model.Question{
		ClassID: classID,
		Text:    text,
		Author:  author,
		Color:   model.RandomStickyColor(),
		Status:  model.QuestionStatusPending,
	}

	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	question.SubjectName = session.SubjectName
	question.InstructorName = session.InstructorName

	s.logger.Info("Question submitted",
		zap.String("question_id", question.ID.String()),
		zap.String("session_id", classID.String()),
		zap.String("author", author),
	)

	return question, nil
}

// List returns the board newest first, optionally filtered by status
// ("all" or empty means everything). It is side-effect free on the board
// itself and safe to poll; the one thing it triggers is the end-of-session
// snapshot the first time it sees the session ended.
func (s *QuestionService) List(ctx context.Context, classID uuid.UUID, statusFilter string) ([]*model.Question, error) {
	status, err := normalizeFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if !session.Active(time.Now()) {
		// Capture the final counts while the questions are still around.
		// A failure here only delays the snapshot until the next poll.
		if _, err := s.analytics.Ensure(ctx, classID); err != nil {
			s.logger.Warn("End-of-session snapshot failed",
				zap.String("session_id", classID.String()),
				zap.Error(err))
		}
	}

	return s.questions.ListByClass(ctx, classID, status)
}

// Get returns one question with its session enrichment.
func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// SetStatus moves a question to any of the three statuses. Only the owning
// instructor may moderate; the status value itself is unrestricted, any state
// can be set from any other.
func (s *QuestionService) SetStatus(ctx context.Context, id uuid.UUID, status model.QuestionStatus, requester model.Principal) (*model.Question, error) {
	if !status.Valid() {
		return nil, errorz.ErrInvalidStatus
	}

	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwner(ctx, question.ClassID, requester); err != nil {
		return nil, err
	}

	updated, err := s.questions.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Question status updated",
		zap.String("question_id", id.String()),
		zap.String("status", string(status)),
		zap.String("instructor_id", requester.ID.String()),
	)

	return updated, nil
}

// Delete removes a single question from the board.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID, requester model.Principal) error {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireOwner(ctx, question.ClassID, requester); err != nil {
		return err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Question deleted",
		zap.String("question_id", id.String()),
		zap.String("instructor_id", requester.ID.String()),
	)

	return nil
}

// ClearBoard wipes every question on the session's board. The counts are
// snapshotted first (if they have not been already) so the session's history
// outlives the raw questions.
func (s *QuestionService) ClearBoard(ctx context.Context, classID uuid.UUID, requester model.Principal) error {
	if err := s.requireOwner(ctx, classID, requester); err != nil {
		return err
	}

	if _, err := s.analytics.Ensure(ctx, classID); err != nil {
		return err
	}

	cleared, err := s.questions.DeleteByClass(ctx, classID)
	if err != nil {
		return err
	}

	s.logger.Info("Board cleared",
		zap.String("session_id", classID.String()),
		zap.Int64("questions_removed", cleared),
		zap.String("instructor_id", requester.ID.String()),
	)

	return nil
}

func (s *QuestionService) requireOwner(ctx context.Context, classID uuid.UUID, requester model.Principal) error {
	session, err := s.sessions.GetByID(ctx, classID)
	if err != nil {
		return err
	}
	if !session.OwnedBy(requester.ID) {
		return errorz.ErrForbidden
	}
	return nil
}

func normalizeFilter(filter string) (model.QuestionStatus, error) {
	switch filter {
	case "", "all":
		return "", nil
	}
	status := model.QuestionStatus(filter)
	if !status.Valid() {
		return "", errorz.ErrInvalidStatus
	}
	return status, nil
}
