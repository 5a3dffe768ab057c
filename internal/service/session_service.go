package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/accesscode"
	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
)

// SessionService owns the class-session lifecycle: creation under a unique
// access code, lookup, and instructor-gated deletion. It is the directory the
// rest of the system resolves sessions through.
type SessionService struct {
	sessions SessionRepository
	logger   *zap.Logger
}

func NewSessionService(sessions SessionRepository, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		logger:   logger,
	}
}

// Create starts a new time-boxed session for the instructor. The end time is
// fixed here and never mutated afterwards; "ended" is always derived from it.
// Code collisions are arbitrated by the storage unique index and retried with
// a fresh code, bounded by accesscode.MaxAttempts.
func (s *SessionService) Create(ctx context.Context, instructor model.Principal, subjectName string, durationMinutes int) (*model.ClassSession, error) {
	subjectName = strings.TrimSpace(subjectName)
	if subjectName == "" || durationMinutes <= 0 {
		return nil, errorz.ErrInvalidInput
	}

	startTime := time.Now()
	session := &model.ClassSession{
		SubjectName:     subjectName,
		InstructorID:    instructor.ID,
		InstructorName:  instructor.Username,
		DurationMinutes: durationMinutes,
		StartTime:       startTime,
		EndTime:         startTime.Add(time.Duration(durationMinutes) * time.Minute),
	}

	backoff := retry.WithMaxRetries(accesscode.MaxAttempts-1, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		session.AccessCode = accesscode.Generate()
		if err := s.sessions.Create(ctx, session); err != nil {
			if errors.Is(err, errorz.ErrDuplicateAccessCode) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errorz.ErrDuplicateAccessCode) {
			s.logger.Error("Access code space exhausted",
				zap.Int("attempts", accesscode.MaxAttempts))
			return nil, errorz.ErrCodeSpaceExhausted
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("Class session created",
		zap.String("session_id", session.ID.String()),
		zap.String("instructor_id", instructor.ID.String()),
		zap.String("subject", subjectName),
		zap.Int("duration_minutes", durationMinutes),
	)

	return session, nil
}

// ResolveByAccessCode returns the session registered under code, ended or
// not. Callers that only want a live session must check Active themselves.
func (s *SessionService) ResolveByAccessCode(ctx context.Context, code string) (*model.ClassSession, error) {
	if code == "" {
		return nil, errorz.ErrInvalidInput
	}
	return s.sessions.GetByAccessCode(ctx, code)
}

// Join resolves an access code for a student. An ended session is reported as
// ended rather than hidden, so the student sees why they cannot get in.
func (s *SessionService) Join(ctx context.Context, code string) (*model.JoinInfo, error) {
	session, err := s.ResolveByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !session.Active(time.Now()) {
		return nil, errorz.ErrSessionEnded
	}

	return &model.JoinInfo{
		ClassID:        session.ID,
		SubjectName:    session.SubjectName,
		InstructorName: session.InstructorName,
		EndTime:        session.EndTime,
	}, nil
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*model.ClassSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// ListByInstructor returns the instructor's own sessions, newest first.
func (s *SessionService) ListByInstructor(ctx context.Context, instructor model.Principal) ([]*model.ClassSession, error) {
	return s.sessions.ListByInstructor(ctx, instructor.ID)
}

// Delete removes a session and, by cascade, its questions and snapshot. Only
// the owning instructor may do this.
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID, requester model.Principal) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !session.OwnedBy(requester.ID) {
		return errorz.ErrForbidden
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Class session deleted",
		zap.String("session_id", id.String()),
		zap.String("instructor_id", requester.ID.String()),
	)

	return nil
}
