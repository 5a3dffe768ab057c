package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/classboard/backend/internal/model"
)

// The storage contracts the services depend on. The pgx implementations live
// in internal/repository; tests substitute in-memory fakes.

type SessionRepository interface {
	Create(ctx context.Context, session *model.ClassSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ClassSession, error)
	GetByAccessCode(ctx context.Context, code string) (*model.ClassSession, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*model.ClassSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	ListByClass(ctx context.Context, classID uuid.UUID, status model.QuestionStatus) ([]*model.Question, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.QuestionStatus) (*model.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByClass(ctx context.Context, classID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, classID uuid.UUID) (total, answered, pending, important int, err error)
}

type SnapshotRepository interface {
	Get(ctx context.Context, classID uuid.UUID) (*model.BoardSnapshot, error)
	CreateIfAbsent(ctx context.Context, snapshot *model.BoardSnapshot) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
