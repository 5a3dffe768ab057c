package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/accesscode"
	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
)

func instructor() model.Principal {
	return model.Principal{ID: uuid.New(), Username: "prof.lovelace"}
}

func TestCreateSessionValidatesInput(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), zap.NewNop())
	ctx := context.Background()
	owner := instructor()

	_, err := svc.Create(ctx, owner, "", 60)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	_, err = svc.Create(ctx, owner, "   ", 60)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	_, err = svc.Create(ctx, owner, "Algorithms", 0)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	_, err = svc.Create(ctx, owner, "Algorithms", -5)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
}

func TestCreateSessionAssignsCodeAndTimeBox(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), zap.NewNop())
	owner := instructor()

	before := time.Now()
	session, err := svc.Create(context.Background(), owner, "Algorithms", 60)
	require.NoError(t, err)

	assert.True(t, accesscode.Valid(session.AccessCode), "code %q", session.AccessCode)
	assert.Equal(t, owner.ID, session.InstructorID)
	assert.Equal(t, owner.Username, session.InstructorName)
	assert.Equal(t, 60, session.DurationMinutes)
	assert.Equal(t, session.StartTime.Add(60*time.Minute), session.EndTime)
	assert.False(t, session.StartTime.Before(before))
	assert.True(t, session.Active(time.Now()))
}

func TestCreateSessionRetriesCodeCollisions(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.dupFirst = 3
	svc := NewSessionService(repo, zap.NewNop())

	session, err := svc.Create(context.Background(), instructor(), "Algorithms", 30)
	require.NoError(t, err)
	assert.True(t, accesscode.Valid(session.AccessCode))
}

func TestCreateSessionGivesUpAfterRetryCap(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.dupFirst = accesscode.MaxAttempts + 5
	svc := NewSessionService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), instructor(), "Algorithms", 30)
	assert.ErrorIs(t, err, errorz.ErrCodeSpaceExhausted)
}

func TestResolveByAccessCode(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, instructor(), "Compilers", 45)
	require.NoError(t, err)

	resolved, err := svc.ResolveByAccessCode(ctx, created.AccessCode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	_, err = svc.ResolveByAccessCode(ctx, "zzzzz1")
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	_, err = svc.ResolveByAccessCode(ctx, "")
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
}

func TestResolveReturnsEndedSessions(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, zap.NewNop())

	ended := repo.add(&model.ClassSession{
		SubjectName: "History",
		AccessCode:  "abc123",
		StartTime:   time.Now().Add(-2 * time.Hour),
		EndTime:     time.Now().Add(-1 * time.Hour),
	})

	// Lookup does not hide ended sessions; only Join refuses them.
	resolved, err := svc.ResolveByAccessCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, ended.ID, resolved.ID)
}

func TestJoin(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, zap.NewNop())
	ctx := context.Background()

	owner := instructor()
	live, err := svc.Create(ctx, owner, "Databases", 90)
	require.NoError(t, err)

	info, err := svc.Join(ctx, live.AccessCode)
	require.NoError(t, err)
	assert.Equal(t, live.ID, info.ClassID)
	assert.Equal(t, "Databases", info.SubjectName)
	assert.Equal(t, owner.Username, info.InstructorName)
	assert.Equal(t, live.EndTime, info.EndTime)

	repo.add(&model.ClassSession{
		SubjectName: "Databases II",
		AccessCode:  "gone42",
		StartTime:   time.Now().Add(-2 * time.Hour),
		EndTime:     time.Now().Add(-time.Minute),
	})

	_, err = svc.Join(ctx, "gone42")
	assert.ErrorIs(t, err, errorz.ErrSessionEnded)

	_, err = svc.Join(ctx, "nosuch")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestDeleteSessionOwnershipAndCascade(t *testing.T) {
	questions := newFakeQuestionRepo()
	repo := newFakeSessionRepo()
	repo.questions = questions
	svc := NewSessionService(repo, zap.NewNop())
	ctx := context.Background()

	owner := instructor()
	session, err := svc.Create(ctx, owner, "Networks", 60)
	require.NoError(t, err)

	require.NoError(t, questions.Create(ctx, &model.Question{
		ClassID: session.ID,
		Text:    "What is a subnet?",
		Author:  model.DefaultAuthor,
		Color:   model.RandomStickyColor(),
		Status:  model.QuestionStatusPending,
	}))

	err = svc.Delete(ctx, session.ID, instructor())
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, session.ID, owner))

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	remaining, err := questions.ListByClass(ctx, session.ID, "")
	require.NoError(t, err)
	assert.Empty(t, remaining, "questions must not outlive their session")

	err = svc.Delete(ctx, session.ID, owner)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
