package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
)

// In-memory repository fakes. They reproduce the storage-level behavior the
// services lean on: unique-index rejections, not-found errors, and cascade
// deletion of a session's questions.

type fakeSessionRepo struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*model.ClassSession
	questions *fakeQuestionRepo // cascade target, may be nil

	// dupFirst forces the next N Creates to report an access-code collision,
	// standing in for concurrent creators drawing the same code.
	dupFirst int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*model.ClassSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *model.ClassSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dupFirst > 0 {
		f.dupFirst--
		return errorz.ErrDuplicateAccessCode
	}
	for _, s := range f.sessions {
		if s.AccessCode == session.AccessCode {
			return errorz.ErrDuplicateAccessCode
		}
	}

	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	stored := *session
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.ClassSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, ok := f.sessions[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) GetByAccessCode(_ context.Context, code string) (*model.ClassSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, session := range f.sessions {
		if session.AccessCode == code {
			copied := *session
			return &copied, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeSessionRepo) ListByInstructor(_ context.Context, instructorID uuid.UUID) ([]*model.ClassSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.ClassSession
	for _, session := range f.sessions {
		if session.InstructorID == instructorID {
			copied := *session
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	if _, ok := f.sessions[id]; !ok {
		f.mu.Unlock()
		return errorz.ErrNotFound
	}
	delete(f.sessions, id)
	f.mu.Unlock()

	if f.questions != nil {
		_, _ = f.questions.DeleteByClass(ctx, id)
	}
	return nil
}

// add stores a session as-is, for fixtures with hand-picked end times.
func (f *fakeSessionRepo) add(session *model.ClassSession) *model.ClassSession {
	f.mu.Lock()
	defer f.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.ID] = session
	return session
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[uuid.UUID]*model.Question
	seq       int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uuid.UUID]*model.Question)}
}

func (f *fakeQuestionRepo) Create(_ context.Context, question *model.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, q := range f.questions {
		if q.ClassID == question.ClassID && q.Text == question.Text {
			return errorz.ErrDuplicateQuestion
		}
	}

	question.ID = uuid.New()
	// Distinct timestamps so descending order is well defined.
	f.seq++
	question.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	stored := *question
	f.questions[question.ID] = &stored
	return nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	question, ok := f.questions[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *question
	return &copied, nil
}

func (f *fakeQuestionRepo) ListByClass(_ context.Context, classID uuid.UUID, status model.QuestionStatus) ([]*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Question
	for _, question := range f.questions {
		if question.ClassID != classID {
			continue
		}
		if status != "" && question.Status != status {
			continue
		}
		copied := *question
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeQuestionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.QuestionStatus) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	question, ok := f.questions[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	question.Status = status
	copied := *question
	return &copied, nil
}

func (f *fakeQuestionRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.questions[id]; !ok {
		return errorz.ErrNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) DeleteByClass(_ context.Context, classID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	for id, question := range f.questions {
		if question.ClassID == classID {
			delete(f.questions, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeQuestionRepo) CountByStatus(_ context.Context, classID uuid.UUID) (total, answered, pending, important int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, question := range f.questions {
		if question.ClassID != classID {
			continue
		}
		total++
		switch question.Status {
		case model.QuestionStatusAnswered:
			answered++
		case model.QuestionStatusPending:
			pending++
		case model.QuestionStatusImportant:
			important++
		}
	}
	return total, answered, pending, important, nil
}

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*model.BoardSnapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[uuid.UUID]*model.BoardSnapshot)}
}

func (f *fakeSnapshotRepo) Get(_ context.Context, classID uuid.UUID) (*model.BoardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot, ok := f.snapshots[classID]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *snapshot
	return &copied, nil
}

func (f *fakeSnapshotRepo) CreateIfAbsent(_ context.Context, snapshot *model.BoardSnapshot) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.snapshots[snapshot.ClassID]; ok {
		return false, nil
	}
	snapshot.CreatedAt = time.Now()
	stored := *snapshot
	f.snapshots[snapshot.ClassID] = &stored
	return true, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == user.Username {
			return errorz.ErrDuplicateUser
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
