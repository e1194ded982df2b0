package handler

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/todo-api/internal/model"
	"github.com/iliyamo/todo-api/internal/queue"
	"github.com/iliyamo/todo-api/internal/repository"
)

// fakeUserStore is an in-memory UserStore with the same contract as
// repository.UserRepo: emails unique and matched case-sensitively on the
// stored bytes, generated UUIDs.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User // keyed by exact email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, passwordHash, salt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return "", repository.ErrEmailExists
	}
	u := model.User{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash, Salt: salt}
	s.users[email] = u
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// fakeTaskStore is an in-memory TaskStore scoped by user id exactly like
// repository.TaskRepo.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[string]model.Task // keyed by task id
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]model.Task{}}
}

func (s *fakeTaskStore) Create(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.tasks[t.ID] = *t
	return nil
}

func (s *fakeTaskStore) ListByUser(_ context.Context, userID string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.UserID == userID {
			items = append(items, t)
		}
	}
	return items, nil
}

func (s *fakeTaskStore) GetByID(_ context.Context, id, userID string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, repository.ErrTaskNotFound
	}
	return t, nil
}

func (s *fakeTaskStore) SetCompleted(_ context.Context, id, userID string, done bool) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, repository.ErrTaskNotFound
	}
	t.IsCompleted = done
	s.tasks[id] = t
	return t, nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.TaskActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.TaskActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}
