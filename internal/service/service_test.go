package service

import (
	"context"
	"sort"
	"sync"

	"academyhub/api/internal/models"
	"academyhub/api/internal/repository"
)

// fakeStore backs both store interfaces with maps so the services can be
// exercised without postgres.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	academies map[string]models.Academy

	failCreateWithAdmin bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]models.User),
		academies: make(map[string]models.Academy),
	}
}

func (f *fakeStore) Create(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeStore) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) CreateWithAdmin(_ context.Context, academy models.Academy, admin models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateWithAdmin {
		return errAssert
	}
	for _, existing := range f.users {
		if existing.Email == admin.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.academies[academy.ID] = academy
	f.users[admin.ID] = admin
	return nil
}

func (f *fakeStore) academyByID(id string) (models.Academy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	academy, ok := f.academies[id]
	if !ok {
		return models.Academy{}, repository.ErrAcademyNotFound
	}
	return academy, nil
}

func (f *fakeStore) ListByStatus(_ context.Context, status models.AcademyStatus) ([]models.Academy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Academy
	for _, academy := range f.academies {
		if academy.Status == status {
			out = append(out, academy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status models.AcademyStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	academy, ok := f.academies[id]
	if !ok {
		return repository.ErrAcademyNotFound
	}
	academy.Status = status
	f.academies[id] = academy
	return nil
}

// academyStoreView adapts fakeStore to AcademyStore (GetByID name clash with
// the user-side method is avoided by this thin wrapper).
type academyStoreView struct{ *fakeStore }

func (v academyStoreView) GetByID(ctx context.Context, id string) (models.Academy, error) {
	return v.fakeStore.academyByID(id)
}

type fakeNotifier struct {
	mu        sync.Mutex
	received  []string
	decisions []string
}

func (n *fakeNotifier) SendRegistrationReceived(_ context.Context, academy models.Academy) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, academy.ID)
}

func (n *fakeNotifier) SendApprovalDecision(_ context.Context, academy models.Academy) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decisions = append(n.decisions, academy.ID+":"+string(academy.Status))
}

type assertError struct{}

func (assertError) Error() string { return "store blew up" }

var errAssert = assertError{}
