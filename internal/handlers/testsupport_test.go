package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"academyhub/api/internal/config"
	"academyhub/api/internal/models"
	"academyhub/api/internal/repository"
	"academyhub/api/internal/security"
	"academyhub/api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "handlers-test-secret"

// memoryStore holds the fixture state behind the user and academy views.
type memoryStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	academies map[string]models.Academy
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     make(map[string]models.User),
		academies: make(map[string]models.Academy),
	}
}

type userView struct{ s *memoryStore }

func (v userView) Create(_ context.Context, user models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, existing := range v.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	v.s.users[user.ID] = user
	return nil
}

func (v userView) FindByEmail(_ context.Context, email string) (models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, user := range v.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (v userView) GetByID(_ context.Context, id string) (models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	user, ok := v.s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (v userView) ListByAcademy(_ context.Context, academyID string, role models.Role, limit, offset int) ([]models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.User
	for _, user := range v.s.users {
		if user.AcademyID == nil || *user.AcademyID != academyID {
			continue
		}
		if role != "" && user.Role != role {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v userView) CountByAcademyRole(_ context.Context, academyID string) (map[models.Role]int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	counts := make(map[models.Role]int)
	for _, user := range v.s.users {
		if user.AcademyID != nil && *user.AcademyID == academyID {
			counts[user.Role]++
		}
	}
	return counts, nil
}

type academyView struct{ s *memoryStore }

func (v academyView) CreateWithAdmin(_ context.Context, academy models.Academy, admin models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, existing := range v.s.users {
		if existing.Email == admin.Email {
			return repository.ErrDuplicateEmail
		}
	}
	academy.CreatedAt = time.Now()
	v.s.academies[academy.ID] = academy
	v.s.users[admin.ID] = admin
	return nil
}

func (v academyView) GetByID(_ context.Context, id string) (models.Academy, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	academy, ok := v.s.academies[id]
	if !ok {
		return models.Academy{}, repository.ErrAcademyNotFound
	}
	return academy, nil
}

func (v academyView) ListByStatus(_ context.Context, status models.AcademyStatus) ([]models.Academy, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Academy
	for _, academy := range v.s.academies {
		if academy.Status == status {
			out = append(out, academy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (v academyView) UpdateStatus(_ context.Context, id string, status models.AcademyStatus) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	academy, ok := v.s.academies[id]
	if !ok {
		return repository.ErrAcademyNotFound
	}
	academy.Status = status
	v.s.academies[id] = academy
	return nil
}

func (v academyView) CountByStatus(_ context.Context) (map[models.AcademyStatus]int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	counts := make(map[models.AcademyStatus]int)
	for _, academy := range v.s.academies {
		counts[academy.Status]++
	}
	return counts, nil
}

func (v academyView) UpdateLogoURL(_ context.Context, id string, logoURL string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	academy, ok := v.s.academies[id]
	if !ok {
		return repository.ErrAcademyNotFound
	}
	academy.LogoURL = &logoURL
	v.s.academies[id] = academy
	return nil
}

type nopNotifier struct{}

func (nopNotifier) SendRegistrationReceived(context.Context, models.Academy) {}
func (nopNotifier) SendApprovalDecision(context.Context, models.Academy)     {}

type memoryLogos struct{}

func (memoryLogos) PutLogo(_ context.Context, academyID string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "https://cdn.test/academies/" + academyID + "/logo.png", nil
}

func newTestServer(t *testing.T) (*gin.Engine, *memoryStore) {
	t.Helper()

	cfg := &config.AppConfig{Environment: "test"}
	cfg.Security.JWTSecret = testJWTSecret
	cfg.Security.JWTTTL = time.Hour
	cfg.Security.LoginRateRPS = 1000
	cfg.Security.LoginRateBurst = 1000

	store := newMemoryStore()
	users := userView{store}
	academies := academyView{store}
	logger := zerolog.Nop()

	h := HandlerSet{
		log:          logger,
		cfg:          cfg,
		registration: service.NewRegistrationService(users, academies, nopNotifier{}, nil, logger),
		approvals:    service.NewApprovalService(academies, nopNotifier{}, nil, logger),
		auth:         service.NewAuthService(users, academies, cfg, logger),
		users:        users,
		academies:    academies,
		logos:        memoryLogos{},
	}

	engine := gin.New()
	h.Register(engine.Group("/api"))
	return engine, store
}

var userSeq int

func seedUser(t *testing.T, store *memoryStore, email, password string, role models.Role, academyID *string) models.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	userSeq++
	user := models.User{
		ID:            fmt.Sprintf("user-%d", userSeq),
		Email:         email,
		PasswordHash:  hash,
		FullName:      "Seeded User",
		Role:          role,
		AcademyID:     academyID,
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	store.mu.Lock()
	store.users[user.ID] = user
	store.mu.Unlock()
	return user
}

func seedAcademy(t *testing.T, store *memoryStore, id string, status models.AcademyStatus) models.Academy {
	t.Helper()
	academy := models.Academy{
		ID:           id,
		Name:         "Academy " + id,
		Location:     "Town",
		ContactEmail: id + "@example.test",
		ContactName:  "Contact",
		Status:       status,
		CreatedAt:    time.Now(),
	}
	store.mu.Lock()
	store.academies[id] = academy
	store.mu.Unlock()
	return academy
}
