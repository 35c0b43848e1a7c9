package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/ids"
	"academyhub/api/internal/models"
	"academyhub/api/internal/repository"
	"academyhub/api/internal/security"
)

type RegistrationService struct {
	users     UserStore
	academies AcademyStore
	notifier  Notifier
	cache     *redis.Client
	log       zerolog.Logger
}

func NewRegistrationService(
	users UserStore,
	academies AcademyStore,
	notifier Notifier,
	cache *redis.Client,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:     users,
		academies: academies,
		notifier:  notifier,
		cache:     cache,
		log:       log,
	}
}

type RegisterAcademyInput struct {
	Name               string
	Location           string
	Description        string
	ContactEmail       string
	ContactPhone       string
	ContactName        string
	ContactPersonPhone string
	AdminPassword      string
}

// Register creates the academy in pending status together with its first
// admin user. The two inserts share one transaction: no academy exists
// without its admin, and no orphan admin survives a failed registration.
func (s *RegistrationService) Register(ctx context.Context, input RegisterAcademyInput) (models.Academy, models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	input.ContactName = strings.TrimSpace(input.ContactName)
	input.ContactEmail = strings.TrimSpace(strings.ToLower(input.ContactEmail))

	if input.Name == "" {
		return models.Academy{}, models.User{}, apperr.Validation("academy name is required")
	}
	if input.Location == "" {
		return models.Academy{}, models.User{}, apperr.Validation("academy location is required")
	}
	if input.ContactName == "" {
		return models.Academy{}, models.User{}, apperr.Validation("contact person name is required")
	}
	if _, err := mail.ParseAddress(input.ContactEmail); err != nil {
		return models.Academy{}, models.User{}, apperr.Validation("contact email is malformed")
	}
	if len(input.AdminPassword) < 8 {
		return models.Academy{}, models.User{}, apperr.Validation("admin password must be at least 8 characters")
	}

	if _, err := s.users.FindByEmail(ctx, input.ContactEmail); err == nil {
		return models.Academy{}, models.User{}, apperr.Conflict("email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.Academy{}, models.User{}, apperr.Internal("lookup email", err)
	}

	passwordHash, err := security.HashPassword(input.AdminPassword)
	if err != nil {
		return models.Academy{}, models.User{}, apperr.Internal("hash password", err)
	}

	academy := models.Academy{
		ID:                 ids.New(),
		Name:               input.Name,
		Location:           input.Location,
		Description:        input.Description,
		ContactEmail:       input.ContactEmail,
		ContactPhone:       input.ContactPhone,
		ContactName:        input.ContactName,
		ContactPersonPhone: input.ContactPersonPhone,
		Status:             models.AcademyStatusPending,
	}

	admin := models.User{
		ID:            ids.New(),
		Email:         input.ContactEmail,
		PasswordHash:  passwordHash,
		FullName:      input.ContactName,
		Role:          models.RoleAdmin,
		Phone:         input.ContactPhone,
		AcademyID:     &academy.ID,
		EmailVerified: false,
	}

	if err := s.academies.CreateWithAdmin(ctx, academy, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.Academy{}, models.User{}, apperr.Conflict("email already registered")
		}
		return models.Academy{}, models.User{}, apperr.Internal("create academy", err)
	}

	s.invalidatePendingCache(ctx)

	// Receipt mail is fire-and-forget; the registration is already durable.
	go s.notifier.SendRegistrationReceived(context.WithoutCancel(ctx), academy)

	return academy, admin, nil
}

func (s *RegistrationService) invalidatePendingCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, pendingCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("invalidate pending cache failed")
	}
}
