package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/config"
	"academyhub/api/internal/models"
	"academyhub/api/internal/repository"
	"academyhub/api/internal/security"
)

type AuthService struct {
	users     UserStore
	academies AcademyStore
	cfg       *config.AppConfig
	log       zerolog.Logger
}

func NewAuthService(
	users UserStore,
	academies AcademyStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		academies: academies,
		cfg:       cfg,
		log:       log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

// Login validates credentials and mints a session token. Unknown email and
// wrong password produce the same generic failure so the endpoint leaks no
// enumeration signal. Credentials are checked before the academy gate: a bad
// password is 401 no matter what state the academy is in.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", models.User{}, apperr.Unauthorized("invalid credentials")
		}
		return "", models.User{}, apperr.Internal("lookup user", err)
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return "", models.User{}, apperr.Unauthorized("invalid credentials")
	}

	if err := s.checkAccess(ctx, user); err != nil {
		return "", models.User{}, err
	}

	academyID := ""
	if user.AcademyID != nil {
		academyID = *user.AcademyID
	}

	token, err := security.GenerateAccessToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		string(user.Role),
		academyID,
		s.cfg.Security.JWTTTL,
	)
	if err != nil {
		return "", models.User{}, apperr.Internal("issue token", err)
	}

	return token, user, nil
}

// Verify parses a bearer token and re-reads the user live from the store, so
// role or academy-status changes since issuance are observed.
func (s *AuthService) Verify(ctx context.Context, tokenStr string) (models.User, error) {
	claims, err := security.ParseAccessToken(tokenStr, s.cfg.Security.JWTSecret)
	if err != nil {
		return models.User{}, apperr.Unauthorized("invalid token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, apperr.Unauthorized("invalid token")
		}
		return models.User{}, apperr.Internal("lookup user", err)
	}

	if err := s.checkAccess(ctx, user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// checkAccess is the single activation rule: an unknown role is denied, and
// every academy-bound role may only act while its academy is approved.
// System accounts carry no academy and pass unconditionally.
func (s *AuthService) checkAccess(ctx context.Context, user models.User) error {
	if !user.Role.Valid() {
		return apperr.Forbidden("access denied")
	}

	if user.AcademyID == nil {
		return nil
	}

	academy, err := s.academies.GetByID(ctx, *user.AcademyID)
	if err != nil {
		if errors.Is(err, repository.ErrAcademyNotFound) {
			return apperr.Forbidden("access denied")
		}
		return apperr.Internal("load academy", err)
	}

	switch academy.Status {
	case models.AcademyStatusApproved:
		return nil
	case models.AcademyStatusRejected:
		return apperr.Forbidden("academy rejected")
	default:
		return apperr.Forbidden("academy not approved")
	}
}
