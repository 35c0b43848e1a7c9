package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/models"
	"academyhub/api/internal/repository"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"

	pendingCacheTTL = 30 * time.Second
)

type ApprovalService struct {
	academies AcademyStore
	notifier  Notifier
	cache     *redis.Client
	log       zerolog.Logger
}

func NewApprovalService(
	academies AcademyStore,
	notifier Notifier,
	cache *redis.Client,
	log zerolog.Logger,
) *ApprovalService {
	return &ApprovalService{
		academies: academies,
		notifier:  notifier,
		cache:     cache,
		log:       log,
	}
}

// ListPending returns the review queue, oldest registration first. The queue
// is cached briefly; registration and decisions write through the cache key.
func (s *ApprovalService) ListPending(ctx context.Context) ([]models.Academy, error) {
	if cached, ok := s.readPendingCache(ctx); ok {
		return cached, nil
	}

	academies, err := s.academies.ListByStatus(ctx, models.AcademyStatusPending)
	if err != nil {
		return nil, apperr.Internal("list pending academies", err)
	}

	s.writePendingCache(ctx, academies)
	return academies, nil
}

// Decide applies an approve or reject action to an academy. Repeating the
// action that produced the current terminal status is an idempotent no-op;
// the opposite action on a terminal status is a conflict.
func (s *ApprovalService) Decide(ctx context.Context, academyID string, action string) (models.Academy, error) {
	var target models.AcademyStatus
	switch action {
	case ActionApprove:
		target = models.AcademyStatusApproved
	case ActionReject:
		target = models.AcademyStatusRejected
	default:
		return models.Academy{}, apperr.Validation("action must be approve or reject")
	}

	academy, err := s.academies.GetByID(ctx, academyID)
	if err != nil {
		if errors.Is(err, repository.ErrAcademyNotFound) {
			return models.Academy{}, apperr.NotFound("academy not found")
		}
		return models.Academy{}, apperr.Internal("load academy", err)
	}

	if academy.Status.Terminal() {
		if academy.Status == target {
			return academy, nil
		}
		return models.Academy{}, apperr.Conflict("academy already " + string(academy.Status))
	}

	if err := s.academies.UpdateStatus(ctx, academyID, target); err != nil {
		if errors.Is(err, repository.ErrAcademyNotFound) {
			return models.Academy{}, apperr.NotFound("academy not found")
		}
		return models.Academy{}, apperr.Internal("update academy status", err)
	}

	academy.Status = target
	s.invalidatePendingCache(ctx)

	go s.notifier.SendApprovalDecision(context.WithoutCancel(ctx), academy)

	return academy, nil
}

func (s *ApprovalService) readPendingCache(ctx context.Context) ([]models.Academy, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, pendingCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("read pending cache failed")
		}
		return nil, false
	}

	var academies []models.Academy
	if err := json.Unmarshal(raw, &academies); err != nil {
		return nil, false
	}
	return academies, true
}

func (s *ApprovalService) writePendingCache(ctx context.Context, academies []models.Academy) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(academies)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, pendingCacheKey, raw, pendingCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("write pending cache failed")
	}
}

func (s *ApprovalService) invalidatePendingCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, pendingCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("invalidate pending cache failed")
	}
}
