package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"academyhub/api/internal/models"
)

// PendingLister is satisfied by the academy repository.
type PendingLister interface {
	ListByStatus(ctx context.Context, status models.AcademyStatus) ([]models.Academy, error)
}

// Scheduler enqueues a daily reminder event while academies sit unreviewed,
// so the notification worker can nudge the super admins.
type Scheduler struct {
	cron      *cron.Cron
	queue     *redis.Client
	academies PendingLister
	log       zerolog.Logger
}

func NewScheduler(queue *redis.Client, academies PendingLister, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		queue:     queue,
		academies: academies,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 8 * * *", s.enqueuePendingReminder); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for a running job to finish.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) enqueuePendingReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := s.academies.ListByStatus(ctx, models.AcademyStatusPending)
	if err != nil {
		s.log.Error().Err(err).Msg("list pending academies failed")
		return
	}
	if len(pending) == 0 {
		return
	}

	if _, err := s.queue.XAdd(ctx, &redis.XAddArgs{
		Stream: "academy:notify",
		Values: map[string]any{
			"type":    "pending_reminder",
			"pending": len(pending),
			"oldest":  pending[0].ID,
		},
	}).Result(); err != nil {
		s.log.Error().Err(err).Msg("enqueue pending reminder failed")
	}
}
