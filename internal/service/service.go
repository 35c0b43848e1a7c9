package service

import (
	"context"

	"academyhub/api/internal/models"
)

// UserStore is the slice of the user repository the services consume.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

// AcademyStore is the slice of the academy repository the services consume.
type AcademyStore interface {
	CreateWithAdmin(ctx context.Context, academy models.Academy, admin models.User) error
	GetByID(ctx context.Context, id string) (models.Academy, error)
	ListByStatus(ctx context.Context, status models.AcademyStatus) ([]models.Academy, error)
	UpdateStatus(ctx context.Context, id string, status models.AcademyStatus) error
}

// Notifier delivers best-effort transactional email.
type Notifier interface {
	SendRegistrationReceived(ctx context.Context, academy models.Academy)
	SendApprovalDecision(ctx context.Context, academy models.Academy)
}

// pendingCacheKey holds the cached super-admin review queue. Registration and
// approval both write through it.
const pendingCacheKey = "academies:pending"
