package repositories

import (
	"context"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// APITokenRepository define a persistência de tokens de API
type APITokenRepository interface {
	Create(ctx context.Context, token *entities.APIToken) error
	FindByID(ctx context.Context, id uint) (*entities.APIToken, error)
	FindByHash(ctx context.Context, hash string) (*entities.APIToken, error)
	FindMaster(ctx context.Context, userID uint) (*entities.APIToken, error)
	ListByUser(ctx context.Context, userID uint) ([]*entities.APIToken, error)
	UpdateHash(ctx context.Context, id uint, hash, prefix string) error
	TouchLastUsed(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

// ReminderRepository define a persistência de lembretes
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.Reminder) error
	FindByID(ctx context.Context, id uint) (*entities.Reminder, error)
	Update(ctx context.Context, reminder *entities.Reminder) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]*entities.Reminder, error)
}

// CancellationRepository guarda o histórico de cancelamentos de assinatura
type CancellationRepository interface {
	Create(ctx context.Context, c *entities.Cancellation) error
	ListByUser(ctx context.Context, userID uint) ([]*entities.Cancellation, error)
}
