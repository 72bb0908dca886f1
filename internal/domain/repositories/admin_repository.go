package repositories

import (
	"context"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// ImpersonationRepository define a persistência das sessões de personificação
type ImpersonationRepository interface {
	Create(ctx context.Context, session *entities.ImpersonationSession) error
	FindByID(ctx context.Context, id uint) (*entities.ImpersonationSession, error)
	// CloseOpenForTarget encerra todas as sessões abertas do alvo e retorna quantas foram fechadas
	CloseOpenForTarget(ctx context.Context, targetUserID uint, at time.Time) (int64, error)
	Close(ctx context.Context, id uint, at time.Time) error
	CountOpenForTarget(ctx context.Context, targetUserID uint) (int64, error)
	List(ctx context.Context, page, pageSize int) ([]*entities.ImpersonationSession, error)
}

// AuditRepository define a persistência do log de auditoria
type AuditRepository interface {
	Create(ctx context.Context, entry *entities.AuditEntry) error
	List(ctx context.Context, filters AuditFilters) ([]*entities.AuditEntry, error)
}

// AuditFilters contém filtros para listagem da auditoria
type AuditFilters struct {
	ActorID  *uint
	Action   string
	Page     int
	PageSize int
}

// ThemeRepository define a persistência de temas
type ThemeRepository interface {
	Create(ctx context.Context, theme *entities.Theme) error
	FindByID(ctx context.Context, id uint) (*entities.Theme, error)
	FindActive(ctx context.Context) (*entities.Theme, error)
	Update(ctx context.Context, theme *entities.Theme) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*entities.Theme, error)
	DeactivateAll(ctx context.Context) error
}
