package services

import (
	"context"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// AuditService registra e consulta as ações administrativas
type AuditService struct {
	audit  repositories.AuditRepository
	logger ports.Logger
}

// NewAuditService cria um novo AuditService
func NewAuditService(audit repositories.AuditRepository, logger ports.Logger) *AuditService {
	return &AuditService{
		audit:  audit,
		logger: logger.With("component", "audit"),
	}
}

// Record grava uma entrada. Dentro de uma transação o erro deve abortar a operação.
func (s *AuditService) Record(ctx context.Context, actorID uint, action string, targetUserID *uint, details string) error {
	entry := &entities.AuditEntry{
		ActorID:      actorID,
		Action:       action,
		TargetUserID: targetUserID,
		Details:      details,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		return err
	}
	s.logger.Debug("audit entry recorded", "actor_id", actorID, "action", action)
	return nil
}

// RecordBestEffort grava a entrada e apenas registra no log se falhar
func (s *AuditService) RecordBestEffort(ctx context.Context, actorID uint, action string, targetUserID *uint, details string) {
	if err := s.Record(ctx, actorID, action, targetUserID, details); err != nil {
		s.logger.Error("failed to record audit entry", "actor_id", actorID, "action", action, "error", err)
	}
}

func (s *AuditService) List(ctx context.Context, filters repositories.AuditFilters) ([]*entities.AuditEntry, error) {
	return s.audit.List(ctx, filters)
}
