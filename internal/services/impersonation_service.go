package services

import (
	"context"
	"fmt"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// ImpersonationService controla as sessões em que um super admin atua como outro usuário
type ImpersonationService struct {
	users    repositories.UserRepository
	sessions repositories.ImpersonationRepository
	audit    *AuditService
	uow      ports.UnitOfWork
	clock    ports.Clock
	logger   ports.Logger
}

// NewImpersonationService cria um novo ImpersonationService
func NewImpersonationService(
	users repositories.UserRepository,
	sessions repositories.ImpersonationRepository,
	audit *AuditService,
	uow ports.UnitOfWork,
	clock ports.Clock,
	logger ports.Logger,
) *ImpersonationService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &ImpersonationService{
		users:    users,
		sessions: sessions,
		audit:    audit,
		uow:      uow,
		clock:    clock,
		logger:   logger.With("component", "impersonation"),
	}
}

// CloseForTarget encerra as sessões abertas sobre o alvo, usando a transação do ctx quando houver
func (s *ImpersonationService) CloseForTarget(ctx context.Context, targetID uint) (int64, error) {
	closed, err := s.sessions.CloseOpenForTarget(ctx, targetID, s.clock())
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		s.logger.Info("impersonation sessions closed", "target_user_id", targetID, "closed", closed)
	}
	return closed, nil
}

// Start abre uma sessão para o alvo. Numa única transação: trava a linha do alvo,
// encerra as sessões abertas dele e grava a nova.
func (s *ImpersonationService) Start(ctx context.Context, actor *entities.User, targetID uint) (*entities.ImpersonationSession, *entities.User, error) {
	if actor == nil || !actor.HasPermission(entities.PermissionImpersonate) {
		return nil, nil, errors.ErrForbidden
	}
	if actor.ID == targetID {
		return nil, nil, errors.ErrImpersonationSelf
	}

	var (
		session *entities.ImpersonationSession
		target  *entities.User
	)
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		target, err = s.users.FindByIDForUpdate(txCtx, targetID)
		if err != nil {
			return err
		}
		if target == nil || !target.Active || target.IsSuperAdmin() {
			return errors.ErrImpersonationTarget
		}

		now := s.clock()
		closed, err := s.sessions.CloseOpenForTarget(txCtx, targetID, now)
		if err != nil {
			return err
		}
		if closed > 0 {
			s.logger.Warn("closed previous impersonation sessions", "target_user_id", targetID, "closed", closed)
		}

		session = &entities.ImpersonationSession{
			AdminID:      actor.ID,
			TargetUserID: targetID,
			StartedAt:    now,
		}
		if err := s.sessions.Create(txCtx, session); err != nil {
			return err
		}

		return s.audit.Record(txCtx, actor.ID, entities.AuditImpersonationStart, &targetID,
			fmt.Sprintf("session=%d", session.ID))
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("impersonation started", "admin_id", actor.ID, "target_user_id", targetID, "session_id", session.ID)
	return session, target, nil
}

// Stop encerra a sessão; só o super admin que a abriu pode encerrá-la
func (s *ImpersonationService) Stop(ctx context.Context, actor *entities.User, sessionID uint) error {
	if actor == nil || !actor.HasPermission(entities.PermissionImpersonate) {
		return errors.ErrForbidden
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		session, err := s.sessions.FindByID(txCtx, sessionID)
		if err != nil {
			return err
		}
		if session == nil || !session.IsOpen() {
			return errors.ErrImpersonationNotActive
		}
		if session.AdminID != actor.ID {
			return errors.ErrForbidden
		}

		if err := s.sessions.Close(txCtx, sessionID, s.clock()); err != nil {
			return err
		}
		target := session.TargetUserID
		if err := s.audit.Record(txCtx, actor.ID, entities.AuditImpersonationStop, &target,
			fmt.Sprintf("session=%d", sessionID)); err != nil {
			return err
		}

		s.logger.Info("impersonation stopped", "admin_id", actor.ID, "session_id", sessionID)
		return nil
	})
}

// Terminate encerra a sessão sem checar o ator; usado quando o usuário personificado some ou é desativado
func (s *ImpersonationService) Terminate(ctx context.Context, sessionID uint) {
	if sessionID == 0 {
		return
	}
	if err := s.sessions.Close(ctx, sessionID, s.clock()); err != nil {
		s.logger.Error("failed to terminate impersonation session", "session_id", sessionID, "error", err)
		return
	}
	s.logger.Warn("impersonation session terminated", "session_id", sessionID)
}

// IsOpen indica se a sessão de personificação ainda está aberta
func (s *ImpersonationService) IsOpen(ctx context.Context, sessionID uint) (bool, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return session != nil && session.IsOpen(), nil
}

// History lista as sessões, mais recentes primeiro
func (s *ImpersonationService) History(ctx context.Context, page, pageSize int) ([]*entities.ImpersonationSession, error) {
	return s.sessions.List(ctx, page, pageSize)
}
