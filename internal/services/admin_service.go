package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// AdminService reúne as operações administrativas sobre usuários e notificações
type AdminService struct {
	users         repositories.UserRepository
	auth          *AuthService
	audit         *AuditService
	impersonation *ImpersonationService
	uow           ports.UnitOfWork
	notifier      ports.Notifier
	logger        ports.Logger
}

// NewAdminService cria um novo AdminService
func NewAdminService(
	users repositories.UserRepository,
	auth *AuthService,
	audit *AuditService,
	impersonation *ImpersonationService,
	uow ports.UnitOfWork,
	notifier ports.Notifier,
	logger ports.Logger,
) *AdminService {
	return &AdminService{
		users:         users,
		auth:          auth,
		audit:         audit,
		impersonation: impersonation,
		uow:           uow,
		notifier:      notifier,
		logger:        logger.With("component", "admin"),
	}
}

// ListUsers lista usuários com filtros
func (s *AdminService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.users.List(ctx, filters)
}

func (s *AdminService) find(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// canManage: apenas super admins gerenciam outros super admins, e ninguém gerencia a si mesmo por aqui
func canManage(actor, target *entities.User) bool {
	if actor.ID == target.ID {
		return false
	}
	if target.IsSuperAdmin() && !actor.IsSuperAdmin() {
		return false
	}
	return actor.HasPermission(entities.PermissionUsersManage)
}

// CreateUserInput representa os dados de um usuário criado pelo admin
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUser cria a conta completa (carteira e token master) com o papel escolhido
func (s *AdminService) CreateUser(ctx context.Context, actor *entities.User, input CreateUserInput) (*Account, error) {
	role := entities.RoleNormal
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := entities.ParseRole(input.Role)
		if !ok {
			return nil, errors.ErrInvalidRole
		}
		role = parsed
	}
	if role == entities.RoleSuperAdmin && !actor.IsSuperAdmin() {
		return nil, errors.ErrForbidden
	}

	var account *Account
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		account, err = s.auth.CreateAccount(txCtx, AccountInput{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Role:     role,
		})
		if err != nil {
			return err
		}
		return s.audit.Record(txCtx, actor.ID, entities.AuditUserCreate, &account.User.ID, "role="+string(role))
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// SetActive ativa ou desativa um usuário. Desativar encerra, na mesma transação,
// as personificações abertas sobre ele.
func (s *AdminService) SetActive(ctx context.Context, actor *entities.User, userID uint, active bool) (*entities.User, error) {
	var user *entities.User
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.users.FindByIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}
		if !canManage(actor, user) {
			return errors.ErrForbidden
		}

		user.Active = active
		if err := s.users.Update(txCtx, user); err != nil {
			return err
		}
		if !active {
			_, err = s.impersonation.CloseForTarget(txCtx, user.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, actor.ID, entities.AuditUserStatus, &user.ID, "ativo="+strconv.FormatBool(active))
	s.logger.Info("user status changed", "actor_id", actor.ID, "user_id", userID, "active", active)
	return user, nil
}

// SetExpiration define (ou remove, com nil) a data de expiração da assinatura
func (s *AdminService) SetExpiration(ctx context.Context, actor *entities.User, userID uint, expiresAt *time.Time) (*entities.User, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, user) {
		return nil, errors.ErrForbidden
	}

	user.ExpiresAt = expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	details := "data_expiracao=null"
	if expiresAt != nil {
		details = "data_expiracao=" + expiresAt.UTC().Format(time.RFC3339)
	}
	s.audit.RecordBestEffort(ctx, actor.ID, entities.AuditUserSubscription, &user.ID, details)
	return user, nil
}

// DeleteUser remove o usuário e todos os dados dele numa transação
func (s *AdminService) DeleteUser(ctx context.Context, actor *entities.User, userID uint) error {
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.users.FindByIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}
		if !canManage(actor, user) {
			return errors.ErrForbidden
		}

		if err := s.users.Delete(txCtx, userID); err != nil {
			return err
		}
		return s.audit.Record(txCtx, actor.ID, entities.AuditUserDelete, nil,
			fmt.Sprintf("user=%d email=%s", user.ID, user.Email.String()))
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "actor_id", actor.ID, "user_id", userID)
	return nil
}

// NotificationInput representa uma mensagem administrativa; sem destinatários vai para todos os conectados
type NotificationInput struct {
	Title   string
	Message string
	UserIDs []uint
}

// SendNotification entrega a mensagem aos conectados e retorna se alguém a recebeu
func (s *AdminService) SendNotification(ctx context.Context, actor *entities.User, input NotificationInput) bool {
	ids := make([]string, 0, len(input.UserIDs))
	for _, id := range input.UserIDs {
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}

	event := ports.NewEvent(ports.EventAdminMessage, map[string]interface{}{
		"titulo":   input.Title,
		"mensagem": input.Message,
		"de":       actor.Name,
	})
	delivered := s.notifier.Notify(ctx, event, ids...)

	s.audit.RecordBestEffort(ctx, actor.ID, entities.AuditNotificationSend, nil,
		fmt.Sprintf("destinatarios=%d entregue=%t", len(ids), delivered))
	return delivered
}
