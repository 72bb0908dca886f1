package services

import (
	"context"
	"strings"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio do próprio usuário (perfil, senha, assinatura)
type UserService struct {
	userRepo      repositories.UserRepository
	cancellations repositories.CancellationRepository
	uow           ports.UnitOfWork
	clock         ports.Clock
	logger        ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	cancellations repositories.CancellationRepository,
	uow ports.UnitOfWork,
	clock ports.Clock,
	logger ports.Logger,
) *UserService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &UserService{
		userRepo:      userRepo,
		cancellations: cancellations,
		uow:           uow,
		clock:         clock,
		logger:        logger.With("component", "users"),
	}
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfileInput representa os campos alteráveis do perfil; nil mantém o valor atual
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// UpdateProfile altera nome e email; o novo email não pode pertencer a outro usuário
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*entities.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}

	if input.Email != nil {
		email, err := valueobjects.NewEmail(*input.Email)
		if err != nil {
			return nil, errors.ErrInvalidEmail
		}
		if !email.Equal(user.Email) {
			existing, err := s.userRepo.FindByEmail(ctx, email.String())
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, errors.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if err := user.Validate(); err != nil {
		return nil, errors.ErrValidation
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword troca a senha após conferir a atual
func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !checkPassword(user.PasswordHash, current) {
		return errors.ErrWrongPassword
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", id)
	return nil
}

// CancelSubscription registra o pedido de cancelamento no histórico e marca o usuário
func (s *UserService) CancelSubscription(ctx context.Context, id uint, reason string) (*entities.Cancellation, error) {
	now := s.clock()
	cancellation := &entities.Cancellation{
		UserID:      id,
		Reason:      strings.TrimSpace(reason),
		RequestedAt: now,
	}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}

		if err := s.cancellations.Create(txCtx, cancellation); err != nil {
			return err
		}

		user.CancellationRequested = true
		user.CancellationRequestedAt = &now
		return s.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription cancellation requested", "user_id", id)
	return cancellation, nil
}

// ListCancellations retorna o histórico de cancelamentos, do mais recente ao mais antigo
func (s *UserService) ListCancellations(ctx context.Context, id uint) ([]*entities.Cancellation, error) {
	return s.cancellations.ListByUser(ctx, id)
}
