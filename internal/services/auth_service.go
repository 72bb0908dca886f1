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

// AuthService cuida de cadastro, login e criação de contas
type AuthService struct {
	users   repositories.UserRepository
	wallets repositories.WalletRepository
	tokens  *APITokenService
	uow     ports.UnitOfWork
	logger  ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	users repositories.UserRepository,
	wallets repositories.WalletRepository,
	tokens *APITokenService,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		wallets: wallets,
		tokens:  tokens,
		uow:     uow,
		logger:  logger.With("component", "auth"),
	}
}

// AccountInput representa os dados para criar uma conta
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     entities.Role
}

// Account é o resultado da criação: usuário, carteira Principal e token master (texto puro incluso)
type Account struct {
	User        *entities.User
	Wallet      *entities.Wallet
	MasterToken *entities.APIToken
}

// Register cria uma conta normal
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Account, error) {
	return s.CreateAccount(ctx, AccountInput{Name: name, Email: email, Password: password, Role: entities.RoleNormal})
}

// CreateAccount cria usuário, carteira e token master numa única transação
func (s *AuthService) CreateAccount(ctx context.Context, input AccountInput) (*Account, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}
	if input.Role == "" {
		input.Role = entities.RoleNormal
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := user.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	account := &Account{User: user}
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.users.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}

		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}

		wallet := &entities.Wallet{
			UserID:        user.ID,
			Name:          entities.DefaultWalletName,
			CachedBalance: valueobjects.ZeroMoney(),
		}
		if err := s.wallets.Create(txCtx, wallet); err != nil {
			return err
		}
		account.Wallet = wallet

		token, err := s.tokens.CreateMaster(txCtx, user.ID)
		if err != nil {
			return err
		}
		account.MasterToken = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user_id", user.ID, "role", string(user.Role))
	return account, nil
}

// Login valida email e senha; usuários inativos são recusados
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user.PasswordHash, password) {
		return nil, errors.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, errors.ErrUserInactive
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// EnsureSuperAdmin garante que o super admin configurado exista e esteja ativo.
// Pode ser chamado a cada inicialização.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, name, email, password string) (*entities.User, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	existing, err := s.users.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		account, err := s.CreateAccount(ctx, AccountInput{
			Name:     name,
			Email:    normalized.String(),
			Password: password,
			Role:     entities.RoleSuperAdmin,
		})
		if err != nil {
			return nil, err
		}
		return account.User, nil
	}

	if existing.Role == entities.RoleSuperAdmin && existing.Active {
		return existing, nil
	}

	existing.Role = entities.RoleSuperAdmin
	existing.Active = true
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.logger.Warn("existing user promoted to super admin", "user_id", existing.ID)
	return existing, nil
}
