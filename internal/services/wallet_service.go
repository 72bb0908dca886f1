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

// WalletService expõe a carteira do usuário com o saldo recalculado
type WalletService struct {
	wallets repositories.WalletRepository
	ledger  *LedgerService
	logger  ports.Logger
}

// NewWalletService cria um novo WalletService
func NewWalletService(wallets repositories.WalletRepository, ledger *LedgerService, logger ports.Logger) *WalletService {
	return &WalletService{
		wallets: wallets,
		ledger:  ledger,
		logger:  logger.With("component", "wallets"),
	}
}

// WalletSummary é a carteira com o saldo calculado a partir das transações
type WalletSummary struct {
	Wallet  *entities.Wallet
	Balance valueobjects.Money
}

// ForUser retorna a carteira do usuário
func (s *WalletService) ForUser(ctx context.Context, userID uint) (*entities.Wallet, error) {
	wallet, err := s.wallets.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, errors.ErrWalletNotFound
	}
	return wallet, nil
}

// Owned resolve a carteira de uma operação: 0 significa a carteira do próprio usuário,
// qualquer outra precisa pertencer a ele
func (s *WalletService) Owned(ctx context.Context, userID, walletID uint) (*entities.Wallet, error) {
	if walletID == 0 {
		return s.ForUser(ctx, userID)
	}
	wallet, err := s.wallets.FindByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, errors.ErrWalletNotFound
	}
	if !wallet.OwnedBy(userID) {
		return nil, errors.ErrForbidden
	}
	return wallet, nil
}

// Summary retorna a carteira e o saldo (zero se a agregação falhar)
func (s *WalletService) Summary(ctx context.Context, userID uint) (*WalletSummary, error) {
	wallet, err := s.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &WalletSummary{Wallet: wallet, Balance: s.ledger.Balance(ctx, wallet.ID)}, nil
}

// Balance retorna apenas o saldo da carteira do usuário
func (s *WalletService) Balance(ctx context.Context, userID uint) (valueobjects.Money, error) {
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return valueobjects.ZeroMoney(), err
	}
	return summary.Balance, nil
}

// UpdateWalletInput representa os campos alteráveis; nil mantém o valor atual
type UpdateWalletInput struct {
	Name        *string
	Description *string
}

func (s *WalletService) Update(ctx context.Context, userID uint, input UpdateWalletInput) (*WalletSummary, error) {
	wallet, err := s.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.ErrValidation
		}
		wallet.Name = name
	}
	if input.Description != nil {
		wallet.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.wallets.Update(ctx, wallet); err != nil {
		return nil, err
	}
	return &WalletSummary{Wallet: wallet, Balance: s.ledger.Balance(ctx, wallet.ID)}, nil
}

// RefreshCachedBalance atualiza saldo_atual; falhas só são registradas no log
func (s *WalletService) RefreshCachedBalance(ctx context.Context, walletID uint) {
	balance, err := s.ledger.ExactBalance(ctx, walletID)
	if err != nil {
		s.logger.Warn("skipping cached balance refresh", "wallet_id", walletID, "error", err)
		return
	}
	if err := s.wallets.UpdateCachedBalance(ctx, walletID, balance); err != nil {
		s.logger.Warn("failed to refresh cached balance", "wallet_id", walletID, "error", err)
	}
}
