package repositories

import (
	"context"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// WalletRepository define a persistência de carteiras
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	FindByID(ctx context.Context, id uint) (*entities.Wallet, error)
	FindByUserID(ctx context.Context, userID uint) (*entities.Wallet, error)
	Update(ctx context.Context, wallet *entities.Wallet) error
	UpdateCachedBalance(ctx context.Context, id uint, balance valueobjects.Money) error
}
