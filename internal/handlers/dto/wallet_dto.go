package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// UpdateWalletRequest representa a edição da carteira
type UpdateWalletRequest struct {
	Nome      *string `json:"nome" binding:"omitempty,min=1,max=100"`
	Descricao *string `json:"descricao" binding:"omitempty,max=255"`
}

// WalletResponse traz o saldo recalculado, nunca o valor em cache
type WalletResponse struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	Saldo     string    `json:"saldo"`
	CreatedAt time.Time `json:"created_at"`
}

func ToWalletResponse(wallet *entities.Wallet, balance valueobjects.Money) WalletResponse {
	return WalletResponse{
		ID:        wallet.ID,
		Nome:      wallet.Name,
		Descricao: wallet.Description,
		Saldo:     balance.String(),
		CreatedAt: wallet.CreatedAt,
	}
}

// BalanceResponse é o saldo com duas casas decimais, ex.: {"saldo":"-50.00"}
type BalanceResponse struct {
	Saldo string `json:"saldo"`
}
