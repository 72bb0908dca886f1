package entities

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// DefaultWalletName é o nome da carteira criada no cadastro
const DefaultWalletName = "Principal"

// Wallet agrupa as transações de um usuário.
// CachedBalance é apenas um espelho; o saldo oficial é sempre recalculado a partir das transações.
type Wallet struct {
	ID            uint
	UserID        uint
	Name          string
	Description   string
	CachedBalance valueobjects.Money
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy verifica se a carteira pertence ao usuário
func (w *Wallet) OwnedBy(userID uint) bool {
	return w.UserID == userID
}
