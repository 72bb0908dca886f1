package entities

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// StatementLine é uma linha do extrato já com nomes resolvidos
type StatementLine struct {
	Date          time.Time
	Type          TransactionType
	Category      string
	PaymentMethod string
	Description   string
	Amount        valueobjects.Money
	Status        TransactionStatus
}

// Statement é o extrato exportado de uma carteira
type Statement struct {
	UserName    string
	WalletName  string
	GeneratedAt time.Time
	From        *time.Time
	To          *time.Time
	Lines       []StatementLine
	Totals      Totals
	Balance     valueobjects.Money
}
