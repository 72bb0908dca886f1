package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionDate   = errors.New("invalid transaction date")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
)

// TransactionType é o sentido da transação: receita soma, despesa subtrai
type TransactionType string

const (
	TransactionIncome  TransactionType = "Receita"
	TransactionExpense TransactionType = "Despesa"
)

// transactionTypeAliases é o conjunto fechado de grafias aceitas na entrada
var transactionTypeAliases = map[string]TransactionType{
	"receita": TransactionIncome,
	"entrada": TransactionIncome,
	"income":  TransactionIncome,
	"despesa": TransactionExpense,
	"saida":   TransactionExpense,
	"saída":   TransactionExpense,
	"gasto":   TransactionExpense,
	"expense": TransactionExpense,
}

// ParseTransactionType normaliza o tipo informado; qualquer valor fora da tabela é rejeitado
func ParseTransactionType(value string) (TransactionType, error) {
	if t, ok := transactionTypeAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return t, nil
	}
	return "", ErrInvalidTransactionType
}

// TransactionStatus é informativo; não há regras de transição
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Efetivada"
	StatusPending   TransactionStatus = "Pendente"
	StatusScheduled TransactionStatus = "Agendada"
	StatusCanceled  TransactionStatus = "Cancelada"
)

// ParseTransactionStatus aceita os quatro status conhecidos; vazio vira Efetivada
func ParseTransactionStatus(value string) (TransactionStatus, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return StatusCompleted, nil
	}
	for _, s := range []TransactionStatus{StatusCompleted, StatusPending, StatusScheduled, StatusCanceled} {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidTransactionStatus
}

var transactionDateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseTransactionDate aceita YYYY-MM-DD ou DD/MM/YYYY e devolve a data à meia-noite UTC.
// Entradas em outros formatos são rejeitadas.
func ParseTransactionDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTransactionDate
}

// Transaction representa um lançamento na carteira
type Transaction struct {
	ID              uint
	WalletID        uint
	CategoryID      uint
	PaymentMethodID *uint
	Type            TransactionType
	Amount          valueobjects.Money
	Description     string
	Date            time.Time
	Status          TransactionStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
