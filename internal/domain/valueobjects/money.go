package valueobjects

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
)

// Money é um valor monetário em reais com duas casas decimais
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney retorna R$ 0,00
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney cria um Money arredondado para centavos
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(2)}
}

// ParseMoney aceita "50.00", "50,00" ou "50"
func ParseMoney(value string) (Money, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return NewMoney(d), nil
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal retorna o valor bruto para persistência
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formata sempre com duas casas ("-50.00")
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
