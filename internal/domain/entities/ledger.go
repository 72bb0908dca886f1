package entities

import "github.com/rafabene/carteira-backend/internal/domain/valueobjects"

// MonthlySummary agrega receitas e despesas de um mês
type MonthlySummary struct {
	Year    int
	Month   int
	Income  valueobjects.Money
	Expense valueobjects.Money
}

// CategoryTotal é o total de despesas de uma categoria
type CategoryTotal struct {
	CategoryID uint
	Name       string
	Color      string
	Icon       string
	Total      valueobjects.Money
}

// Totals são as somas de receitas e despesas de todo o histórico
type Totals struct {
	Income  valueobjects.Money
	Expense valueobjects.Money
}

// Balance é receita menos despesa
func (t Totals) Balance() valueobjects.Money {
	return t.Income.Sub(t.Expense)
}
