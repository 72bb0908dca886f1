package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// LedgerRepository implementa repositories.LedgerRepository com agregações SQL sobre transacoes
type LedgerRepository struct {
	baseRepository
}

// NewLedgerRepository cria um novo LedgerRepository
func NewLedgerRepository(db *gorm.DB) repositories.LedgerRepository {
	return &LedgerRepository{baseRepository{db: db}}
}

type totalsRow struct {
	Receitas decimal.Decimal
	Despesas decimal.Decimal
}

func (r *LedgerRepository) Totals(ctx context.Context, walletID uint) (entities.Totals, error) {
	return r.PeriodTotals(ctx, walletID, nil, nil)
}

func (r *LedgerRepository) PeriodTotals(ctx context.Context, walletID uint, from, to *time.Time) (entities.Totals, error) {
	query := r.getDB(ctx).Model(&TransactionModel{}).
		Select(
			"COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS receitas, "+
				"COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS despesas",
			string(entities.TransactionIncome), string(entities.TransactionExpense),
		).
		Where("carteira_id = ?", walletID)
	if from != nil {
		query = query.Where("data_transacao >= ?", *from)
	}
	if to != nil {
		query = query.Where("data_transacao <= ?", *to)
	}

	var row totalsRow
	if err := query.Scan(&row).Error; err != nil {
		return entities.Totals{}, err
	}
	return entities.Totals{
		Income:  valueobjects.NewMoney(row.Receitas),
		Expense: valueobjects.NewMoney(row.Despesas),
	}, nil
}

type dailyRow struct {
	DataTransacao time.Time
	Tipo          string
	Total         decimal.Decimal
}

// MonthlyTotals soma por dia no banco e consolida por mês aqui, o que evita
// funções de data específicas de cada dialeto
func (r *LedgerRepository) MonthlyTotals(ctx context.Context, walletID uint) ([]entities.MonthlySummary, error) {
	var rows []dailyRow
	err := r.getDB(ctx).Model(&TransactionModel{}).
		Select("data_transacao, tipo, SUM(valor) AS total").
		Where("carteira_id = ?", walletID).
		Group("data_transacao, tipo").
		Order("data_transacao").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]entities.MonthlySummary, 0)
	for _, row := range rows {
		d := row.DataTransacao.UTC()
		n := len(summaries)
		if n == 0 || summaries[n-1].Year != d.Year() || summaries[n-1].Month != int(d.Month()) {
			summaries = append(summaries, entities.MonthlySummary{
				Year:    d.Year(),
				Month:   int(d.Month()),
				Income:  valueobjects.ZeroMoney(),
				Expense: valueobjects.ZeroMoney(),
			})
			n++
		}
		amount := valueobjects.NewMoney(row.Total)
		if entities.TransactionType(row.Tipo) == entities.TransactionIncome {
			summaries[n-1].Income = summaries[n-1].Income.Add(amount)
		} else {
			summaries[n-1].Expense = summaries[n-1].Expense.Add(amount)
		}
	}
	return summaries, nil
}

type categoryRow struct {
	CategoriaID uint
	Nome        string
	Cor         string
	Icone       string
	Total       decimal.Decimal
}

// ExpensesByCategory soma as despesas em [from, to) por categoria, do maior para o menor total
func (r *LedgerRepository) ExpensesByCategory(ctx context.Context, walletID uint, from, to time.Time) ([]entities.CategoryTotal, error) {
	var rows []categoryRow
	err := r.getDB(ctx).Table("transacoes AS t").
		Select("c.id AS categoria_id, c.nome, c.cor, c.icone, SUM(t.valor) AS total").
		Joins("JOIN categorias AS c ON c.id = t.categoria_id").
		Where("t.carteira_id = ? AND t.tipo = ?", walletID, string(entities.TransactionExpense)).
		Where("t.data_transacao >= ? AND t.data_transacao < ?", from, to).
		Group("c.id, c.nome, c.cor, c.icone").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]entities.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, entities.CategoryTotal{
			CategoryID: row.CategoriaID,
			Name:       row.Nome,
			Color:      row.Cor,
			Icon:       row.Icone,
			Total:      valueobjects.NewMoney(row.Total),
		})
	}
	return result, nil
}
