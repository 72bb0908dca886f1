package services

import (
	"context"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// LedgerService calcula saldos e agregados de uma carteira.
// As variantes sem sufixo retornam zero/vazio em caso de erro (dashboards);
// as variantes Strict e ExactBalance propagam o erro (exportações).
type LedgerService struct {
	ledger repositories.LedgerRepository
	clock  ports.Clock
	logger ports.Logger
}

// NewLedgerService cria um novo LedgerService
func NewLedgerService(ledger repositories.LedgerRepository, clock ports.Clock, logger ports.Logger) *LedgerService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &LedgerService{
		ledger: ledger,
		clock:  clock,
		logger: logger.With("component", "ledger"),
	}
}

// Balance retorna receitas menos despesas; zero se a consulta falhar
func (s *LedgerService) Balance(ctx context.Context, walletID uint) valueobjects.Money {
	balance, err := s.ExactBalance(ctx, walletID)
	if err != nil {
		s.logger.Error("balance query failed, returning zero", "wallet_id", walletID, "error", err)
		return valueobjects.ZeroMoney()
	}
	return balance
}

// ExactBalance retorna o saldo ou o erro da consulta
func (s *LedgerService) ExactBalance(ctx context.Context, walletID uint) (valueobjects.Money, error) {
	totals, err := s.ledger.Totals(ctx, walletID)
	if err != nil {
		return valueobjects.ZeroMoney(), err
	}
	return totals.Balance(), nil
}

// IncomeExpenseTotals retorna as somas de todo o histórico; zeros se a consulta falhar
func (s *LedgerService) IncomeExpenseTotals(ctx context.Context, walletID uint) entities.Totals {
	totals, err := s.IncomeExpenseTotalsStrict(ctx, walletID)
	if err != nil {
		s.logger.Error("totals query failed, returning zero", "wallet_id", walletID, "error", err)
		return entities.Totals{Income: valueobjects.ZeroMoney(), Expense: valueobjects.ZeroMoney()}
	}
	return totals
}

func (s *LedgerService) IncomeExpenseTotalsStrict(ctx context.Context, walletID uint) (entities.Totals, error) {
	return s.ledger.Totals(ctx, walletID)
}

// PeriodTotalsStrict soma receitas e despesas de [from, to]; usado pelo extrato
func (s *LedgerService) PeriodTotalsStrict(ctx context.Context, walletID uint, from, to *time.Time) (entities.Totals, error) {
	return s.ledger.PeriodTotals(ctx, walletID, from, to)
}

// MonthlySummary retorna receitas e despesas por mês em ordem crescente; vazio se a consulta falhar
func (s *LedgerService) MonthlySummary(ctx context.Context, walletID uint) []entities.MonthlySummary {
	summary, err := s.MonthlySummaryStrict(ctx, walletID)
	if err != nil {
		s.logger.Error("monthly summary query failed, returning empty", "wallet_id", walletID, "error", err)
		return []entities.MonthlySummary{}
	}
	return summary
}

func (s *LedgerService) MonthlySummaryStrict(ctx context.Context, walletID uint) ([]entities.MonthlySummary, error) {
	return s.ledger.MonthlyTotals(ctx, walletID)
}

// ExpensesByCategory agrupa as despesas do mês corrente; vazio se a consulta falhar
func (s *LedgerService) ExpensesByCategory(ctx context.Context, walletID uint) []entities.CategoryTotal {
	totals, err := s.ExpensesByCategoryStrict(ctx, walletID)
	if err != nil {
		s.logger.Error("expenses by category query failed, returning empty", "wallet_id", walletID, "error", err)
		return []entities.CategoryTotal{}
	}
	return totals
}

func (s *LedgerService) ExpensesByCategoryStrict(ctx context.Context, walletID uint) ([]entities.CategoryTotal, error) {
	from, to := s.CurrentMonth()
	return s.ledger.ExpensesByCategory(ctx, walletID, from, to)
}

// CurrentMonth retorna o intervalo [primeiro dia do mês, primeiro dia do mês seguinte) em UTC
func (s *LedgerService) CurrentMonth() (time.Time, time.Time) {
	now := s.clock().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
