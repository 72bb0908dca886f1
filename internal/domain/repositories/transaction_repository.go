package repositories

import (
	"context"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// TransactionRepository define a persistência de transações
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	FindByID(ctx context.Context, id uint) (*entities.Transaction, error)
	Update(ctx context.Context, tx *entities.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters TransactionFilters) ([]*entities.Transaction, int64, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountByPaymentMethod(ctx context.Context, methodID uint) (int64, error)
}

// TransactionFilters contém filtros para listagem de transações de uma carteira
type TransactionFilters struct {
	WalletID   uint
	Type       *entities.TransactionType
	CategoryID *uint
	Status     *entities.TransactionStatus
	From       *time.Time
	To         *time.Time
	Page       int // 0 desativa a paginação
	PageSize   int
}

// LedgerRepository agrega as transações de uma carteira
type LedgerRepository interface {
	Totals(ctx context.Context, walletID uint) (entities.Totals, error)
	// PeriodTotals limita as somas a [from, to], com as mesmas regras de TransactionFilters; nil não limita
	PeriodTotals(ctx context.Context, walletID uint, from, to *time.Time) (entities.Totals, error)
	MonthlyTotals(ctx context.Context, walletID uint) ([]entities.MonthlySummary, error)
	ExpensesByCategory(ctx context.Context, walletID uint, from, to time.Time) ([]entities.CategoryTotal, error)
}
