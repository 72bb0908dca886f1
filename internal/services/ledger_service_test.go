package services

import (
	"bytes"
	"context"
	errs "errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
	"github.com/rafabene/carteira-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/carteira-backend/internal/infrastructure/reports"
)

var errLedgerDown = errs.New("ledger unavailable")

// brokenLedger falha em todas as agregações
type brokenLedger struct{}

func (brokenLedger) Totals(context.Context, uint) (entities.Totals, error) {
	return entities.Totals{}, errLedgerDown
}

func (brokenLedger) PeriodTotals(context.Context, uint, *time.Time, *time.Time) (entities.Totals, error) {
	return entities.Totals{}, errLedgerDown
}

func (brokenLedger) MonthlyTotals(context.Context, uint) ([]entities.MonthlySummary, error) {
	return nil, errLedgerDown
}

func (brokenLedger) ExpensesByCategory(context.Context, uint, time.Time, time.Time) ([]entities.CategoryTotal, error) {
	return nil, errLedgerDown
}

var _ = Describe("LedgerService", func() {
	When("the aggregation queries fail", func() {
		var (
			ledger *LedgerService
			logs   *bytes.Buffer
		)

		BeforeEach(func() {
			logs = &bytes.Buffer{}
			ledger = NewLedgerService(brokenLedger{}, fixedClock, logging.NewSlogLoggerWithWriter(logs, "debug"))
		})

		It("returns zero or empty on the dashboard variants and logs the error", func() {
			ctx := context.Background()

			Expect(ledger.Balance(ctx, 1).String()).To(Equal("0.00"))
			totals := ledger.IncomeExpenseTotals(ctx, 1)
			Expect(totals.Income.String()).To(Equal("0.00"))
			Expect(totals.Expense.String()).To(Equal("0.00"))
			Expect(ledger.MonthlySummary(ctx, 1)).NotTo(BeNil())
			Expect(ledger.MonthlySummary(ctx, 1)).To(BeEmpty())
			Expect(ledger.ExpensesByCategory(ctx, 1)).NotTo(BeNil())
			Expect(ledger.ExpensesByCategory(ctx, 1)).To(BeEmpty())

			Expect(logs.String()).To(ContainSubstring("balance query failed"))
			Expect(logs.String()).To(ContainSubstring("totals query failed"))
			Expect(logs.String()).To(ContainSubstring("ledger unavailable"))
		})

		It("propagates the error on the strict variants", func() {
			ctx := context.Background()

			_, err := ledger.ExactBalance(ctx, 1)
			Expect(err).To(MatchError(errLedgerDown))
			_, err = ledger.IncomeExpenseTotalsStrict(ctx, 1)
			Expect(err).To(MatchError(errLedgerDown))
			_, err = ledger.PeriodTotalsStrict(ctx, 1, nil, nil)
			Expect(err).To(MatchError(errLedgerDown))
			_, err = ledger.MonthlySummaryStrict(ctx, 1)
			Expect(err).To(MatchError(errLedgerDown))
			_, err = ledger.ExpensesByCategoryStrict(ctx, 1)
			Expect(err).To(MatchError(errLedgerDown))
		})
	})

	Describe("reports backed by a failing ledger", func() {
		var (
			f       *fixture
			user    *entities.User
			service *ReportService
		)

		BeforeEach(func() {
			f = newFixture()
			user = f.register("Maria", "maria@example.com").User
			f.spend(user.ID, "Salário", "receita", "3000", "2024-04-05")

			ledger := NewLedgerService(brokenLedger{}, fixedClock, logging.NewNopLogger())
			service = NewReportService(
				postgres.NewUserRepository(f.db), f.wallets, postgres.NewTransactionRepository(f.db),
				postgres.NewCategoryRepository(f.db), postgres.NewPaymentMethodRepository(f.db), ledger,
				reports.NewCSVRenderer(), reports.NewDiskStore(f.dir), fixedClock, logging.NewNopLogger(),
			)
		})

		It("still renders the dashboard with zeros", func() {
			dash, err := service.Dashboard(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(dash.Balance.String()).To(Equal("0.00"))
			Expect(dash.MonthlySummary).To(BeEmpty())
			Expect(dash.ExpensesByCategory).To(BeEmpty())
		})

		It("aborts the statement export", func() {
			_, err := service.Statement(f.ctx, user.ID, StatementInput{})
			Expect(err).To(MatchError(errLedgerDown))
		})
	})
})
