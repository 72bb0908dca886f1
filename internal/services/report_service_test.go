package services

import (
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
)

var _ = Describe("ReportService", func() {
	var (
		f    *fixture
		user *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.register("Maria", "maria@example.com").User
		f.spend(user.ID, "Salário", "receita", "3000", "2024-04-05")
		f.spend(user.ID, "Moradia", "despesa", "1200", "2024-04-10")
		f.spend(user.ID, "Alimentação", "despesa", "300.50", "2024-05-03")
		f.spend(user.ID, "Moradia", "despesa", "1200", "2024-05-10")
	})

	It("builds the dashboard", func() {
		dash, err := f.reports.Dashboard(f.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(dash.Balance.String()).To(Equal("299.50"))
		Expect(dash.Totals.Income.String()).To(Equal("3000.00"))
		Expect(dash.Totals.Expense.String()).To(Equal("2700.50"))

		Expect(dash.MonthlySummary).To(HaveLen(2))
		Expect(dash.MonthlySummary[0].Month).To(Equal(4))
		Expect(dash.MonthlySummary[0].Income.String()).To(Equal("3000.00"))
		Expect(dash.MonthlySummary[1].Expense.String()).To(Equal("1500.50"))
	})

	It("groups the current month's expenses by category", func() {
		totals := f.ledger.ExpensesByCategory(f.ctx, walletID(f, user.ID))
		Expect(totals).To(HaveLen(2))
		Expect(totals[0].Name).To(Equal("Moradia"))
		Expect(totals[0].Total.String()).To(Equal("1200.00"))
		Expect(totals[1].Name).To(Equal("Alimentação"))
	})

	Describe("Statement", func() {
		It("writes a CSV the owner can download", func() {
			file, err := f.reports.Statement(f.ctx, user.ID, StatementInput{From: "2024-05-01"})
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Lines).To(Equal(2))
			Expect(file.Name).To(HavePrefix(statementPrefix(user.ID)))
			Expect(file.Name).To(HaveSuffix(".csv"))

			path, err := f.reports.Download(f.ctx, user.ID, file.Name)
			Expect(err).NotTo(HaveOccurred())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			content := string(data)
			Expect(content).To(ContainSubstring("Maria"))
			Expect(content).To(ContainSubstring("Alimentação"))
			Expect(content).To(ContainSubstring(entities.DefaultPaymentMethodName))
			Expect(strings.Count(content, "Moradia")).To(Equal(1))
		})

		It("totals only the requested period", func() {
			file, err := f.reports.Statement(f.ctx, user.ID, StatementInput{From: "2024-05-01", To: "2024-05-31"})
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Lines).To(Equal(2))

			path, err := f.reports.Download(f.ctx, user.ID, file.Name)
			Expect(err).NotTo(HaveOccurred())
			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())

			content := string(data)
			Expect(content).NotTo(ContainSubstring("Salário"))
			Expect(content).To(ContainSubstring("Total de receitas;0.00\n"))
			Expect(content).To(ContainSubstring("Total de despesas;1500.50\n"))
			Expect(content).To(ContainSubstring("Saldo;-1500.50\n"))
		})

		It("totals the whole history without a period", func() {
			file, err := f.reports.Statement(f.ctx, user.ID, StatementInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Lines).To(Equal(4))

			path, err := f.reports.Download(f.ctx, user.ID, file.Name)
			Expect(err).NotTo(HaveOccurred())
			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())

			content := string(data)
			Expect(content).To(ContainSubstring("Total de receitas;3000.00\n"))
			Expect(content).To(ContainSubstring("Saldo;299.50\n"))
		})

		It("hides other users' files", func() {
			file, err := f.reports.Statement(f.ctx, user.ID, StatementInput{})
			Expect(err).NotTo(HaveOccurred())
			other := f.register("João", "joao@example.com")

			_, err = f.reports.Download(f.ctx, other.User.ID, file.Name)
			Expect(err).To(MatchError(errors.ErrFileNotFound))
		})

		It("refuses path traversal", func() {
			_, err := f.reports.Download(f.ctx, user.ID, statementPrefix(user.ID)+"../../etc/passwd")
			Expect(err).To(MatchError(errors.ErrFileNotFound))
		})

		It("rejects a malformed period", func() {
			_, err := f.reports.Statement(f.ctx, user.ID, StatementInput{To: "maio"})
			Expect(err).To(MatchError(errors.ErrInvalidTransactionDate))
		})
	})
})

func walletID(f *fixture, userID uint) uint {
	wallet, err := f.wallets.ForUser(f.ctx, userID)
	Expect(err).NotTo(HaveOccurred())
	return wallet.ID
}

var _ = Describe("ReminderService", func() {
	var (
		f    *fixture
		user *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.register("Maria", "maria@example.com").User
	})

	strPtr := func(s string) *string { return &s }

	It("stores the wall-clock time shifted to UTC", func() {
		reminder, err := f.reminders.Create(f.ctx, user.ID, ReminderInput{
			Title:    strPtr("Pagar aluguel"),
			RemindAt: strPtr("2024-05-15T09:00"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(reminder.RemindAt.UTC().Format("2006-01-02 15:04")).To(Equal("2024-05-15 12:00"))
		Expect(reminder.LocalRemindAt().Format("2006-01-02T15:04")).To(Equal("2024-05-15T09:00"))
	})

	It("requires a title and a valid date", func() {
		_, err := f.reminders.Create(f.ctx, user.ID, ReminderInput{RemindAt: strPtr("2024-05-15T09:00")})
		Expect(err).To(MatchError(errors.ErrValidation))

		_, err = f.reminders.Create(f.ctx, user.ID, ReminderInput{Title: strPtr("x"), RemindAt: strPtr("amanhã")})
		Expect(err).To(MatchError(errors.ErrInvalidReminderDate))
	})

	It("hides other users' reminders", func() {
		reminder, err := f.reminders.Create(f.ctx, user.ID, ReminderInput{
			Title: strPtr("Pagar aluguel"), RemindAt: strPtr("2024-05-15T09:00"),
		})
		Expect(err).NotTo(HaveOccurred())
		other := f.register("João", "joao@example.com").User

		_, err = f.reminders.Get(f.ctx, other.ID, reminder.ID)
		Expect(err).To(MatchError(errors.ErrReminderNotFound))
		Expect(f.reminders.Delete(f.ctx, other.ID, reminder.ID)).To(MatchError(errors.ErrReminderNotFound))
	})

	It("marks reminders as done", func() {
		reminder, err := f.reminders.Create(f.ctx, user.ID, ReminderInput{
			Title: strPtr("Pagar aluguel"), RemindAt: strPtr("2024-05-15T09:00"),
		})
		Expect(err).NotTo(HaveOccurred())

		done := true
		updated, err := f.reminders.Update(f.ctx, user.ID, reminder.ID, ReminderInput{Done: &done})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Done).To(BeTrue())
		Expect(updated.Title).To(Equal("Pagar aluguel"))
	})
})
