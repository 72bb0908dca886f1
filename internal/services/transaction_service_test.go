package services

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
)

var _ = Describe("TransactionService", func() {
	var (
		f    *fixture
		user *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.register("Maria", "maria@example.com").User
	})

	Describe("Create", func() {
		It("debits an expense from the caller's own wallet", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")

			Expect(tx.Type).To(Equal(entities.TransactionExpense))
			Expect(tx.Status).To(Equal(entities.StatusCompleted))
			Expect(tx.Amount.String()).To(Equal("50.00"))

			balance, err := f.wallets.Balance(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.String()).To(Equal("-50.00"))
		})

		It("uses today's date when none is given", func() {
			tx := f.spend(user.ID, "Alimentação", "Despesa", "10", "")
			Expect(tx.Date.Format("2006-01-02")).To(Equal("2024-05-10"))
		})

		It("accepts both date layouts", func() {
			a := f.spend(user.ID, "Salário", "receita", "1", "2024-01-31")
			b := f.spend(user.ID, "Salário", "receita", "1", "31/01/2024")
			Expect(a.Date.Equal(b.Date)).To(BeTrue())
		})

		It("computes the balance as income minus expenses", func() {
			f.spend(user.ID, "Salário", "entrada", "100.10", "2024-05-01")
			f.spend(user.ID, "Moradia", "saída", "150.20", "2024-05-02")

			balance, err := f.wallets.Balance(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.String()).To(Equal("-50.10"))

			wallet, err := f.wallets.ForUser(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(wallet.CachedBalance.String()).To(Equal("-50.10"))
		})

		It("defaults the payment method to PIX", func() {
			tx := f.spend(user.ID, "Lazer", "gasto", "20", "")
			Expect(tx.PaymentMethodID).NotTo(BeNil())

			method, err := f.methods.Get(f.ctx, user.ID, *tx.PaymentMethodID)
			Expect(err).NotTo(HaveOccurred())
			Expect(method.Name).To(Equal(entities.DefaultPaymentMethodName))
		})

		It("rejects a category of the opposite kind without persisting anything", func() {
			_, err := f.transactions.Create(f.ctx, user.ID, CreateTransactionInput{
				CategoryID: f.category(user.ID, "Alimentação").ID,
				Type:       "Receita",
				Amount:     "10",
			})
			Expect(err).To(MatchError(errors.ErrCategoryTypeMismatch))
			Expect(errors.ParamsOf(err)).To(HaveKeyWithValue("TipoCategoria", "Despesa"))

			page, err := f.transactions.List(f.ctx, user.ID, ListTransactionsInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeZero())
		})

		DescribeTable("rejects invalid input",
			func(input CreateTransactionInput, expected error) {
				if input.CategoryID == 0 {
					input.CategoryID = f.category(user.ID, "Alimentação").ID
				}
				_, err := f.transactions.Create(f.ctx, user.ID, input)
				Expect(err).To(MatchError(expected))
			},
			Entry("unknown kind", CreateTransactionInput{Type: "transferencia", Amount: "10"}, errors.ErrInvalidTransactionType),
			Entry("zero amount", CreateTransactionInput{Type: "despesa", Amount: "0"}, errors.ErrInvalidAmount),
			Entry("negative amount", CreateTransactionInput{Type: "despesa", Amount: "-5"}, errors.ErrInvalidAmount),
			Entry("garbage amount", CreateTransactionInput{Type: "despesa", Amount: "dez"}, errors.ErrInvalidAmount),
			Entry("bad date", CreateTransactionInput{Type: "despesa", Amount: "1", Date: "2024/01/01"}, errors.ErrInvalidTransactionDate),
			Entry("bad status", CreateTransactionInput{Type: "despesa", Amount: "1", Status: "paga"}, errors.ErrInvalidStatus),
			Entry("missing category", CreateTransactionInput{Type: "despesa", Amount: "1", CategoryID: 9999}, errors.ErrCategoryNotFound),
		)

		It("refuses another user's wallet", func() {
			other := f.register("João", "joao@example.com")

			_, err := f.transactions.Create(f.ctx, user.ID, CreateTransactionInput{
				WalletID:   other.Wallet.ID,
				CategoryID: f.category(user.ID, "Alimentação").ID,
				Type:       "despesa",
				Amount:     "10",
			})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("refuses another user's personal category", func() {
			other := f.register("João", "joao@example.com")
			personal, err := f.categories.Create(f.ctx, other.User.ID, CategoryInput{Name: "Pets", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())

			_, err = f.transactions.Create(f.ctx, user.ID, CreateTransactionInput{
				CategoryID: personal.ID, Type: "despesa", Amount: "10",
			})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("notifies the owner", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")

			sent := f.notifier.last()
			Expect(sent.event.Type).To(Equal(ports.EventTransactionCreated))
			Expect(sent.userIDs).To(ConsistOf(idString(user.ID)))
			Expect(sent.event.Data).To(HaveKeyWithValue("id", tx.ID))
			Expect(sent.event.Data).To(HaveKeyWithValue("valor", "50.00"))
		})
	})

	Describe("Get", func() {
		It("forbids a non-owner", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")
			other := f.register("João", "joao@example.com")

			_, err := f.transactions.Get(f.ctx, other.User.ID, tx.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("reports missing transactions", func() {
			_, err := f.transactions.Get(f.ctx, user.ID, 4242)
			Expect(err).To(MatchError(errors.ErrTransactionNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			f.spend(user.ID, "Salário", "receita", "3000", "2024-04-05")
			f.spend(user.ID, "Alimentação", "despesa", "40", "2024-04-10")
			f.spend(user.ID, "Alimentação", "despesa", "60", "2024-05-02")
		})

		It("returns the newest first", func() {
			page, err := f.transactions.List(f.ctx, user.ID, ListTransactionsInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(3))
			Expect(page.Items).To(HaveLen(3))
			Expect(page.Items[0].Date.Format("2006-01-02")).To(Equal("2024-05-02"))
			Expect(page.PageSize).To(Equal(defaultPageSize))
		})

		It("filters by kind", func() {
			page, err := f.transactions.List(f.ctx, user.ID, ListTransactionsInput{Type: "despesa"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(2))
		})

		It("paginates and caps the page size", func() {
			page, err := f.transactions.List(f.ctx, user.ID, ListTransactionsInput{Page: 2, PageSize: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(3))
			Expect(page.Items).To(HaveLen(1))

			page, err = f.transactions.List(f.ctx, user.ID, ListTransactionsInput{PageSize: 1000})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.PageSize).To(Equal(maxPageSize))
		})

		It("rejects an unknown kind filter", func() {
			_, err := f.transactions.List(f.ctx, user.ID, ListTransactionsInput{Type: "x"})
			Expect(err).To(MatchError(errors.ErrInvalidTransactionType))
		})
	})

	Describe("Update", func() {
		It("revalidates the category when the kind changes", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")
			kind := "receita"

			_, err := f.transactions.Update(f.ctx, user.ID, tx.ID, UpdateTransactionInput{Type: &kind})
			Expect(err).To(MatchError(errors.ErrCategoryTypeMismatch))

			categoryID := f.category(user.ID, "Salário").ID
			updated, err := f.transactions.Update(f.ctx, user.ID, tx.ID, UpdateTransactionInput{Type: &kind, CategoryID: &categoryID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Type).To(Equal(entities.TransactionIncome))

			balance, err := f.wallets.Balance(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.String()).To(Equal("50.00"))
		})

		It("changes the amount and notifies", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")
			amount := "12,34"

			updated, err := f.transactions.Update(f.ctx, user.ID, tx.ID, UpdateTransactionInput{Amount: &amount})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Amount.String()).To(Equal("12.34"))
			Expect(f.notifier.last().event.Type).To(Equal(ports.EventTransactionUpdated))
		})
	})

	Describe("Delete", func() {
		It("removes the transaction and restores the balance", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")

			Expect(f.transactions.Delete(f.ctx, user.ID, tx.ID)).To(Succeed())

			balance, err := f.wallets.Balance(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.String()).To(Equal("0.00"))
			Expect(f.notifier.types()).To(Equal([]string{ports.EventTransactionCreated, ports.EventTransactionDeleted}))
		})

		It("forbids a non-owner", func() {
			tx := f.spend(user.ID, "Alimentação", "despesa", "50", "")
			other := f.register("João", "joao@example.com")

			Expect(f.transactions.Delete(f.ctx, other.User.ID, tx.ID)).To(MatchError(errors.ErrForbidden))
		})
	})
})
