package services

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

var _ = Describe("CategoryService", func() {
	var (
		f    *fixture
		user *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.register("Maria", "maria@example.com").User
	})

	It("lists globals together with personal categories", func() {
		_, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
		Expect(err).NotTo(HaveOccurred())

		all, err := f.categories.List(f.ctx, user.ID, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(len(defaultCategories) + 1))

		incomes, err := f.categories.List(f.ctx, user.ID, "receita")
		Expect(err).NotTo(HaveOccurred())
		for _, c := range incomes {
			Expect(c.Type).To(Equal(entities.TransactionIncome))
		}
	})

	It("rejects a duplicate name of the same kind", func() {
		_, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
		Expect(err).NotTo(HaveOccurred())

		_, err = f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "casa", Type: "despesa"})
		Expect(err).To(MatchError(errors.ErrCategoryDuplicate))

		// Mesmo nome em outro tipo é permitido
		_, err = f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Receita"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("treats a global name as taken", func() {
		_, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Alimentação", Type: "Despesa"})
		Expect(err).To(MatchError(errors.ErrCategoryDuplicate))
	})

	It("lets different users reuse a name", func() {
		other := f.register("João", "joao@example.com").User

		_, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
		Expect(err).NotTo(HaveOccurred())
		_, err = f.categories.Create(f.ctx, other.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("refuses an empty name or unknown kind", func() {
		_, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "  ", Type: "Despesa"})
		Expect(err).To(MatchError(errors.ErrValidation))

		_, err = f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "outro"})
		Expect(err).To(MatchError(errors.ErrInvalidTransactionType))
	})

	Describe("Delete", func() {
		It("removes an unreferenced personal category", func() {
			c, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())

			Expect(f.categories.Delete(f.ctx, user.ID, c.ID)).To(Succeed())
			_, err = f.categories.Get(f.ctx, user.ID, c.ID)
			Expect(err).To(MatchError(errors.ErrCategoryNotFound))
		})

		It("refuses a category in use", func() {
			c, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())
			f.spend(user.ID, "Casa", "despesa", "10", "")

			err = f.categories.Delete(f.ctx, user.ID, c.ID)
			Expect(err).To(MatchError(errors.ErrCategoryInUse))
			Expect(errors.ParamsOf(err)).To(HaveKeyWithValue("Total", BeEquivalentTo(1)))
		})

		It("does not let users touch globals", func() {
			global := f.category(user.ID, "Lazer")
			Expect(f.categories.Delete(f.ctx, user.ID, global.ID)).To(MatchError(errors.ErrGlobalImmutable))

			name := "Diversão"
			_, err := f.categories.Update(f.ctx, user.ID, global.ID, CategoryUpdate{Name: &name})
			Expect(err).To(MatchError(errors.ErrGlobalImmutable))
		})

		It("forbids deleting someone else's category", func() {
			other := f.register("João", "joao@example.com").User
			c, err := f.categories.Create(f.ctx, other.ID, CategoryInput{Name: "Pets", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())

			Expect(f.categories.Delete(f.ctx, user.ID, c.ID)).To(MatchError(errors.ErrForbidden))
			_, err = f.categories.Get(f.ctx, user.ID, c.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})

	Describe("Update", func() {
		It("blocks a kind change once transactions exist", func() {
			c, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())
			f.spend(user.ID, "Casa", "despesa", "10", "")

			kind := "Receita"
			_, err = f.categories.Update(f.ctx, user.ID, c.ID, CategoryUpdate{Type: &kind})
			Expect(err).To(MatchError(errors.ErrCategoryTypeLocked))
			Expect(err).NotTo(MatchError(errors.ErrCategoryInUse))
			Expect(errors.ParamsOf(err)).To(HaveKeyWithValue("Total", BeEquivalentTo(1)))
		})

		It("renames and recolors", func() {
			c, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())

			name, color := "Lar", "#000000"
			updated, err := f.categories.Update(f.ctx, user.ID, c.ID, CategoryUpdate{Name: &name, Color: &color})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Lar"))
			Expect(updated.Color).To(Equal("#000000"))
		})
	})

	Describe("globals", func() {
		It("are managed by admins and audited", func() {
			admin := f.adminUser("admin@example.com")

			c, err := f.categories.CreateGlobal(f.ctx, admin.ID, CategoryInput{Name: "Educação", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.IsGlobal()).To(BeTrue())

			// Visível para qualquer usuário
			Expect(f.category(user.ID, "Educação").ID).To(Equal(c.ID))

			Expect(f.categories.DeleteGlobal(f.ctx, admin.ID, c.ID)).To(Succeed())

			entries, err := f.audit.List(f.ctx, repositories.AuditFilters{Action: entities.AuditGlobalCategory})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})

		It("do not resolve personal categories", func() {
			c, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
			Expect(err).NotTo(HaveOccurred())
			Expect(f.categories.DeleteGlobal(f.ctx, user.ID, c.ID)).To(MatchError(errors.ErrCategoryNotFound))
		})
	})
})

var _ = Describe("PaymentMethodService", func() {
	var (
		f    *fixture
		user *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.register("Maria", "maria@example.com").User
	})

	It("rejects duplicates including globals", func() {
		_, err := f.methods.Create(f.ctx, user.ID, "pix", "")
		Expect(err).To(MatchError(errors.ErrPaymentMethodExists))

		m, err := f.methods.Create(f.ctx, user.ID, "Vale Refeição", "ticket")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.IsGlobal()).To(BeFalse())
	})

	It("refuses to delete a method in use", func() {
		m, err := f.methods.Create(f.ctx, user.ID, "Vale Refeição", "ticket")
		Expect(err).NotTo(HaveOccurred())

		_, err = f.transactions.Create(f.ctx, user.ID, CreateTransactionInput{
			CategoryID:      f.category(user.ID, "Alimentação").ID,
			PaymentMethodID: &m.ID,
			Type:            "despesa",
			Amount:          "25",
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(f.methods.Delete(f.ctx, user.ID, m.ID)).To(MatchError(errors.ErrPaymentMethodInUse))
	})

	It("falls back to the first visible method when PIX is gone", func() {
		pix, err := f.methods.Resolve(f.ctx, user.ID, nil)
		Expect(err).NotTo(HaveOccurred())
		admin := f.adminUser("admin@example.com")
		Expect(f.methods.DeleteGlobal(f.ctx, admin.ID, pix.ID)).To(Succeed())

		method, err := f.methods.Resolve(f.ctx, user.ID, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(method.Name).NotTo(Equal(entities.DefaultPaymentMethodName))
	})
})
