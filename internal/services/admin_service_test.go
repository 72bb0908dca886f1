package services

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

var _ = Describe("AdminService", func() {
	var (
		f     *fixture
		root  *entities.User
		admin *entities.User
		user  *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		root = f.superAdmin("root@example.com")
		admin = f.adminUser("admin@example.com")
		user = f.register("Maria", "maria@example.com").User
	})

	Describe("CreateUser", func() {
		It("creates a full account with the chosen role", func() {
			account, err := f.admin.CreateUser(f.ctx, admin, CreateUserInput{
				Name: "Novo Admin", Email: "novo@example.com", Password: "senha-segura", Role: "admin",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(account.User.Role).To(Equal(entities.RoleAdmin))
			Expect(account.Wallet).NotTo(BeNil())
			Expect(account.MasterToken.Plaintext).NotTo(BeEmpty())

			entries, err := f.audit.List(f.ctx, repositories.AuditFilters{Action: entities.AuditUserCreate})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})

		It("only lets super admins create super admins", func() {
			input := CreateUserInput{Name: "Outro Root", Email: "outro@example.com", Password: "senha-segura", Role: "super_admin"}

			_, err := f.admin.CreateUser(f.ctx, admin, input)
			Expect(err).To(MatchError(errors.ErrForbidden))

			_, err = f.admin.CreateUser(f.ctx, root, input)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects unknown roles", func() {
			_, err := f.admin.CreateUser(f.ctx, admin, CreateUserInput{
				Name: "X Y", Email: "x@example.com", Password: "senha-segura", Role: "dono",
			})
			Expect(err).To(MatchError(errors.ErrInvalidRole))
		})
	})

	It("toggles status but never over a super admin for plain admins", func() {
		updated, err := f.admin.SetActive(f.ctx, admin, user.ID, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Active).To(BeFalse())

		_, err = f.admin.SetActive(f.ctx, admin, root.ID, false)
		Expect(err).To(MatchError(errors.ErrForbidden))

		_, err = f.admin.SetActive(f.ctx, admin, admin.ID, false)
		Expect(err).To(MatchError(errors.ErrForbidden))
	})

	It("closes open impersonations of a deactivated user", func() {
		session, _, err := f.impersonation.Start(f.ctx, root, user.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = f.admin.SetActive(f.ctx, admin, user.ID, false)
		Expect(err).NotTo(HaveOccurred())

		open, err := f.impersonation.IsOpen(f.ctx, session.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(BeFalse())

		_, err = f.admin.SetActive(f.ctx, admin, 9999, false)
		Expect(err).To(MatchError(errors.ErrUserNotFound))
	})

	It("sets and clears the subscription expiration", func() {
		at := fixedNow.Add(30 * 24 * time.Hour)
		updated, err := f.admin.SetExpiration(f.ctx, admin, user.ID, &at)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.ExpiresAt).NotTo(BeNil())
		Expect(updated.SubscriptionActive(fixedNow)).To(BeTrue())

		updated, err = f.admin.SetExpiration(f.ctx, admin, user.ID, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.ExpiresAt).To(BeNil())
	})

	It("deletes a user with everything they own", func() {
		f.spend(user.ID, "Alimentação", "despesa", "50", "")
		_, err := f.categories.Create(f.ctx, user.ID, CategoryInput{Name: "Casa", Type: "Despesa"})
		Expect(err).NotTo(HaveOccurred())
		_, _, err = f.impersonation.Start(f.ctx, root, user.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.admin.DeleteUser(f.ctx, root, user.ID)).To(Succeed())

		_, err = f.users.GetUser(f.ctx, user.ID)
		Expect(err).To(MatchError(errors.ErrUserNotFound))

		for _, table := range []string{"carteiras", "transacoes", "api_tokens", "admin_impersonation_sessions"} {
			var count int64
			Expect(f.db.Table(table).Where("1 = 1").Count(&count).Error).To(Succeed())
			if table == "carteiras" || table == "api_tokens" {
				// Sobram os registros do root e do admin
				Expect(count).To(BeEquivalentTo(2), table)
			} else {
				Expect(count).To(BeZero(), table)
			}
		}

		// Categorias globais continuam lá
		Expect(f.category(admin.ID, "Alimentação")).NotTo(BeNil())
	})

	It("lists users by role", func() {
		role := entities.RoleNormal
		users, err := f.admin.ListUsers(f.ctx, repositories.UserFilters{Role: &role})
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(1))
		Expect(users[0].ID).To(Equal(user.ID))
	})

	It("sends notifications and audits them", func() {
		delivered := f.admin.SendNotification(f.ctx, admin, NotificationInput{
			Title: "Manutenção", Message: "Hoje às 22h", UserIDs: []uint{user.ID},
		})
		Expect(delivered).To(BeTrue())

		sent := f.notifier.last()
		Expect(sent.event.Type).To(Equal(ports.EventAdminMessage))
		Expect(sent.userIDs).To(ConsistOf(idString(user.ID)))

		entries, err := f.audit.List(f.ctx, repositories.AuditFilters{Action: entities.AuditNotificationSend})
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	})
})

var _ = Describe("SeedService", func() {
	It("does not duplicate defaults", func() {
		f := newFixture()

		result, err := f.seed.Seed(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Categories).To(BeZero())
		Expect(result.PaymentMethods).To(BeZero())

		globals, err := f.categories.ListGlobal(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(globals).To(HaveLen(len(defaultCategories)))

		methods, err := f.methods.ListGlobal(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(methods).To(HaveLen(len(defaultPaymentMethods)))
	})
})

var _ = Describe("ThemeService", func() {
	var (
		f    *fixture
		root *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		root = f.superAdmin("root@example.com")
	})

	create := func(name string, active bool) *entities.Theme {
		theme, err := f.themes.Create(f.ctx, root.ID, ThemeInput{
			Name:   &name,
			Colors: map[string]string{"primaria": "#123456", "fundo": "#fff"},
			Active: &active,
		})
		Expect(err).NotTo(HaveOccurred())
		return theme
	}

	It("keeps exactly one active theme", func() {
		claro := create("Claro", true)
		escuro := create("Escuro", false)

		active, err := f.themes.Active(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(active.ID).To(Equal(claro.ID))

		_, err = f.themes.Activate(f.ctx, root.ID, escuro.ID)
		Expect(err).NotTo(HaveOccurred())

		active, err = f.themes.Active(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(active.ID).To(Equal(escuro.ID))
		Expect(active.Colors).To(HaveKeyWithValue("primaria", "#123456"))

		reloaded, err := f.themes.Get(f.ctx, claro.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.Active).To(BeFalse())
	})

	It("validates names and colors", func() {
		create("Claro", false)

		name := "claro"
		_, err := f.themes.Create(f.ctx, root.ID, ThemeInput{Name: &name})
		Expect(err).To(MatchError(errors.ErrThemeDuplicate))

		name = "Neon"
		_, err = f.themes.Create(f.ctx, root.ID, ThemeInput{Name: &name, Colors: map[string]string{"primaria": "verde"}})
		Expect(err).To(MatchError(errors.ErrValidation))
	})

	It("reports a missing active theme", func() {
		_, err := f.themes.Active(f.ctx)
		Expect(err).To(MatchError(errors.ErrThemeNotFound))
	})

	It("deletes themes", func() {
		theme := create("Claro", false)
		Expect(f.themes.Delete(f.ctx, root.ID, theme.ID)).To(Succeed())
		Expect(f.themes.Delete(f.ctx, root.ID, theme.ID)).To(MatchError(errors.ErrThemeNotFound))
	})
})

var _ = Describe("WebhookService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	It("rejects a wrong hash", func() {
		Expect(f.webhook.Verify("outro")).To(BeFalse())
		_, err := f.webhook.Relay(f.ctx, "outro", []byte(`{}`))
		Expect(err).To(MatchError(errors.ErrWebhookHash))
	})

	It("does nothing without super admins", func() {
		delivered, err := f.webhook.Relay(f.ctx, webhookHash, []byte(`{"event":"message"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(delivered).To(BeFalse())
		Expect(f.notifier.types()).To(BeEmpty())
	})

	It("relays the payload to super admins only and forwards it", func() {
		root := f.superAdmin("root@example.com")
		f.register("Maria", "maria@example.com")

		payload := []byte(`{"event":"message","payload":{"body":"oi"}}`)
		delivered, err := f.webhook.Relay(f.ctx, webhookHash, payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(delivered).To(BeTrue())

		sent := f.notifier.last()
		Expect(sent.event.Type).To(Equal(ports.EventWahaMessage))
		Expect(sent.userIDs).To(ConsistOf(idString(root.ID)))
		Expect(sent.event.Data).To(Equal(json.RawMessage(payload)))
		Expect(f.fwd.payloads).To(HaveLen(1))
	})

	It("rejects a body that is not JSON", func() {
		_, err := f.webhook.Relay(f.ctx, webhookHash, []byte(`oi`))
		Expect(err).To(MatchError(errors.ErrValidation))
	})
})
