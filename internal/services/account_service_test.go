package services

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
)

var _ = Describe("AuthService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	It("registers a user with an empty Principal wallet and a master token", func() {
		account := f.register("Maria", "  Maria@Example.com ")

		Expect(account.User.Role).To(Equal(entities.RoleNormal))
		Expect(account.User.Active).To(BeTrue())
		Expect(account.User.Email.String()).To(Equal("maria@example.com"))
		Expect(account.Wallet.Name).To(Equal(entities.DefaultWalletName))
		Expect(account.MasterToken.Master).To(BeTrue())
		Expect(account.MasterToken.Plaintext).To(HavePrefix("ct_"))
		Expect(account.MasterToken.Plaintext).To(HaveLen(3 + 64))
		Expect(account.MasterToken.TokenHash).To(Equal(HashToken(account.MasterToken.Plaintext)))

		balance, err := f.wallets.Balance(f.ctx, account.User.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(balance.String()).To(Equal("0.00"))
	})

	It("rejects a duplicate email without creating a second wallet", func() {
		f.register("Maria", "maria@example.com")

		_, err := f.auth.Register(f.ctx, "Outra", "MARIA@example.com", "senha-segura")
		Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))

		var wallets int64
		Expect(f.db.Table("carteiras").Count(&wallets).Error).To(Succeed())
		Expect(wallets).To(BeEquivalentTo(1))
	})

	It("validates the input", func() {
		_, err := f.auth.Register(f.ctx, "Maria", "nao-e-email", "senha-segura")
		Expect(err).To(MatchError(errors.ErrInvalidEmail))

		_, err = f.auth.Register(f.ctx, "Maria", "maria@example.com", "123")
		Expect(err).To(MatchError(errors.ErrValidation))

		_, err = f.auth.Register(f.ctx, "M", "maria@example.com", "senha-segura")
		Expect(err).To(MatchError(errors.ErrValidation))
	})

	Describe("Login", func() {
		BeforeEach(func() {
			f.register("Maria", "maria@example.com")
		})

		It("accepts the right password", func() {
			user, err := f.auth.Login(f.ctx, "MARIA@example.com", "senha-segura")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Maria"))
		})

		It("rejects wrong credentials the same way for unknown emails", func() {
			_, err := f.auth.Login(f.ctx, "maria@example.com", "errada")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))

			_, err = f.auth.Login(f.ctx, "ninguem@example.com", "senha-segura")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})

		It("refuses inactive users", func() {
			root := f.superAdmin("root@example.com")
			user, err := f.auth.Login(f.ctx, "maria@example.com", "senha-segura")
			Expect(err).NotTo(HaveOccurred())
			_, err = f.admin.SetActive(f.ctx, root, user.ID, false)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.auth.Login(f.ctx, "maria@example.com", "senha-segura")
			Expect(err).To(MatchError(errors.ErrUserInactive))
		})
	})

	Describe("EnsureSuperAdmin", func() {
		It("is idempotent", func() {
			first := f.superAdmin("root@example.com")
			second := f.superAdmin("root@example.com")
			Expect(second.ID).To(Equal(first.ID))
			Expect(second.IsSuperAdmin()).To(BeTrue())
		})

		It("promotes an existing user", func() {
			account := f.register("Maria", "maria@example.com")
			promoted := f.superAdmin("maria@example.com")
			Expect(promoted.ID).To(Equal(account.User.ID))
			Expect(promoted.Role).To(Equal(entities.RoleSuperAdmin))
		})
	})
})

var _ = Describe("UserService", func() {
	var (
		f    *fixture
		user *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		user = f.register("Maria", "maria@example.com").User
	})

	It("updates the profile and guards email uniqueness", func() {
		f.register("João", "joao@example.com")

		taken := "joao@example.com"
		_, err := f.users.UpdateProfile(f.ctx, user.ID, UpdateProfileInput{Email: &taken})
		Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))

		name, email := "Maria Souza", "maria.souza@example.com"
		updated, err := f.users.UpdateProfile(f.ctx, user.ID, UpdateProfileInput{Name: &name, Email: &email})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Name).To(Equal("Maria Souza"))
		Expect(updated.Email.String()).To(Equal(email))
	})

	It("changes the password after checking the current one", func() {
		Expect(f.users.ChangePassword(f.ctx, user.ID, "errada", "nova-senha")).To(MatchError(errors.ErrWrongPassword))
		Expect(f.users.ChangePassword(f.ctx, user.ID, "senha-segura", "nova-senha")).To(Succeed())

		_, err := f.auth.Login(f.ctx, "maria@example.com", "nova-senha")
		Expect(err).NotTo(HaveOccurred())
	})

	It("records subscription cancellations", func() {
		c, err := f.users.CancelSubscription(f.ctx, user.ID, "  caro demais ")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Reason).To(Equal("caro demais"))

		reloaded, err := f.users.GetUser(f.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.CancellationRequested).To(BeTrue())
		Expect(reloaded.CancellationRequestedAt).NotTo(BeNil())

		history, err := f.users.ListCancellations(f.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(history).To(HaveLen(1))
	})

	It("reports unknown users", func() {
		_, err := f.users.GetUser(f.ctx, 9999)
		Expect(err).To(MatchError(errors.ErrUserNotFound))
	})
})

var _ = Describe("APITokenService", func() {
	var (
		f       *fixture
		account *Account
	)

	BeforeEach(func() {
		f = newFixture()
		account = f.register("Maria", "maria@example.com")
	})

	It("authenticates by plaintext and touches the last use", func() {
		token, err := f.tokens.Authenticate(f.ctx, account.MasterToken.Plaintext)
		Expect(err).NotTo(HaveOccurred())
		Expect(token.UserID).To(Equal(account.User.ID))
		Expect(token.LastUsedAt).NotTo(BeNil())

		_, err = f.tokens.Authenticate(f.ctx, "ct_inexistente")
		Expect(err).To(MatchError(errors.ErrUnauthorized))

		_, err = f.tokens.Authenticate(f.ctx, "  ")
		Expect(err).To(MatchError(errors.ErrUnauthorized))
	})

	It("stores only the hash of regular tokens", func() {
		token, err := f.tokens.Create(f.ctx, account.User.ID, "integração")
		Expect(err).NotTo(HaveOccurred())
		Expect(token.Plaintext).NotTo(BeEmpty())
		Expect(strings.HasPrefix(token.Plaintext, token.Prefix)).To(BeTrue())

		list, err := f.tokens.List(f.ctx, account.User.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
		for _, t := range list {
			Expect(t.Plaintext).To(BeEmpty())
		}
	})

	It("never deletes the master token", func() {
		err := f.tokens.Delete(f.ctx, account.User.ID, account.MasterToken.ID)
		Expect(err).To(MatchError(errors.ErrMasterTokenImmutable))

		token, err := f.tokens.Create(f.ctx, account.User.ID, "temp")
		Expect(err).NotTo(HaveOccurred())
		other := f.register("João", "joao@example.com")
		Expect(f.tokens.Delete(f.ctx, other.User.ID, token.ID)).To(MatchError(errors.ErrTokenNotFound))
		Expect(f.tokens.Delete(f.ctx, account.User.ID, token.ID)).To(Succeed())
	})

	It("rotates the master secret in place", func() {
		rotated, err := f.tokens.RotateMaster(f.ctx, account.User.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(rotated.ID).To(Equal(account.MasterToken.ID))
		Expect(rotated.Plaintext).NotTo(Equal(account.MasterToken.Plaintext))

		_, err = f.tokens.Authenticate(f.ctx, account.MasterToken.Plaintext)
		Expect(err).To(MatchError(errors.ErrUnauthorized))
		_, err = f.tokens.Authenticate(f.ctx, rotated.Plaintext)
		Expect(err).NotTo(HaveOccurred())
	})
})
