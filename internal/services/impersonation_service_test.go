package services

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/infrastructure/persistence/postgres"
)

var _ = Describe("ImpersonationService", func() {
	var (
		f      *fixture
		rootA  *entities.User
		rootC  *entities.User
		target *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		rootA = f.superAdmin("a@example.com")
		rootC = f.superAdmin("c@example.com")
		target = f.register("Bruno", "bruno@example.com").User
	})

	openSessions := func() int64 {
		count, err := postgres.NewImpersonationRepository(f.db).CountOpenForTarget(f.ctx, target.ID)
		Expect(err).NotTo(HaveOccurred())
		return count
	}

	It("opens a session and records it in the audit log", func() {
		session, impersonated, err := f.impersonation.Start(f.ctx, rootA, target.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(impersonated.ID).To(Equal(target.ID))
		Expect(session.AdminID).To(Equal(rootA.ID))
		Expect(session.StartedAt.Equal(fixedNow)).To(BeTrue())

		open, err := f.impersonation.IsOpen(f.ctx, session.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(BeTrue())

		entries, err := f.audit.List(f.ctx, repositories.AuditFilters{Action: entities.AuditImpersonationStart})
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(*entries[0].TargetUserID).To(Equal(target.ID))
	})

	It("keeps a single open session per target", func() {
		first, _, err := f.impersonation.Start(f.ctx, rootA, target.ID)
		Expect(err).NotTo(HaveOccurred())
		second, _, err := f.impersonation.Start(f.ctx, rootC, target.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(openSessions()).To(BeEquivalentTo(1))

		open, err := f.impersonation.IsOpen(f.ctx, first.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(BeFalse())

		open, err = f.impersonation.IsOpen(f.ctx, second.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(BeTrue())
	})

	DescribeTable("refuses invalid starts",
		func(actor func() *entities.User, targetID func() uint, expected error) {
			_, _, err := f.impersonation.Start(f.ctx, actor(), targetID())
			Expect(err).To(MatchError(expected))
		},
		Entry("self", func() *entities.User { return rootA }, func() uint { return rootA.ID }, errors.ErrImpersonationSelf),
		Entry("another super admin", func() *entities.User { return rootA }, func() uint { return rootC.ID }, errors.ErrImpersonationTarget),
		Entry("missing user", func() *entities.User { return rootA }, func() uint { return 9999 }, errors.ErrImpersonationTarget),
		Entry("plain admin as actor", func() *entities.User { return f.adminUser("adm@example.com") }, func() uint { return target.ID }, errors.ErrForbidden),
	)

	It("refuses an inactive target", func() {
		_, err := f.admin.SetActive(f.ctx, rootA, target.ID, false)
		Expect(err).NotTo(HaveOccurred())

		_, _, err = f.impersonation.Start(f.ctx, rootA, target.ID)
		Expect(err).To(MatchError(errors.ErrImpersonationTarget))
	})

	Describe("Stop", func() {
		It("closes the session opened by the same admin", func() {
			session, _, err := f.impersonation.Start(f.ctx, rootA, target.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(f.impersonation.Stop(f.ctx, rootC, session.ID)).To(MatchError(errors.ErrForbidden))
			Expect(f.impersonation.Stop(f.ctx, rootA, session.ID)).To(Succeed())
			Expect(openSessions()).To(BeZero())

			Expect(f.impersonation.Stop(f.ctx, rootA, session.ID)).To(MatchError(errors.ErrImpersonationNotActive))
		})
	})

	It("terminates a session without checking the actor", func() {
		session, _, err := f.impersonation.Start(f.ctx, rootA, target.ID)
		Expect(err).NotTo(HaveOccurred())

		f.impersonation.Terminate(f.ctx, session.ID)
		Expect(openSessions()).To(BeZero())
	})

	It("lists the history newest first", func() {
		_, _, err := f.impersonation.Start(f.ctx, rootA, target.ID)
		Expect(err).NotTo(HaveOccurred())
		second, _, err := f.impersonation.Start(f.ctx, rootC, target.ID)
		Expect(err).NotTo(HaveOccurred())

		history, err := f.impersonation.History(f.ctx, 1, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(history).To(HaveLen(2))
		Expect(history[0].ID).To(Equal(second.ID))
		Expect(history[1].IsOpen()).To(BeFalse())
	})
})
