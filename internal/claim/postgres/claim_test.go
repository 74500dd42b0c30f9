package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/claim"
	claimPostgres "github.com/frahmantamala/claim-management/internal/claim/postgres"
	claimDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/claim"
)

func TestClaimRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Claim Repository Suite")
}

var _ = Describe("Claim Repository", func() {
	var (
		db   *gorm.DB
		repo claim.Repository
	)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	newClaim := func() *claim.Claim {
		return &claim.Claim{
			UserID:            1,
			ProjectID:         10,
			ClaimStatus:       claim.StatusDraft,
			TotalWorkingHours: 8,
			TotalClaimAmount:  800,
			Remark:            "overtime",
			Details: []claim.Detail{
				{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(13 * time.Hour)},
				{FromTime: day.Add(14 * time.Hour), ToTime: day.Add(18 * time.Hour)},
			},
		}
	}

	BeforeEach(func() {
		var err error
		// SQLite in-memory database keeps repository tests hermetic
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&claimDatamodel.ClaimRequest{}, &claimDatamodel.ClaimDetail{})
		Expect(err).NotTo(HaveOccurred())

		repo = claimPostgres.NewClaimRepository(db)
	})

	Describe("Create", func() {
		It("persists the claim with its details in one shot", func() {
			c := newClaim()

			err := repo.Create(c)

			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).To(BeNumerically(">", 0))
			Expect(c.Details).To(HaveLen(2))
			Expect(c.Details[0].ClaimID).To(Equal(c.ID))
		})
	})

	Describe("GetByID", func() {
		It("loads the claim with its details", func() {
			c := newClaim()
			Expect(repo.Create(c)).To(Succeed())

			loaded, err := repo.GetByID(c.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ClaimStatus).To(Equal(claim.StatusDraft))
			Expect(loaded.Details).To(HaveLen(2))
			Expect(loaded.TotalClaimAmount).To(Equal(int64(800)))
		})

		It("returns claim not found for an unknown id", func() {
			_, err := repo.GetByID(999)

			Expect(err).To(MatchError(internal.ErrClaimNotFound))
		})
	})

	Describe("UpdateStatus", func() {
		It("changes only the status", func() {
			c := newClaim()
			Expect(repo.Create(c)).To(Succeed())

			err := repo.UpdateStatus(c.ID, claim.StatusPendingApproval)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ClaimStatus).To(Equal(claim.StatusPendingApproval))
			Expect(loaded.TotalClaimAmount).To(Equal(int64(800)))
		})

		It("returns claim not found for an unknown id", func() {
			err := repo.UpdateStatus(999, claim.StatusPendingApproval)

			Expect(err).To(MatchError(internal.ErrClaimNotFound))
		})
	})

	Describe("Update", func() {
		It("replaces the details and totals", func() {
			c := newClaim()
			Expect(repo.Create(c)).To(Succeed())

			c.Remark = "half day"
			c.TotalWorkingHours = 4
			c.TotalClaimAmount = 400
			c.Details = []claim.Detail{
				{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(13 * time.Hour)},
			}

			err := repo.Update(c)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Remark).To(Equal("half day"))
			Expect(loaded.Details).To(HaveLen(1))
			Expect(loaded.TotalClaimAmount).To(Equal(int64(400)))
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			first := newClaim()
			Expect(repo.Create(first)).To(Succeed())

			second := newClaim()
			second.UserID = 2
			Expect(repo.Create(second)).To(Succeed())
			Expect(repo.UpdateStatus(second.ID, claim.StatusPendingApproval)).To(Succeed())
		})

		It("filters by user", func() {
			claims, err := repo.GetAll(claim.ListFilter{UserID: 2})

			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(1))
			Expect(claims[0].UserID).To(Equal(int64(2)))
		})

		It("filters by status", func() {
			claims, err := repo.GetAll(claim.ListFilter{Status: string(claim.StatusPendingApproval)})

			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(1))
		})

		It("returns everything without filters", func() {
			claims, err := repo.GetAll(claim.ListFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(2))
		})
	})

	Describe("PaidBetween", func() {
		It("returns only claims paid inside the window", func() {
			paid := newClaim()
			Expect(repo.Create(paid)).To(Succeed())
			Expect(repo.UpdateStatus(paid.ID, claim.StatusPaid)).To(Succeed())

			draft := newClaim()
			Expect(repo.Create(draft)).To(Succeed())

			from := time.Now().Add(-time.Hour)
			to := time.Now().Add(time.Hour)

			claims, err := repo.PaidBetween(from, to)

			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(1))
			Expect(claims[0].ID).To(Equal(paid.ID))
		})
	})
})
