package enrollment_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/enrollment"
)

func TestEnrollmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Enrollment Service Suite")
}

type mockEnrollmentRepository struct {
	enrollments map[int64]*enrollment.Enrollment
	nextID      int64
}

func newMockEnrollmentRepository() *mockEnrollmentRepository {
	return &mockEnrollmentRepository{
		enrollments: make(map[int64]*enrollment.Enrollment),
		nextID:      1,
	}
}

func (m *mockEnrollmentRepository) Create(e *enrollment.Enrollment) error {
	e.ID = m.nextID
	m.nextID++
	m.enrollments[e.ID] = e
	return nil
}

func (m *mockEnrollmentRepository) GetByID(id int64) (*enrollment.Enrollment, error) {
	e, exists := m.enrollments[id]
	if !exists {
		return nil, internal.ErrEnrollmentNotFound
	}
	return e, nil
}

func (m *mockEnrollmentRepository) GetByProject(projectID int64) ([]*enrollment.Enrollment, error) {
	result := make([]*enrollment.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.ProjectID == projectID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepository) GetByUser(userID int64) ([]*enrollment.Enrollment, error) {
	result := make([]*enrollment.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepository) FindRoleHolder(projectID int64, role string, excludeID int64) (*enrollment.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.ProjectID == projectID && e.ProjectRole == role &&
			e.EnrollStatus == enrollment.EnrollStatusActive && e.ID != excludeID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEnrollmentRepository) Update(e *enrollment.Enrollment) error {
	m.enrollments[e.ID] = e
	return nil
}

func (m *mockEnrollmentRepository) Delete(id int64) error {
	delete(m.enrollments, id)
	return nil
}

type mockProjectChecker struct {
	known map[int64]bool
}

func (m *mockProjectChecker) Exists(projectID int64) (bool, error) {
	return m.known[projectID], nil
}

var _ = Describe("Enrollment Service", func() {
	var (
		repo     *mockEnrollmentRepository
		projects *mockProjectChecker
		svc      *enrollment.Service
	)

	BeforeEach(func() {
		repo = newMockEnrollmentRepository()
		projects = &mockProjectChecker{known: map[int64]bool{10: true}}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = enrollment.NewService(repo, projects, logger)
	})

	Describe("Create", func() {
		It("enrolls a user on a known project", func() {
			e, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      1,
				ProjectRole: enrollment.RoleDeveloper,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(e.EnrollStatus).To(Equal(enrollment.EnrollStatusActive))
		})

		It("rejects an unknown project", func() {
			_, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   99,
				UserID:      1,
				ProjectRole: enrollment.RoleDeveloper,
			})

			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})

		It("rejects a second active project manager on the same project", func() {
			_, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      1,
				ProjectRole: enrollment.RoleProjectManager,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      2,
				ProjectRole: enrollment.RoleProjectManager,
			})

			Expect(err).To(MatchError(internal.ErrDuplicateProjectManager))
		})

		It("rejects a second active quality assurance on the same project", func() {
			_, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      1,
				ProjectRole: enrollment.RoleQualityAssurance,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      2,
				ProjectRole: enrollment.RoleQualityAssurance,
			})

			Expect(err).To(MatchError(internal.ErrDuplicateQualityAssure))
		})

		It("allows many developers on the same project", func() {
			for userID := int64(1); userID <= 3; userID++ {
				_, err := svc.Create(enrollment.CreateEnrollmentDTO{
					ProjectID:   10,
					UserID:      userID,
					ProjectRole: enrollment.RoleDeveloper,
				})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("allows a new project manager after the old one went inactive", func() {
			first, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      1,
				ProjectRole: enrollment.RoleProjectManager,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(first.ID, enrollment.UpdateEnrollmentDTO{
				ProjectRole:  enrollment.RoleProjectManager,
				EnrollStatus: enrollment.EnrollStatusInactive,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      2,
				ProjectRole: enrollment.RoleProjectManager,
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("refuses reactivating a role that gained another holder meanwhile", func() {
			first, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      1,
				ProjectRole: enrollment.RoleProjectManager,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(first.ID, enrollment.UpdateEnrollmentDTO{
				ProjectRole:  enrollment.RoleProjectManager,
				EnrollStatus: enrollment.EnrollStatusInactive,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      2,
				ProjectRole: enrollment.RoleProjectManager,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(first.ID, enrollment.UpdateEnrollmentDTO{
				ProjectRole:  enrollment.RoleProjectManager,
				EnrollStatus: enrollment.EnrollStatusActive,
			})
			Expect(err).To(MatchError(internal.ErrDuplicateProjectManager))
		})
	})

	Describe("ProjectManager", func() {
		It("returns the active manager enrollment", func() {
			created, err := svc.Create(enrollment.CreateEnrollmentDTO{
				ProjectID:   10,
				UserID:      1,
				ProjectRole: enrollment.RoleProjectManager,
			})
			Expect(err).NotTo(HaveOccurred())

			manager, err := svc.ProjectManager(10)

			Expect(err).NotTo(HaveOccurred())
			Expect(manager.ID).To(Equal(created.ID))
		})

		It("fails when no manager is enrolled", func() {
			_, err := svc.ProjectManager(10)

			Expect(err).To(MatchError(internal.ErrManagerNotFound))
		})
	})
})
