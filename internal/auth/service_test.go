package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockUserRepository struct {
	usersByEmail map[string]credentials
	usersByID    map[int64]*auth.User
}

type credentials struct {
	userID       int64
	passwordHash string
	isActive     bool
}

func (m *mockUserRepository) GetCredentialsByEmail(email string) (int64, string, bool, error) {
	c, exists := m.usersByEmail[email]
	if !exists {
		return 0, "", false, internal.ErrUserNotFound
	}
	return c.userID, c.passwordHash, c.isActive, nil
}

func (m *mockUserRepository) GetUserByID(userID int64) (*auth.User, error) {
	u, exists := m.usersByID[userID]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo *mockUserRepository
		svc  *auth.Service
	)

	password := "secret123"

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &mockUserRepository{
			usersByEmail: map[string]credentials{
				"staff@mail.com":    {userID: 1, passwordHash: string(hash), isActive: true},
				"inactive@mail.com": {userID: 2, passwordHash: string(hash), isActive: false},
			},
			usersByID: map[int64]*auth.User{
				1: {ID: 1, Email: "staff@mail.com", Name: "Sari Staff", Role: auth.RoleStaff},
				2: {ID: 2, Email: "inactive@mail.com", Name: "Gone Person", Role: auth.RoleStaff},
			},
		}

		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		svc = auth.NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("returns tokens for valid credentials", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "staff@mail.com", Password: password})

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "staff@mail.com", Password: "wrong"})

			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error as a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "nobody@mail.com", Password: password})

			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("rejects an inactive account", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "inactive@mail.com", Password: password})

			Expect(err).To(MatchError(internal.ErrUserInactive))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("round-trips the user claims", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "staff@mail.com", Password: password})
			Expect(err).NotTo(HaveOccurred())

			claims, err := svc.ValidateAccessToken(tokens.AccessToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("1"))
			Expect(claims.Email).To(Equal("staff@mail.com"))
			Expect(claims.Role).To(Equal(auth.RoleStaff))
		})

		It("rejects garbage", func() {
			_, err := svc.ValidateAccessToken("not-a-token")

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a fresh pair from a valid refresh token", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "staff@mail.com", Password: password})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := svc.RefreshTokens(tokens.RefreshToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
		})

		It("picks up a role change on refresh", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "staff@mail.com", Password: password})
			Expect(err).NotTo(HaveOccurred())

			repo.usersByID[1].Role = auth.RoleApprover

			refreshed, err := svc.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Role).To(Equal(auth.RoleApprover))
		})
	})
})

var _ = Describe("Roles", func() {
	userWithRole := func(role string) *auth.User {
		return &auth.User{ID: 1, Role: role}
	}

	It("limits approval to admin, approver and finance", func() {
		Expect(userWithRole(auth.RoleAdmin).CanApproveClaims()).To(BeTrue())
		Expect(userWithRole(auth.RoleApprover).CanApproveClaims()).To(BeTrue())
		Expect(userWithRole(auth.RoleFinance).CanApproveClaims()).To(BeTrue())
		Expect(userWithRole(auth.RoleStaff).CanApproveClaims()).To(BeFalse())
	})

	It("limits payment to admin and finance", func() {
		Expect(userWithRole(auth.RoleFinance).CanPayClaims()).To(BeTrue())
		Expect(userWithRole(auth.RoleAdmin).CanPayClaims()).To(BeTrue())
		Expect(userWithRole(auth.RoleApprover).CanPayClaims()).To(BeFalse())
		Expect(userWithRole(auth.RoleStaff).CanPayClaims()).To(BeFalse())
	})
})
