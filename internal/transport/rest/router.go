package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/claim-management/internal/audittrail"
	"github.com/frahmantamala/claim-management/internal/auth"
	"github.com/frahmantamala/claim-management/internal/claim"
	"github.com/frahmantamala/claim-management/internal/enrollment"
	"github.com/frahmantamala/claim-management/internal/project"
	"github.com/frahmantamala/claim-management/internal/transport/middleware"
	"github.com/frahmantamala/claim-management/internal/transport/swagger"
	"github.com/frahmantamala/claim-management/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Project    *project.Handler
	Enrollment *enrollment.Handler
	Claim      *claim.Handler
	AuditTrail *audittrail.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid access token.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", h.User.GetCurrentUser)

				ur.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireAdmin())
					ar.Post("/", h.User.CreateUser)
					ar.Get("/", h.User.ListUsers)
					ar.Get("/{id}", h.User.GetUser)
					ar.Patch("/{id}", h.User.UpdateUser)
					ar.Delete("/{id}", h.User.DeleteUser)
				})
			})

			pr.Route("/projects", func(pjr chi.Router) {
				pjr.Get("/", h.Project.ListProjects)
				pjr.Get("/{id}", h.Project.GetProject)

				pjr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireAdmin())
					ar.Post("/", h.Project.CreateProject)
					ar.Patch("/{id}", h.Project.UpdateProject)
				})
			})

			pr.Route("/project-enrollments", func(er chi.Router) {
				er.Get("/", h.Enrollment.ListEnrollments)
				er.Get("/{id}", h.Enrollment.GetEnrollment)

				er.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireAdmin())
					ar.Post("/", h.Enrollment.CreateEnrollment)
					ar.Patch("/{id}", h.Enrollment.UpdateEnrollment)
					ar.Delete("/{id}", h.Enrollment.DeleteEnrollment)
				})
			})

			pr.Route("/claims", func(cr chi.Router) {
				cr.Post("/", h.Claim.CreateClaim)
				cr.Get("/", h.Claim.ListClaims)
				cr.Get("/{id}", h.Claim.GetClaim)
				cr.Patch("/{id}", h.Claim.UpdateClaim)
				cr.Post("/{id}/submit", h.Claim.SubmitClaim)
				cr.Post("/{id}/cancel", h.Claim.CancelClaim)
				cr.Get("/{id}/audit-trails", h.AuditTrail.GetClaimAuditTrail)

				cr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireApprover())
					ar.Post("/{id}/approve", h.Claim.ApproveClaim)
					ar.Post("/{id}/reject", h.Claim.RejectClaim)
					ar.Post("/{id}/return", h.Claim.ReturnClaim)
					ar.Post("/approve-batch", h.Claim.ApproveClaimBatch)
				})

				cr.Group(func(fr chi.Router) {
					fr.Use(h.Auth.RequireFinance())
					fr.Post("/{id}/paid", h.Claim.PayClaim)
					fr.Post("/paid-batch", h.Claim.PayClaimBatch)
					fr.Get("/paid/download", h.Claim.DownloadPaidClaims)
				})
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin())
				ar.Get("/audit-trails", h.AuditTrail.ListAuditTrail)
			})
		})
	})
}
