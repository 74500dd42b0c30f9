package audittrail

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/claim-management/internal/transport"
	"github.com/frahmantamala/claim-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetByClaim(claimID int64) ([]*Entry, error)
	GetAll(limit, offset int) ([]*Entry, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) GetClaimAuditTrail(w http.ResponseWriter, r *http.Request) {
	claimID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	entries, err := h.Service.GetByClaim(claimID)
	if err != nil {
		h.Logger.Error("GetClaimAuditTrail: service error", "error", err, "claim_id", claimID)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", entries)
}

func (h *Handler) ListAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	entries, err := h.Service.GetAll(limit, offset)
	if err != nil {
		h.Logger.Error("ListAuditTrail: service error", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", map[string]interface{}{
		"audit_trails": entries,
		"limit":        limit,
		"offset":       offset,
	})
}
