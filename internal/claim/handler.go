package claim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/claim-management/internal/auth"
	"github.com/frahmantamala/claim-management/internal/transport"
	"github.com/frahmantamala/claim-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(actor *auth.User, dto CreateClaimDTO) (*Claim, error)
	GetByID(actor *auth.User, id int64) (*Claim, error)
	List(actor *auth.User, filter ListFilter) ([]*Claim, error)
	Update(actor *auth.User, id int64, dto UpdateClaimDTO) (*Claim, error)
	Submit(ctx context.Context, actor *auth.User, id int64) (*Claim, error)
	Approve(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error)
	Reject(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error)
	Return(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error)
	Cancel(actor *auth.User, id int64) (*Claim, error)
	Pay(ctx context.Context, actor *auth.User, id int64) (*Claim, error)
	ApproveBatch(ctx context.Context, actor *auth.User, ids []int64) ([]*Claim, error)
	PayBatch(ctx context.Context, actor *auth.User, ids []int64) ([]*Claim, error)
	ExportPaidClaims(actor *auth.User, month time.Time) (*bytes.Buffer, string, error)
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

func (h *Handler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(actor, dto)
	if err != nil {
		h.Logger.Error("CreateClaim: service error", "error", err, "user_id", actor.ID)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "claim created", c)
}

func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	c, err := h.Service.GetByID(actor, id)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", c)
}

func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	filter := ListFilter{Limit: 20, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}
	filter.Status = r.URL.Query().Get("status")
	if projectStr := r.URL.Query().Get("project_id"); projectStr != "" {
		if p, err := strconv.ParseInt(projectStr, 10, 64); err == nil {
			filter.ProjectID = p
		}
	}

	claims, err := h.Service.List(actor, filter)
	if err != nil {
		h.Logger.Error("ListClaims: service error", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", map[string]interface{}{
		"claims": claims,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (h *Handler) UpdateClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	var dto UpdateClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Update(actor, id, dto)
	if err != nil {
		h.Logger.Error("UpdateClaim: service error", "error", err, "claim_id", id)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "claim updated", c)
}

func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "claim submitted", func(ctx context.Context, actor *auth.User, id int64, _ string) (*Claim, error) {
		return h.Service.Submit(ctx, actor, id)
	})
}

func (h *Handler) ApproveClaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "claim approved", h.Service.Approve)
}

func (h *Handler) RejectClaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "claim rejected", h.Service.Reject)
}

func (h *Handler) ReturnClaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "claim returned", h.Service.Return)
}

func (h *Handler) CancelClaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "claim cancelled", func(_ context.Context, actor *auth.User, id int64, _ string) (*Claim, error) {
		return h.Service.Cancel(actor, id)
	})
}

func (h *Handler) PayClaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "claim paid", func(ctx context.Context, actor *auth.User, id int64, _ string) (*Claim, error) {
		return h.Service.Pay(ctx, actor, id)
	})
}

// transition factors the shared shape of all single-claim state changes: the
// claim id comes from the path, the optional remark from the body.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, successMsg string,
	fn func(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error)) {

	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	var dto RemarkDTO
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	c, err := fn(r.Context(), actor, id, dto.Remark)
	if err != nil {
		h.Logger.Error("claim transition failed", "error", err, "claim_id", id, "actor_id", actor.ID)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, successMsg, c)
}

func (h *Handler) ApproveClaimBatch(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, "claims approved", h.Service.ApproveBatch)
}

func (h *Handler) PayClaimBatch(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, "claims paid", h.Service.PayBatch)
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request, successMsg string,
	fn func(ctx context.Context, actor *auth.User, ids []int64) ([]*Claim, error)) {

	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto BatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	claims, err := fn(r.Context(), actor, dto.ClaimIDs)
	if err != nil {
		h.Logger.Error("batch transition failed", "error", err, "actor_id", actor.ID)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, successMsg, map[string]interface{}{
		"claims": claims,
	})
}

// DownloadPaidClaims streams an xlsx of the month's paid claims. The month
// defaults to the current one and can be overridden with ?month=YYYY-MM.
func (h *Handler) DownloadPaidClaims(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	month := time.Now().UTC()
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := time.Parse("2006-01", monthStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	buf, filename, err := h.Service.ExportPaidClaims(actor, month)
	if err != nil {
		h.Logger.Error("DownloadPaidClaims: service error", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("DownloadPaidClaims: failed to stream workbook", "error", err)
	}
}
