package enrollment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/claim-management/internal/transport"
	"github.com/frahmantamala/claim-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(dto CreateEnrollmentDTO) (*Enrollment, error)
	GetByID(id int64) (*Enrollment, error)
	GetByProject(projectID int64) ([]*Enrollment, error)
	GetByUser(userID int64) ([]*Enrollment, error)
	Update(id int64, dto UpdateEnrollmentDTO) (*Enrollment, error)
	Delete(id int64) error
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

func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var dto CreateEnrollmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateEnrollment: service error", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "enrollment created", e)
}

func (h *Handler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid enrollment ID")
		return
	}

	e, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", e)
}

// ListEnrollments filters by project_id or user_id query parameters.
func (h *Handler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	if projectStr := r.URL.Query().Get("project_id"); projectStr != "" {
		projectID, err := strconv.ParseInt(projectStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid project_id")
			return
		}
		enrollments, err := h.Service.GetByProject(projectID)
		if err != nil {
			h.WriteServiceError(w, err)
			return
		}
		h.WriteSuccess(w, http.StatusOK, "ok", enrollments)
		return
	}

	if userStr := r.URL.Query().Get("user_id"); userStr != "" {
		userID, err := strconv.ParseInt(userStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		enrollments, err := h.Service.GetByUser(userID)
		if err != nil {
			h.WriteServiceError(w, err)
			return
		}
		h.WriteSuccess(w, http.StatusOK, "ok", enrollments)
		return
	}

	h.WriteError(w, http.StatusBadRequest, "project_id or user_id query parameter is required")
}

func (h *Handler) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid enrollment ID")
		return
	}

	var dto UpdateEnrollmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateEnrollment: service error", "error", err, "enrollment_id", id)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "enrollment updated", e)
}

func (h *Handler) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid enrollment ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteEnrollment: service error", "error", err, "enrollment_id", id)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "enrollment deleted", nil)
}
