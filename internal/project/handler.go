package project

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
	Create(dto CreateProjectDTO) (*Project, error)
	GetByID(id int64) (*Project, error)
	GetAll(limit, offset int) ([]*Project, error)
	Update(id int64, dto UpdateProjectDTO) (*Project, error)
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

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateProject: service error", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "project created", p)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	p, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", p)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	projects, err := h.Service.GetAll(limit, offset)
	if err != nil {
		h.Logger.Error("ListProjects: service error", "error", err)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "ok", map[string]interface{}{
		"projects": projects,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateProject: service error", "error", err, "project_id", id)
		h.WriteServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "project updated", p)
}
