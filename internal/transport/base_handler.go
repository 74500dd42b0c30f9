package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/pkg/logger"
)

// APIResponse is the uniform envelope every endpoint returns.
type APIResponse struct {
	IsSuccess bool        `json:"is_success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteSuccess writes the success envelope with payload.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeJSON(w, status, APIResponse{IsSuccess: true, Message: message, Data: data})
}

// WriteError writes the failure envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeJSON(w, status, APIResponse{IsSuccess: false, Message: message})
}

// WriteServiceError maps a service error onto the envelope. AppErrors keep
// their status and message; anything else becomes a generic failure and the
// cause stays in the logs only.
func (h *BaseHandler) WriteServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.writeJSON(w, appErr.StatusCode, APIResponse{IsSuccess: false, Message: appErr.Message})
		return
	}
	h.Logger.Error("unexpected service error", "error", err)
	h.writeJSON(w, http.StatusInternalServerError, APIResponse{IsSuccess: false, Message: "internal server error"})
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
