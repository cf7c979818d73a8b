package httpapp

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/cesargomez89/fullstack/internal/constants"
	apperrors "github.com/cesargomez89/fullstack/internal/errors"
	"github.com/cesargomez89/fullstack/internal/http/dto"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/metrics"
)

// envelope is a success response body; respond adds "success": true.
type envelope map[string]interface{}

// base is embedded by every app handler. It writes the success and error
// envelopes and logs failures once.
type base struct {
	Logger *logger.Logger
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", constants.MimeTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *base) respond(w http.ResponseWriter, status int, env envelope) {
	if env == nil {
		env = envelope{}
	}
	env["success"] = true
	writeJSON(w, status, env)
}

// fail writes the error envelope for a failed read.
func (h *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.writeError(w, r, apperrors.From(err))
}

// failWrite writes the error envelope for a failed create, update or delete.
func (h *base) failWrite(w http.ResponseWriter, r *http.Request, err error) {
	h.writeError(w, r, apperrors.FromMutation(err))
}

func (h *base) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.writeError(w, r, apperrors.BadRequest(err.Error(), err))
}

func (h *base) invalid(w http.ResponseWriter, r *http.Request, errs []dto.ValidationError) {
	e := apperrors.Validation(dto.ToMap(errs))
	e.Message = dto.ToResponse(errs)
	h.writeError(w, r, e)
}

func (h *base) writeError(w http.ResponseWriter, r *http.Request, e *apperrors.Error) {
	logError(h.Logger, r, e)
	writeJSON(w, e.HTTPStatus(), e.ToResponse())
}

func logError(log *logger.Logger, r *http.Request, e *apperrors.Error) {
	metrics.HTTPErrorsTotal.WithLabelValues(string(e.Type)).Inc()
	if log == nil {
		return
	}
	log.Log(r.Context(), e.LogLevel(), "Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", e.HTTPStatus(),
		"error", e.Error(),
	)
}

// idParam reads the {id} route parameter. A non-numeric id does not name
// any resource, so it is reported as not found.
func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, apperrors.NotFound("invalid id " + chi.URLParam(r, "id"))
	}
	return id, nil
}
