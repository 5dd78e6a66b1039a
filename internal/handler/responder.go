package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/middleware"
)

// responder holds what every handler needs to decode requests and write the
// JSON envelopes.
type responder struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	return responder{validator: validator.New(), logger: logger}
}

// decode reads a JSON body into dst and validates it.
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return false
	}
	return h.check(w, dst)
}

// check validates a decoded request or query struct.
func (h responder) check(w http.ResponseWriter, v any) bool {
	if err := h.validator.Struct(v); err != nil {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// actor returns the authenticated caller. Routes behind RequireAuth always
// have one.
func (h responder) actor(r *http.Request) domain.Actor {
	actor, _ := middleware.ActorFrom(r.Context())
	return actor
}

func (h responder) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		h.respondError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter. A malformed value is
// reported as ok=false.
func queryInt(r *http.Request, key string) (*int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// pageParams reads page and limit, defaulting to 1 and 10.
func pageParams(r *http.Request) (int, int, bool) {
	page, ok := queryInt(r, "page")
	if !ok {
		return 0, 0, false
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		return 0, 0, false
	}
	p, l := 1, 10
	if page != nil {
		p = int(*page)
	}
	if limit != nil {
		l = int(*limit)
	}
	return p, l, true
}

func (h responder) handleServiceError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation, domain.KindRejected:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindUnauthorized:
		status = http.StatusUnauthorized
	case domain.KindForbidden:
		status = http.StatusForbidden
	}
	h.respondError(w, status, de.Code, de.Message)
}

func (h responder) respondJSON(w http.ResponseWriter, status int, resp dto.Response) {
	resp.Success = true
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondData(w http.ResponseWriter, status int, message string, data any) {
	h.respondJSON(w, status, dto.Response{Message: message, Data: data})
}

func (h responder) respondError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Success: false, Error: code, Message: message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// respondFile writes a binary download.
func (h responder) respondFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write file", slog.Any("error", err))
	}
}
