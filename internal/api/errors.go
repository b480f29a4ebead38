package api

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/worksheet"
)

var (
	ErrDraftingDisabled = errors.New("persona drafting is not configured")
	ErrUploadTooLarge   = errors.New("attachment exceeds upload limit")
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrSessionNotFound), errors.Is(err, worksheet.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, worksheet.ErrInvalidInput), errors.Is(err, worksheet.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrTabDisabled):
		return http.StatusForbidden
	case errors.Is(err, worksheet.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrDraftingDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
