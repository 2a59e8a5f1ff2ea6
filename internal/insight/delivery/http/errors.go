package http

import (
	"errors"
	"net/http"

	"insight-engine/internal/insight"
	"insight-engine/pkg/response"
)

// mapError translates domain errors into HTTP errors. Only the empty
// query is a request failure; everything else the use case degrades
// into diagnostics before returning.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, insight.ErrEmptyQuery):
		return response.NewHTTPError(http.StatusBadRequest, "query text is required")
	case errors.Is(err, insight.ErrMemoryUnavailable):
		return response.NewHTTPError(http.StatusServiceUnavailable, "memory store unavailable")
	default:
		return response.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
	}
}
