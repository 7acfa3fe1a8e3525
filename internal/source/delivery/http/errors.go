package http

import (
	"errors"
	"net/http"

	"scm-event-dispatcher/internal/source"
	pkgErrors "scm-event-dispatcher/pkg/errors"
)

// mapError translates registry errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, source.ErrSourceNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "source not found")
	case errors.Is(err, source.ErrMissingID),
		errors.Is(err, source.ErrMissingOwner),
		errors.Is(err, source.ErrMissingRepo),
		errors.Is(err, source.ErrInvalidFilter):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "registry unavailable")
	}
}
