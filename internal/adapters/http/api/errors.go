package api

import (
	"errors"
	"net/http"

	service "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/domain/auth"
	"github.com/rotisserie/eris"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrMissingToken = errors.New("missing bearer token")
)

// WrapKind tags err with an error kind and the operation that failed.
func WrapKind(op string, kind, err error) error {
	return eris.Wrapf(kind, "%s: %v", op, err)
}

// NewKind returns an error of the given kind for op.
func NewKind(op string, kind error) error {
	return eris.Wrap(kind, op)
}

// statusFor maps an error kind to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidChartType):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrInvalidPhoto):
		return http.StatusBadRequest, "invalid_photo"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, ErrMissingToken), errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrEmployeeNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNoPhoto):
		return http.StatusNotFound, "no_photo"
	case errors.Is(err, service.ErrPhotoTooLarge):
		return http.StatusRequestEntityTooLarge, "photo_too_large"
	case errors.Is(err, auth.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// message is the text shown to clients. Credential failures are reported
// verbatim; everything else uses the root error kind.
func message(err error) string {
	for _, kind := range []error{
		auth.ErrInvalidCredentials,
		auth.ErrRateLimited,
		ErrMissingToken,
		service.ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}
