package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/pkg/metrics"
)

// errorResponse is the failure form of the response envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var unauth *authz.UnauthenticatedError
	if errors.As(err, &unauth) {
		metrics.AuthFailuresTotal.WithLabelValues(reasonLabel(unauth.Reason)).Inc()
		logDenied(log, c, err)
		return http.StatusUnauthorized, "unauthenticated: " + unauth.Reason
	}

	var forbidden *authz.ForbiddenError
	if errors.As(err, &forbidden) {
		gate := "ownership"
		if len(forbidden.Required) > 0 {
			gate = "role"
		}
		metrics.AuthzDenialsTotal.WithLabelValues(gate, string(forbidden.Actual)).Inc()
		logDenied(log, c, err)
		return http.StatusForbidden, forbidden.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrInvalidOperation):
		metrics.AuthzDenialsTotal.WithLabelValues("self_protection", callerRole(c)).Inc()
		logDenied(log, c, err)
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many login attempts, try again later"
	}

	// Unexpected error or store failure: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func logDenied(log zerolog.Logger, c echo.Context, err error) {
	log.Debug().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request denied")
}

// callerRole returns the role of the authenticated caller, or "none".
func callerRole(c echo.Context) string {
	if p, ok := authz.PrincipalFrom(c.Request().Context()); ok {
		return string(p.Role)
	}
	return "none"
}

// reasonLabel converts an authentication failure reason to a metric label.
func reasonLabel(reason string) string {
	switch reason {
	case authz.ReasonNoToken:
		return "no_token"
	case authz.ReasonMalformedHeader:
		return "malformed_header"
	case authz.ReasonInvalidToken:
		return "invalid_token"
	case authz.ReasonPrincipalNotFound:
		return "principal_not_found"
	case authz.ReasonNoPrincipal:
		return "no_principal"
	default:
		return "other"
	}
}
