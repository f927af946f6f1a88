package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
)

func runErrorHandler(t *testing.T, log zerolog.Logger, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/posts/P1", nil), rec)

	NewHTTPErrorHandler(log)(err, c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", &authz.UnauthenticatedError{Reason: authz.ReasonNoToken}, http.StatusUnauthorized},
		{"expired token", &authz.UnauthenticatedError{Reason: authz.ReasonInvalidToken, Err: domain.ErrTokenExpired}, http.StatusUnauthorized},
		{"role gate", &authz.ForbiddenError{Required: []domain.Role{domain.RoleAdmin}, Actual: domain.RoleViewer}, http.StatusForbidden},
		{"ownership", &authz.ForbiddenError{Actual: domain.RoleEditor, Message: "you may only modify your own posts"}, http.StatusForbidden},
		{"self protection", authz.GuardSelfAction("A1", "A1"), http.StatusForbidden},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound},
		{"wrapped user not found", fmt.Errorf("lookup: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"store unavailable", fmt.Errorf("find user: %w", domain.ErrStoreUnavailable), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := runErrorHandler(t, zerolog.Nop(), tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHTTPErrorHandler_Messages(t *testing.T) {
	_, body := runErrorHandler(t, zerolog.Nop(), &authz.UnauthenticatedError{Reason: authz.ReasonPrincipalNotFound, Err: domain.ErrUserNotFound})
	assert.Equal(t, "unauthenticated: principal not found", body.Message)

	_, body = runErrorHandler(t, zerolog.Nop(), authz.GuardSelfAction("A1", "A1"))
	assert.Contains(t, body.Message, "cannot modify or delete your own account")

	_, body = runErrorHandler(t, zerolog.Nop(), fmt.Errorf("find user: %w", domain.ErrStoreUnavailable))
	assert.Equal(t, "internal server error", body.Message)
}

func TestHTTPErrorHandler_LogsOnlyServerFaults(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)

	runErrorHandler(t, log, domain.ErrPostNotFound)
	runErrorHandler(t, log, &authz.ForbiddenError{Actual: domain.RoleEditor, Message: "you may only modify your own posts"})
	assert.Zero(t, buf.Len(), "caller-side outcomes must not be logged at info or above")

	runErrorHandler(t, log, fmt.Errorf("delete post: %w", domain.ErrStoreUnavailable))
	assert.Contains(t, buf.String(), "unhandled error")
	assert.Contains(t, buf.String(), "store unavailable")
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusOK))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
