package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
)

var (
	adminP  = domain.Principal{ID: "A1", Name: "Ada", Email: "admin@example.com", Role: domain.RoleAdmin}
	editorP = domain.Principal{ID: "E1", Name: "Eve", Email: "editor@example.com", Role: domain.RoleEditor}
	viewerP = domain.Principal{ID: "V1", Name: "Vic", Email: "viewer@example.com", Role: domain.RoleViewer}
)

// newContext builds an echo context with the validator installed and, when p
// is non-nil, the principal stored the way the Authenticate middleware does.
func newContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if p != nil {
		req = req.WithContext(authz.WithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp["success"])
	}
	return resp
}
