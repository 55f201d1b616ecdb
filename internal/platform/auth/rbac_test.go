package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(req *http.Request, roles ...string) *http.Request {
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	return req.WithContext(ctx)
}

func TestRequireRole_Allowed(t *testing.T) {
	e := echo.New()
	req := contextWithRoles(httptest.NewRequest(http.MethodGet, "/", nil), RolePhysician)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := RequireRole(RolePhysician)(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := echo.New()
	req := contextWithRoles(httptest.NewRequest(http.MethodGet, "/", nil), RoleReceptionist)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(RolePhysician)(func(c echo.Context) error {
		t.Error("handler should not run")
		return nil
	})
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_AnyOf(t *testing.T) {
	e := echo.New()
	req := contextWithRoles(httptest.NewRequest(http.MethodGet, "/", nil), RoleReceptionist)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(RolePhysician, RoleReceptionist)(func(c echo.Context) error {
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHasRole(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserRolesKey, []string{RolePhysician})
	if !HasRole(ctx, RolePhysician) {
		t.Error("expected physician role")
	}
	if HasRole(ctx, RoleReceptionist) {
		t.Error("did not expect receptionist role")
	}
	if HasRole(context.Background(), RolePhysician) {
		t.Error("empty context should have no roles")
	}
}
