package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
	"github.com/VGOT23/rbac-project/internal/infrastructure/token"
)

type stubLimiter struct {
	blocked  bool
	allowErr error
	failures map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int)}
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return !l.blocked, l.allowErr
}

func (l *stubLimiter) Fail(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}

func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

func newAuthSvc(t *testing.T, repo *stubUserRepo, limiter LoginLimiter) (*AuthService, *token.JWTCodec) {
	t.Helper()
	codec, err := token.NewJWTCodec("secret")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return NewAuthService(repo, codec, time.Hour, limiter, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newAuthSvc(t, repo, nil)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Eve", Email: "  Editor@Example.com ", Password: "pass123", Role: "Editor",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Email != "editor@example.com" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.Role != domain.RoleEditor {
		t.Fatalf("unexpected role: %s", res.User.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := codec.Verify(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != res.User.ID {
		t.Fatalf("token subject %q, want %q", claims.Subject, res.User.ID)
	}
}

func TestAuthService_Register_DefaultsToViewer(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo(), nil)

	res, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Vic", Email: "v@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Role != domain.RoleViewer {
		t.Fatalf("expected viewer, got %s", res.User.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@example.com", Password: "pass123"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := svc.Register(ctx, ports.RegisterInput{Name: "A", Email: "a@example.com", Password: "123"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	if _, err := svc.Register(ctx, ports.RegisterInput{Name: "A", Email: "a@example.com", Password: "pass123", Role: "superuser"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for unknown role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo(), nil)
	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass123"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_RejectsAdminRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo, nil)

	for _, role := range []string{"admin", " ADMIN "} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{
			Name: "Mallory", Email: "mallory@example.com", Password: "pass123", Role: role,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %q: expected ErrForbidden, got %v", role, err)
		}
	}
	if _, err := repo.FindByEmail(context.Background(), "mallory@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no account to be stored, got %v", err)
	}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc, codec := newAuthSvc(t, newStubUserRepo(), nil)

	res, err := svc.CreateAdmin(context.Background(), ports.RegisterInput{
		Name: "Root", Email: "Root@Example.com", Password: "pass123", Role: "viewer",
	})
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if res.User.Role != domain.RoleAdmin || res.User.Email != "root@example.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if claims, err := codec.Verify(res.Token); err != nil || claims.Subject != res.User.ID {
		t.Fatalf("token invalid: %v", err)
	}

	_, err = svc.CreateAdmin(context.Background(), ports.RegisterInput{Name: "Root", Email: "root@example.com", Password: "pass123"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	limiter := newStubLimiter()
	svc, codec := newAuthSvc(t, newStubUserRepo(), limiter)

	reg, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret!", Role: "editor"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "CAROL@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	claims, err := codec.Verify(res.Token)
	if err != nil || claims.Subject != reg.User.ID {
		t.Fatalf("token invalid: %v", err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected attempts reset after success, got %d", limiter.resets)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	limiter := newStubLimiter()
	svc, _ := newAuthSvc(t, newStubUserRepo(), limiter)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures["dave@example.com"] != 1 {
		t.Fatalf("expected failure to be recorded, got %v", limiter.failures)
	}
}

func TestAuthService_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	limiter := newStubLimiter()
	limiter.blocked = true
	svc, _ := newAuthSvc(t, newStubUserRepo(), limiter)

	if _, err := svc.Login(context.Background(), "dave@example.com", "whatever"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterFailureFailsOpen(t *testing.T) {
	limiter := newStubLimiter()
	limiter.allowErr = errors.New("redis down")
	svc, _ := newAuthSvc(t, newStubUserRepo(), limiter)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Erin", Email: "erin@example.com", Password: "goodpass"})
	if _, err := svc.Login(context.Background(), "erin@example.com", "goodpass"); err != nil {
		t.Fatalf("expected login to proceed when limiter is down, got %v", err)
	}
}

func TestAuthService_Login_StoreUnavailable(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = domain.ErrStoreUnavailable
	svc, _ := newAuthSvc(t, repo, nil)

	if _, err := svc.Login(context.Background(), "x@example.com", "pass"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
