package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn   func(ctx context.Context, tokenID string, expiresAt time.Time) error
	currentFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

// newTestContext builds an echo context with the validator installed, the way
// the router configures it.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, userID string) echo.Context {
	c.Set(CtxUserID, userID)
	c.Set(CtxRole, domain.RoleAnalyst)
	return c
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if in.Username != "alice" || in.Email != "a@example.com" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "tok", &domain.User{ID: "u1", Username: in.Username, Role: domain.RoleAnalyst, PasswordHash: "hash"}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/register",
		`{"username":"alice","email":"a@example.com","password":"secret1","name":"Alice"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["token"] != "tok" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != "analyst" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/register",
		`{"username":"bob","email":"b@example.com","password":"secret1","name":"Bob"}`)

	_ = NewAuthHandler(stub).Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	cases := map[string]string{
		"not json":       "not-json",
		"bad email":      `{"username":"bob","email":"nope","password":"secret1","name":"Bob"}`,
		"short password": `{"username":"bob","email":"b@example.com","password":"123","name":"Bob"}`,
		"unknown role":   `{"username":"bob","email":"b@example.com","password":"secret1","name":"Bob","role":"root"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/register", body)
			_ = NewAuthHandler(stub).Register(c)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/login", `{"username":"alice","password":"secret"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/login", `{"username":"alice","password":"bad"}`)

	_ = NewAuthHandler(stub).Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/login", `{"username":"alice"}`)

	_ = NewAuthHandler(stub).Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	exp := time.Now().Add(time.Hour).UTC()
	var gotID string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			gotID = tokenID
			if !expiresAt.Equal(exp) {
				t.Fatalf("unexpected expiry %v", expiresAt)
			}
			return nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/logout", "")
	c.Set(CtxTokenID, "jti-1")
	c.Set(CtxExpiresAt, exp)

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != "jti-1" {
		t.Fatalf("expected jti-1 revoked, got %q", gotID)
	}
	if resp := decodeBody(t, rec); resp["success"] != true {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestAuthHandler_Logout_WithoutToken(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/api/logout", "")

	err := NewAuthHandler(&stubAuthService{}).Logout(c)

	if !errors.Is(err, echo.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: "u1", Username: "alice", PasswordHash: "hash"}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/user", "")
	withUser(c, "u1")

	if err := NewAuthHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["id"] != "u1" {
		t.Fatalf("unexpected body %v", resp)
	}
	if _, ok := resp["PasswordHash"]; ok {
		t.Fatal("password hash serialized")
	}
}

func TestAuthHandler_Me_DeletedUser(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/user", "")
	withUser(c, "gone")

	err := NewAuthHandler(stub).Me(c)

	if !errors.Is(err, echo.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
