package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

type stubAnalysisService struct {
	createFn    func(ctx context.Context, in ports.CreateAnalysisInput) (*domain.Analysis, error)
	startFn     func(ctx context.Context, id, userID string) (*domain.ScoreReport, error)
	pendingFn   func(ctx context.Context, userID string) ([]*domain.Analysis, error)
	completedFn func(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error)
}

func (s *stubAnalysisService) CreateAnalysis(ctx context.Context, in ports.CreateAnalysisInput) (*domain.Analysis, error) {
	return s.createFn(ctx, in)
}

func (s *stubAnalysisService) StartAnalysis(ctx context.Context, id, userID string) (*domain.ScoreReport, error) {
	return s.startFn(ctx, id, userID)
}

func (s *stubAnalysisService) ListPending(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	return s.pendingFn(ctx, userID)
}

func (s *stubAnalysisService) ListCompleted(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	return s.completedFn(ctx, userID, limit)
}

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// httpErrorCode extracts the status of an error left for the central handler.
func httpErrorCode(t *testing.T, err error) (int, string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code, fmt.Sprint(he.Message)
}

func TestAnalysisHandler_Create_Success(t *testing.T) {
	stub := &stubAnalysisService{
		createFn: func(ctx context.Context, in ports.CreateAnalysisInput) (*domain.Analysis, error) {
			if in.UserID != "u1" || in.ProductName != "Kablosuz Kulaklık" || in.ModuleCode != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Analysis{
				ID: "a1", UserID: in.UserID, ProductName: in.ProductName,
				ModuleCode: domain.DefaultModuleCode, Status: domain.StatusPending, CreatedAt: created,
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/analyses", `{"productName":"Kablosuz Kulaklık"}`)
	withUser(c, "u1")

	if err := NewAnalysisHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["id"] != "a1" || resp["status"] != "pending" || resp["moduleCode"] != "M001" || resp["userId"] != "u1" {
		t.Fatalf("unexpected body: %v", resp)
	}
	for _, k := range []string{"category", "score", "analysis", "completedAt"} {
		if v, ok := resp[k]; !ok || v != nil {
			t.Fatalf("expected %s to be null, got %v", k, v)
		}
	}
}

func TestAnalysisHandler_Create_MissingProductName(t *testing.T) {
	stub := &stubAnalysisService{
		createFn: func(ctx context.Context, in ports.CreateAnalysisInput) (*domain.Analysis, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/analyses", `{"category":"Elektronik"}`)
	withUser(c, "u1")

	_ = NewAnalysisHandler(stub).Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != msgCreateFailed || resp["error"] == nil {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAnalysisHandler_Create_UnknownModule(t *testing.T) {
	stub := &stubAnalysisService{
		createFn: func(ctx context.Context, in ports.CreateAnalysisInput) (*domain.Analysis, error) {
			return nil, fmt.Errorf("%w: M002", domain.ErrUnknownModule)
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/analyses", `{"productName":"X","moduleCode":"M002"}`)
	withUser(c, "u1")

	_ = NewAnalysisHandler(stub).Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAnalysisHandler_Create_RequiresUser(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/api/analyses", `{"productName":"X"}`)

	err := NewAnalysisHandler(&stubAnalysisService{}).Create(c)

	if !errors.Is(err, echo.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAnalysisHandler_Start_Success(t *testing.T) {
	raw := json.RawMessage(`{"score":85,"recommendation":"Yüksek","reasoning":"ok"}`)
	stub := &stubAnalysisService{
		startFn: func(ctx context.Context, id, userID string) (*domain.ScoreReport, error) {
			if id != "a1" || userID != "u1" {
				t.Fatalf("unexpected args %s %s", id, userID)
			}
			return &domain.ScoreReport{Score: 85, Recommendation: "Yüksek", Reasoning: "ok", Raw: raw}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/analyses/a1/start", "")
	c.SetParamNames("id")
	c.SetParamValues("a1")
	withUser(c, "u1")

	if err := NewAnalysisHandler(stub).Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["score"] != float64(85) {
		t.Fatalf("unexpected body: %v", resp)
	}
	analysis, ok := resp["analysis"].(map[string]any)
	if !ok || analysis["recommendation"] != "Yüksek" {
		t.Fatalf("unexpected analysis payload: %v", resp["analysis"])
	}
}

func TestAnalysisHandler_Start_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", domain.ErrAnalysisNotFound, http.StatusNotFound, "Analiz bulunamadı"},
		{"completed", domain.ErrInvalidState, http.StatusBadRequest, "Analiz zaten tamamlanmış"},
		{"in progress", domain.ErrAnalysisInProgress, http.StatusBadRequest, "Analiz zaten işleniyor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAnalysisService{
				startFn: func(ctx context.Context, id, userID string) (*domain.ScoreReport, error) {
					return nil, tt.err
				},
			}
			c, rec := newTestContext(http.MethodPost, "/api/analyses/a1/start", "")
			c.SetParamNames("id")
			c.SetParamValues("a1")
			withUser(c, "u1")

			if err := NewAnalysisHandler(stub).Start(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if resp := decodeBody(t, rec); resp["message"] != tt.message {
				t.Fatalf("unexpected message %v", resp["message"])
			}
		})
	}
}

func TestAnalysisHandler_Start_ProviderFailureHidesCause(t *testing.T) {
	stub := &stubAnalysisService{
		startFn: func(ctx context.Context, id, userID string) (*domain.ScoreReport, error) {
			return nil, fmt.Errorf("%w: upstream 502 secret-detail", domain.ErrProviderFailure)
		},
	}
	c, rec := newTestContext(http.MethodPost, "/api/analyses/a1/start", "")
	c.SetParamNames("id")
	c.SetParamValues("a1")
	withUser(c, "u1")

	err := NewAnalysisHandler(stub).Start(c)

	code, msg := httpErrorCode(t, err)
	if code != http.StatusInternalServerError || msg != msgStartFailed {
		t.Fatalf("unexpected error %d %q", code, msg)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler should leave rendering to the error handler, got %s", rec.Body.String())
	}
}

func TestAnalysisHandler_ListPending(t *testing.T) {
	score := 70
	stub := &stubAnalysisService{
		pendingFn: func(ctx context.Context, userID string) ([]*domain.Analysis, error) {
			return []*domain.Analysis{
				{ID: "a2", UserID: userID, ProductName: "B", Category: "Ev", Status: domain.StatusProcessing, CreatedAt: created},
				{ID: "a1", UserID: userID, ProductName: "A", Status: domain.StatusPending, Score: &score, CreatedAt: created},
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/analyses/pending", "")
	withUser(c, "u1")

	if err := NewAnalysisHandler(stub).ListPending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 2 || list[0]["id"] != "a2" || list[0]["category"] != "Ev" {
		t.Fatalf("unexpected list: %v", list)
	}
}

func TestAnalysisHandler_ListPending_EmptyIsArray(t *testing.T) {
	stub := &stubAnalysisService{
		pendingFn: func(ctx context.Context, userID string) ([]*domain.Analysis, error) {
			return nil, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/analyses/pending", "")
	withUser(c, "u1")

	if err := NewAnalysisHandler(stub).ListPending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestAnalysisHandler_ListCompleted_Limit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=3", 3},
	}
	for _, tt := range tests {
		t.Run("query"+tt.query, func(t *testing.T) {
			stub := &stubAnalysisService{
				completedFn: func(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
					if limit != tt.want {
						t.Fatalf("expected limit %d, got %d", tt.want, limit)
					}
					return nil, nil
				},
			}
			c, rec := newTestContext(http.MethodGet, "/api/analyses/completed"+tt.query, "")
			withUser(c, "u1")

			if err := NewAnalysisHandler(stub).ListCompleted(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestAnalysisHandler_ListCompleted_BadLimit(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/analyses/completed?limit=-1", "")
	withUser(c, "u1")

	_ = NewAnalysisHandler(&stubAnalysisService{}).ListCompleted(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAnalysisHandler_ListCompleted_StoreError(t *testing.T) {
	stub := &stubAnalysisService{
		completedFn: func(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
			return nil, errors.New("connection reset")
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/analyses/completed", "")
	withUser(c, "u1")

	err := NewAnalysisHandler(stub).ListCompleted(c)

	code, msg := httpErrorCode(t, err)
	if code != http.StatusInternalServerError || msg != msgCompletedFailed {
		t.Fatalf("unexpected error %d %q", code, msg)
	}
}
