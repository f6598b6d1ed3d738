// Package memory provides process-local repositories for development and tests.
// Data is lost on restart.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// Store is safe for concurrent use.
type Store struct {
	Users    *UserRepository
	Analyses *AnalysisRepository
	Alerts   *AlertRepository
}

func NewStore() *Store {
	return &Store{
		Users:    NewUserRepository(),
		Analyses: NewAnalysisRepository(),
		Alerts:   NewAlertRepository(),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type UserRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return nil, domain.ErrUserExists
		}
	}
	r.byID[user.ID] = *user
	created := *user
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Analyses
// ---------------------------------------------------------------------------

type AnalysisRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Analysis
}

func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{byID: make(map[string]*domain.Analysis)}
}

func cloneAnalysis(a *domain.Analysis) *domain.Analysis {
	c := *a
	if a.Score != nil {
		s := *a.Score
		c.Score = &s
	}
	if a.Result != nil {
		c.Result = append(json.RawMessage(nil), a.Result...)
	}
	if a.StartedAt != nil {
		t := *a.StartedAt
		c.StartedAt = &t
	}
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (r *AnalysisRepository) Create(ctx context.Context, a *domain.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = cloneAnalysis(a)
	return nil
}

func (r *AnalysisRepository) FindByID(ctx context.Context, id string) (*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	return cloneAnalysis(a), nil
}

func (r *AnalysisRepository) filter(userID string, keep func(*domain.Analysis) bool) []*domain.Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Analysis, 0)
	for _, a := range r.byID {
		if a.UserID == userID && keep(a) {
			out = append(out, cloneAnalysis(a))
		}
	}
	return out
}

func sortByCreated(list []*domain.Analysis) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

func (r *AnalysisRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(userID, func(*domain.Analysis) bool { return true })
	sortByCreated(out)
	return out, nil
}

func (r *AnalysisRepository) ListPendingByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(userID, func(a *domain.Analysis) bool { return !a.Status.Finished() })
	sortByCreated(out)
	return out, nil
}

func (r *AnalysisRepository) ListCompletedByOwner(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(userID, func(a *domain.Analysis) bool { return a.Status == domain.StatusCompleted })
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CompletedAt, out[j].CompletedAt
		if ti != nil && tj != nil && !ti.Equal(*tj) {
			return ti.After(*tj)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalysisRepository) CountByOwner(ctx context.Context, userID string) (domain.AnalysisCounts, error) {
	if err := ctx.Err(); err != nil {
		return domain.AnalysisCounts{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var c domain.AnalysisCounts
	for _, a := range r.byID {
		if a.UserID != userID {
			continue
		}
		c.Total++
		switch {
		case a.Status == domain.StatusCompleted:
			c.Completed++
		case !a.Status.Finished():
			c.Pending++
		}
	}
	return c, nil
}

func (r *AnalysisRepository) Claim(ctx context.Context, id, userID string, startedAt, staleBefore time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	if !a.Status.CanTransitionTo(domain.StatusProcessing) && !a.ClaimStale(staleBefore) {
		return false, nil
	}
	a.Status = domain.StatusProcessing
	a.StartedAt = &startedAt
	return true, nil
}

func (r *AnalysisRepository) Release(ctx context.Context, id string, startedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok && a.HoldsClaim(startedAt) && a.Status.CanTransitionTo(domain.StatusPending) {
		a.Status = domain.StatusPending
		a.StartedAt = nil
	}
	return nil
}

func (r *AnalysisRepository) UpdateScore(ctx context.Context, id string, startedAt time.Time, score int, result json.RawMessage, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || !a.HoldsClaim(startedAt) || !a.Status.CanTransitionTo(domain.StatusCompleted) {
		return domain.ErrInvalidState
	}
	a.Status = domain.StatusCompleted
	a.Score = &score
	a.Result = append(json.RawMessage(nil), result...)
	a.CompletedAt = &completedAt
	a.StartedAt = nil
	return nil
}

// ---------------------------------------------------------------------------
// Alerts
// ---------------------------------------------------------------------------

type AlertRepository struct {
	mu     sync.RWMutex
	alerts []domain.Alert // append order
}

func NewAlertRepository() *AlertRepository {
	return &AlertRepository{}
}

func (r *AlertRepository) Append(ctx context.Context, a *domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, *a)
	return nil
}

// ListRecent walks the feed backwards; append order is creation order.
func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Alert, 0, limit)
	for i := len(r.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		a := r.alerts[i]
		out = append(out, &a)
	}
	return out, nil
}

func (r *AlertRepository) MarkRead(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].IsRead = true
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

// ---------------------------------------------------------------------------
// Token denylist
// ---------------------------------------------------------------------------

// TokenDenylist keeps revoked token ids until they expire.
type TokenDenylist struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{expires: make(map[string]time.Time), now: time.Now}
}

func (d *TokenDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expires[tokenID] = d.now().Add(ttl)
	return nil
}

func (d *TokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.expires[tokenID]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.expires, tokenID)
		return false, nil
	}
	return true, nil
}

// Ping always succeeds.
func (d *TokenDenylist) Ping(context.Context) error { return nil }
