package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

func TestAlertRepository_ListRecent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAlertRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM alerts\\s+ORDER BY created_at DESC, id DESC\\s+LIMIT \\$1").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "title", "message", "is_read", "created_at"}).
			AddRow("al2", "success", "AI Analizi Tamamlandı", "m", false, now).
			AddRow("al1", "warning", "AI Analizi Başarısız", "m", true, now.Add(-time.Minute)))

	got, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].Type != domain.AlertSuccess || !got[1].IsRead {
		t.Errorf("unexpected alerts: %+v", got)
	}
	expectMet(t, mock)
}

func TestAlertRepository_MarkRead(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAlertRepository(db)

	// already read rows still count as matched
	for i := 0; i < 2; i++ {
		mock.ExpectExec("UPDATE alerts SET is_read = true").
			WithArgs("al1").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for i := 0; i < 2; i++ {
		if err := repo.MarkRead(context.Background(), "al1"); err != nil {
			t.Fatalf("MarkRead #%d: %v", i+1, err)
		}
	}
	expectMet(t, mock)
}

func TestAlertRepository_MarkRead_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAlertRepository(db)

	mock.ExpectExec("UPDATE alerts").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkRead(context.Background(), "missing"); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
	expectMet(t, mock)
}
