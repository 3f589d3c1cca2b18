package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
)

type fakeViews struct {
	err    error
	lastID uuid.UUID
	calls  int
}

func (f *fakeViews) RecordView(_ context.Context, recipeID uuid.UUID) error {
	f.calls++
	f.lastID = recipeID
	return f.err
}

func TestRecordView_Success(t *testing.T) {
	views := &fakeViews{}
	svc := New(views, zap.NewNop())

	id := uuid.New()
	if err := svc.RecordView(context.Background(), id.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views.calls != 1 {
		t.Fatalf("expected 1 recorder call, got %d", views.calls)
	}
	if views.lastID != id {
		t.Errorf("expected recipe ID %s, got %s", id, views.lastID)
	}
}

func TestRecordView_InvalidID(t *testing.T) {
	views := &fakeViews{}
	svc := New(views, zap.NewNop())

	for _, bad := range []string{"", "not-a-uuid", "12345"} {
		err := svc.RecordView(context.Background(), bad)
		if !errors.Is(err, domain.ErrInvalidRecipeID) {
			t.Errorf("id %q: expected ErrInvalidRecipeID, got %v", bad, err)
		}
	}
	if views.calls != 0 {
		t.Errorf("recorder must not be called for invalid IDs, got %d calls", views.calls)
	}
}

func TestRecordView_StoreError(t *testing.T) {
	views := &fakeViews{err: errors.New("insert failed")}
	svc := New(views, zap.NewNop())

	err := svc.RecordView(context.Background(), uuid.NewString())
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
	if errors.Is(err, domain.ErrInvalidRecipeID) {
		t.Error("store failure must not be reported as an invalid ID")
	}
}
