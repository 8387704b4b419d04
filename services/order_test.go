package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"docket-system/models"
	"docket-system/store"
)

// newTestSession returns a session over a fresh memory store with a
// deterministic clock that advances one minute per call.
func newTestSession(t *testing.T) (*Session, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	s := NewSession(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return s, m
}

func TestPlaceOrderValidation(t *testing.T) {
	s, m := newTestSession(t)
	ctx := context.Background()

	if _, err := s.PlaceOrder(ctx, "  "); !errors.Is(err, ErrNoTableNumber) {
		t.Errorf("empty table: err = %v, want ErrNoTableNumber", err)
	}
	if _, err := s.PlaceOrder(ctx, "3"); !errors.Is(err, ErrEmptyDraft) {
		t.Errorf("empty draft: err = %v, want ErrEmptyDraft", err)
	}
	if got := m.Orders(); len(got) != 0 {
		t.Errorf("validation failures must not write, got %d orders", len(got))
	}
}

func TestPlaceOrderTableNotFound(t *testing.T) {
	s, m := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Garlic Bread")

	_, err := s.PlaceOrder(ctx, "42")
	if !errors.Is(err, store.ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
	if len(m.Orders()) != 0 || len(m.Items()) != 0 || len(m.Dockets()) != 0 {
		t.Error("aborted placement must leave no rows")
	}
	// The draft keeps its entry for a retry.
	if got := s.Draft().Entries(); len(got) != 1 {
		t.Errorf("draft entries = %d, want 1", len(got))
	}
}

func TestPlaceOrder(t *testing.T) {
	s, m := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Garlic Bread")
	s.Draft().InsertText("Steak (Med Rare ⚠️Allergy)")
	s.Draft().InsertText("Ice Cream Sundae (Kids, Chocolate)")

	res, err := s.PlaceOrder(ctx, "3")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if res.OrderID == 0 || res.DocketID == 0 || len(res.Skipped) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	orders := m.Orders()
	if len(orders) != 1 || orders[0].Status != models.OrderStatusActive {
		t.Fatalf("orders = %+v", orders)
	}
	items := m.Items()
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for _, it := range items {
		if it.Quantity != 1 {
			t.Errorf("item %d quantity = %d, want 1", it.ID, it.Quantity)
		}
	}

	adjs := m.Adjustments()
	if len(adjs) != 2 {
		t.Fatalf("adjustments = %d, want 2", len(adjs))
	}
	wantAdj := map[string]bool{"Med Rare": true, "Kids, Chocolate": false}
	for _, a := range adjs {
		allergy, ok := wantAdj[a.Adjustment]
		if !ok || allergy != a.IsAllergy {
			t.Errorf("unexpected adjustment %+v", a)
		}
	}

	// Entrees max 8, Mains max 20, Desserts max 5.
	dockets := m.Dockets()
	if len(dockets) != 1 || dockets[0].TimeEstimate != 33 {
		t.Errorf("dockets = %+v, want one with estimate 33", dockets)
	}

	want := []string{"Entrees:", "Mains:", "Desserts:"}
	if diff := cmp.Diff(want, s.Draft().Lines()); diff != "" {
		t.Errorf("draft not reseeded (-want +got):\n%s", diff)
	}
}

func TestPlaceOrderAllergyOnlyAdjustment(t *testing.T) {
	s, m := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Garlic Bread (⚠️Allergy)")

	if _, err := s.PlaceOrder(ctx, "1"); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	adjs := m.Adjustments()
	if len(adjs) != 1 {
		t.Fatalf("adjustments = %d, want 1", len(adjs))
	}
	if adjs[0].Adjustment != "" || !adjs[0].IsAllergy {
		t.Errorf("adjustment = %+v, want empty text with allergy", adjs[0])
	}
}

func TestPlaceOrderSkipsUnknownMeal(t *testing.T) {
	s, m := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Garlic Bread")
	s.Draft().InsertText("Dragon Fruit Salad")
	s.Draft().InsertText("Steak (Med)")

	res, err := s.PlaceOrder(ctx, "7")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"Dragon Fruit Salad"}, res.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if len(m.Items()) != 2 {
		t.Errorf("items = %d, want 2", len(m.Items()))
	}
	// Docket reflects only the resolvable items: 8 + 20.
	dockets := m.Dockets()
	if len(dockets) != 1 || dockets[0].TimeEstimate != 28 {
		t.Errorf("dockets = %+v, want one with estimate 28", dockets)
	}
}

func TestPlaceOrderAllItemsUnknown(t *testing.T) {
	s, m := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Dragon Fruit Salad")

	res, err := s.PlaceOrder(ctx, "2")
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}
	if res == nil || res.OrderID == 0 {
		t.Fatal("the order row is still committed")
	}
	if len(m.Dockets()) != 0 {
		t.Error("no docket may exist for an empty order")
	}
	if len(s.Draft().Entries()) != 0 {
		t.Error("draft is still reseeded once the order committed")
	}
}
