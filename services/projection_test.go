package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"docket-system/models"
)

func TestProjectActiveGroupsByCategory(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Garlic Bread")
	s.Draft().InsertText("Salt & Pepper Squid")
	s.Draft().InsertText("Steak (Med ⚠️Allergy)")
	s.Draft().InsertText("Affogato (Decaf)")
	if _, err := s.PlaceOrder(ctx, "8"); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	views, err := s.ProjectActive(ctx)
	if err != nil {
		t.Fatalf("ProjectActive: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	v := views[0]
	if v.TableNumber != 8 {
		t.Errorf("table = %d, want 8", v.TableNumber)
	}
	if v.Elapsed <= 0 {
		t.Errorf("elapsed = %v, want > 0", v.Elapsed)
	}
	// Categories order by name; lines match the codec's encode form.
	want := []models.CategoryLine{
		{Category: "Desserts", Line: "Affogato (Decaf)"},
		{Category: "Entrees", Line: "Garlic Bread, Salt & Pepper Squid"},
		{Category: "Mains", Line: "Steak (Med ⚠️Allergy)"},
	}
	if diff := cmp.Diff(want, v.Groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(v.Title(), "Table 8 | Created: ") {
		t.Errorf("title = %q", v.Title())
	}
}

// Bumping must not alter the derived content: the archived projection
// carries the same groupings as the active one did.
func TestProjectionUnchangedAcrossBump(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	s.Draft().InsertText("Pork Belly Bites (extra crispy)")
	s.Draft().InsertText("Chocolate Brownie")
	if _, err := s.PlaceOrder(ctx, "2"); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	before, err := s.ProjectActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Bump(ctx, before[0].Title()); err != nil {
		t.Fatalf("Bump: %v", err)
	}

	active, err := s.ProjectActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("active after bump = %d, want 0", len(active))
	}
	archived, err := s.ProjectArchived(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(archived) != 1 {
		t.Fatalf("archived = %d, want 1", len(archived))
	}
	if diff := cmp.Diff(before[0].Groups, archived[0].Groups); diff != "" {
		t.Errorf("groups changed across bump (-before +after):\n%s", diff)
	}
	if !before[0].CreatedAt.Equal(archived[0].CreatedAt) {
		t.Error("creation time changed across bump")
	}
}

func TestProjectionOrdersByCreationTime(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	for _, table := range []string{"3", "1", "2"} {
		s.Draft().InsertText("Garlic Bread")
		if _, err := s.PlaceOrder(ctx, table); err != nil {
			t.Fatalf("PlaceOrder(%s): %v", table, err)
		}
	}
	views, err := s.ProjectActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var tables []int
	for _, v := range views {
		tables = append(tables, v.TableNumber)
	}
	if diff := cmp.Diff([]int{3, 1, 2}, tables); diff != "" {
		t.Errorf("placement order not preserved (-want +got):\n%s", diff)
	}
}

func TestElapsedText(t *testing.T) {
	v := models.DocketView{Elapsed: 3*time.Minute + 12*time.Second}
	if got := v.ElapsedText(); got != "3 mins 12 secs" {
		t.Errorf("ElapsedText() = %q", got)
	}
}
