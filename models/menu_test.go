package models

import "testing"

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		item string
		want Category
		ok   bool
	}{
		{"Garlic Bread", CategoryEntrees, true},
		{"Blue Cod & Scallops", CategoryMains, true},
		{"Steak (Med Rare)", CategoryMains, true},
		{"Ice Cream Sundae (Kids, Chocolate)", CategoryDesserts, true},
		{"Affogato (Decaf)", CategoryDesserts, true},
		{"Mystery Pie", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CategoryFor(tt.item)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CategoryFor(%q) = %q, %v; want %q, %v", tt.item, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsHeader(t *testing.T) {
	for _, c := range Categories {
		if !IsHeader(c.Header()) {
			t.Errorf("IsHeader(%q) = false", c.Header())
		}
	}
	if IsHeader("Steak") || IsHeader("Entrees") {
		t.Error("non-header lines must not match")
	}
}

func TestMenuFor(t *testing.T) {
	for _, c := range Categories {
		if len(MenuFor(c)) != 3 {
			t.Errorf("MenuFor(%s) = %v, want 3 meals", c, MenuFor(c))
		}
	}
}
