package services

import "testing"

func TestEntryEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		e    Entry
		line string
	}{
		{"bare", Entry{Base: "Garlic Bread"}, "Garlic Bread"},
		{"comment", Entry{Base: "Steak", Comment: "Med Rare"}, "Steak (Med Rare)"},
		{"comment and allergy", Entry{Base: "Steak", Comment: "Med Rare", Allergy: true}, "Steak (Med Rare ⚠️Allergy)"},
		{"allergy only", Entry{Base: "Garlic Bread", Allergy: true}, "Garlic Bread (⚠️Allergy)"},
		{"comma comment", Entry{Base: "Ice Cream Sundae", Comment: "Kids, Chocolate"}, "Ice Cream Sundae (Kids, Chocolate)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Encode(); got != tt.line {
				t.Errorf("Encode() = %q, want %q", got, tt.line)
			}
			if got := DecodeEntry(tt.line); got != tt.e {
				t.Errorf("DecodeEntry(%q) = %+v, want %+v", tt.line, got, tt.e)
			}
		})
	}
}

func TestDecodeEntryAllergyOnly(t *testing.T) {
	e := DecodeEntry("Affogato (⚠️Allergy)")
	if e.Base != "Affogato" || e.Comment != "" || !e.Allergy {
		t.Errorf("got %+v, want allergy-only entry", e)
	}
	if !e.HasAdjustment() {
		t.Error("allergy-only entry must still carry an adjustment")
	}
}

func TestDecodeEntryEmptyPayload(t *testing.T) {
	e := DecodeEntry("Steak ()")
	if e.Base != "Steak" || e.HasAdjustment() {
		t.Errorf("empty payload should decode to a bare entry, got %+v", e)
	}
}

func TestDecodeEntryNoParens(t *testing.T) {
	e := DecodeEntry("  Pork Belly Bites  ")
	if e.Base != "Pork Belly Bites" || e.HasAdjustment() {
		t.Errorf("got %+v", e)
	}
}
