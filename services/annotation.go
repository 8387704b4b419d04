package services

import "strings"

// AllergyMarker is the fixed token that flags an allergy on a docket line.
const AllergyMarker = "⚠️Allergy"

// Entry is one docket line in typed form: the meal's base name plus the
// optional adjustment captured at order time. The encoded string form
// exists only at display boundaries (draft listing, docket screens).
type Entry struct {
	Base    string
	Comment string
	Allergy bool
}

// HasAdjustment reports whether the entry carries an adjustment payload
// that must be persisted alongside its order item. An allergy with no
// comment still counts.
func (e Entry) HasAdjustment() bool { return e.Comment != "" || e.Allergy }

// Encode renders the entry as a display line: "Name", "Name (comment)",
// "Name (comment ⚠️Allergy)" or "Name (⚠️Allergy)".
func (e Entry) Encode() string {
	if !e.HasAdjustment() {
		return e.Base
	}
	payload := e.Comment
	if e.Allergy {
		if payload != "" {
			payload += " "
		}
		payload += AllergyMarker
	}
	return e.Base + " (" + payload + ")"
}

// DecodeEntry parses a display line back into typed form. Everything
// before the first "(" is the base name; the payload loses its trailing
// ")" and, if present, the allergy marker. A line whose payload is empty
// decodes to a bare entry with no adjustment.
func DecodeEntry(line string) Entry {
	open := strings.Index(line, "(")
	if open < 0 {
		return Entry{Base: strings.TrimSpace(line)}
	}
	e := Entry{Base: strings.TrimSpace(line[:open])}
	payload := strings.TrimSpace(strings.TrimRight(line[open+1:], ")"))
	if payload == "" {
		return e
	}
	if strings.Contains(payload, AllergyMarker) {
		e.Allergy = true
		payload = strings.TrimSpace(strings.ReplaceAll(payload, AllergyMarker, ""))
	}
	e.Comment = payload
	return e
}
