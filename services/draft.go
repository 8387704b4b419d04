package services

import (
	"strings"

	"docket-system/models"
)

// draftLine is either a category header sentinel or a typed entry.
type draftLine struct {
	header models.Category // non-empty for header lines
	entry  Entry
}

func (l draftLine) isHeader() bool { return l.header != "" }

func (l draftLine) text() string {
	if l.isHeader() {
		return l.header.Header()
	}
	return l.entry.Encode()
}

// Draft is the in-progress order: an ordered list of category headers
// and entries, mirroring the docket as it appears on screen. It is owned
// by one session and needs no locking.
type Draft struct {
	lines []draftLine
}

// NewDraft returns a draft pre-seeded with the category headers.
func NewDraft() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

// Reset clears the draft and reseeds the category headers.
func (d *Draft) Reset() {
	d.lines = d.lines[:0]
	for _, c := range models.Categories {
		d.lines = append(d.lines, draftLine{header: c})
	}
}

// Lines renders the draft as display text, one string per line.
func (d *Draft) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.text()
	}
	return out
}

// Entries returns the non-header entries in draft order.
func (d *Draft) Entries() []Entry {
	var out []Entry
	for _, l := range d.lines {
		if !l.isHeader() {
			out = append(out, l.entry)
		}
	}
	return out
}

// Insert places the entry under its category header. The anchor is the
// nearest header whose index is greater than the category's own header
// index; the entry goes immediately before that header, or at the end
// when no later header exists. Headers are appended lazily on first use,
// so grouping follows header-creation order, not a fixed category order.
// Unclassified entries are appended to the tail without a header.
func (d *Draft) Insert(e Entry) {
	cat, ok := models.CategoryFor(e.Encode())
	if !ok {
		d.lines = append(d.lines, draftLine{entry: e})
		return
	}
	hi := d.headerIndex(cat)
	if hi < 0 {
		d.lines = append(d.lines, draftLine{header: cat})
		hi = len(d.lines) - 1
	}
	next := -1
	for i := hi + 1; i < len(d.lines); i++ {
		if d.lines[i].isHeader() {
			next = i
			break
		}
	}
	if next < 0 {
		d.lines = append(d.lines, draftLine{entry: e})
		return
	}
	d.lines = append(d.lines, draftLine{})
	copy(d.lines[next+1:], d.lines[next:])
	d.lines[next] = draftLine{entry: e}
}

// InsertText decodes a display line and inserts it.
func (d *Draft) InsertText(line string) {
	d.Insert(DecodeEntry(line))
}

// Remove deletes the line matching the selection. Headers and unknown
// selections are left untouched.
func (d *Draft) Remove(selection string) {
	for i, l := range d.lines {
		if !l.isHeader() && l.text() == selection {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// Modify replaces the selected entry in place: the base name is kept and
// re-encoded with the new comment and allergy flag, preserving draft
// order. Empty, header, and unknown selections are no-ops. Returns the
// new display text when a line changed, so callers can track selection.
func (d *Draft) Modify(selection, comment string, allergy bool) (string, bool) {
	if selection == "" {
		return "", false
	}
	for i, l := range d.lines {
		if l.isHeader() || l.text() != selection {
			continue
		}
		e := Entry{Base: l.entry.Base, Comment: strings.TrimSpace(comment), Allergy: allergy}
		d.lines[i] = draftLine{entry: e}
		return e.Encode(), true
	}
	return "", false
}

func (d *Draft) headerIndex(c models.Category) int {
	for i, l := range d.lines {
		if l.header == c {
			return i
		}
	}
	return -1
}
