// Package services implements the docket engine: the in-progress draft,
// the annotation codec, order placement, docket generation, the order
// lifecycle and the screen projections.
package services

import (
	"context"
	"log/slog"
	"time"

	"docket-system/store"
)

// Notifier receives docket events. Implementations must tolerate being
// called inline with placement and bumping.
type Notifier interface {
	OrderPlaced(ctx context.Context, tableNumber int, docketID int64, lines []string)
	OrderBumped(ctx context.Context, orderID int64)
}

// Session owns one in-progress draft and the store handle for the
// terminal it serves. One session drives one order at a time.
type Session struct {
	draft    *Draft
	store    store.Store
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewSession(st store.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		draft: NewDraft(),
		store: st,
		log:   logger,
		now:   time.Now,
	}
}

// SetNotifier attaches an optional docket event notifier.
func (s *Session) SetNotifier(n Notifier) { s.notifier = n }

// Draft exposes the session's in-progress draft for mutation and listing.
func (s *Session) Draft() *Draft { return s.draft }
