package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"docket-system/models"
	"docket-system/store"
)

// Bump archives the oldest Active order for the table named in the
// selection's first line ("Table N | ..."). Selections that do not name
// a table, and tables with no Active order, are silent no-ops. Callers
// must re-project both screens afterwards; the session pushes nothing.
func (s *Session) Bump(ctx context.Context, selection string) error {
	num, ok := tableNumberFromSelection(selection)
	if !ok {
		return nil
	}
	orderID, err := s.store.OldestActiveOrder(ctx, num)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveOrder) {
			s.log.Debug("bump: no active order", "table", num)
			return nil
		}
		return fmt.Errorf("find active order for table %d: %w", num, err)
	}
	if err := s.store.SetOrderStatus(ctx, orderID, models.OrderStatusArchived); err != nil {
		return fmt.Errorf("archive order %d: %w", orderID, err)
	}
	if s.notifier != nil {
		s.notifier.OrderBumped(ctx, orderID)
	}
	return nil
}

// BumpOrders archives each flagged order independently; one failure does
// not stop the rest.
func (s *Session) BumpOrders(ctx context.Context, orderIDs []int64) error {
	var errs []error
	for _, id := range orderIDs {
		if err := s.store.SetOrderStatus(ctx, id, models.OrderStatusArchived); err != nil {
			errs = append(errs, fmt.Errorf("archive order %d: %w", id, err))
			continue
		}
		if s.notifier != nil {
			s.notifier.OrderBumped(ctx, id)
		}
	}
	return errors.Join(errs...)
}

// tableNumberFromSelection pulls the table number out of a docket title's
// first line, e.g. "Table 5 | Created: 12:30:00 | ...".
func tableNumberFromSelection(selection string) (int, bool) {
	first, _, _ := strings.Cut(selection, "\n")
	fields := strings.Fields(first)
	if len(fields) < 2 || fields[0] != "Table" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(fields[1], "|"))
	if err != nil {
		return 0, false
	}
	return n, true
}
