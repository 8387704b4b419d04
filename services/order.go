package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"docket-system/store"
)

var (
	// ErrNoTableNumber rejects placement without a table number.
	ErrNoTableNumber = errors.New("table number is required")
	// ErrEmptyDraft rejects placement of a draft with no entries.
	ErrEmptyDraft = errors.New("draft has no items")
)

// PlacementResult reports what a placement created. Skipped lists the
// entry lines whose meal could not be resolved; those order items were
// not created but the rest of the order was.
type PlacementResult struct {
	OrderID  int64
	DocketID int64
	Skipped  []string
}

// PlaceOrder persists the draft as an Active order for the table, one
// order item per entry (quantity 1) with its adjustment when present,
// then generates the docket and reseeds the draft. The whole sequence
// runs in one store transaction.
//
// A nil error means the order and its docket were committed. When every
// entry was skipped the order is still committed, the docket is refused,
// and the result comes back alongside ErrEmptyOrder. Validation and
// table-resolution failures leave the store and the draft untouched.
func (s *Session) PlaceOrder(ctx context.Context, tableNumber string) (*PlacementResult, error) {
	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return nil, ErrNoTableNumber
	}
	entries := s.draft.Entries()
	if len(entries) == 0 {
		return nil, ErrEmptyDraft
	}
	num, err := strconv.Atoi(tableNumber)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", tableNumber, store.ErrTableNotFound)
	}

	res := &PlacementResult{}
	err = s.store.WithTx(ctx, func(st store.Store) error {
		tableID, err := st.TableIDByNumber(ctx, num)
		if err != nil {
			return fmt.Errorf("resolve table %d: %w", num, err)
		}
		orderID, err := st.CreateOrder(ctx, tableID, s.now())
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		res.OrderID = orderID

		created := 0
		for _, e := range entries {
			mealID, err := st.MealIDByName(ctx, e.Base)
			if err != nil {
				if errors.Is(err, store.ErrMealNotFound) {
					s.log.Warn("meal not found, skipping item", "item", e.Encode(), "order_id", orderID)
					res.Skipped = append(res.Skipped, e.Encode())
					continue
				}
				return fmt.Errorf("resolve meal %q: %w", e.Base, err)
			}
			itemID, err := st.CreateOrderItem(ctx, orderID, mealID, 1)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			created++
			if e.HasAdjustment() {
				if _, err := st.CreateMealAdjustment(ctx, itemID, e.Comment, e.Allergy); err != nil {
					return fmt.Errorf("create adjustment: %w", err)
				}
			}
		}
		if created == 0 {
			// Order committed without a docket; reported after commit.
			return nil
		}
		docketID, err := GenerateDocket(ctx, st, orderID)
		if err != nil {
			return err
		}
		res.DocketID = docketID
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := s.draft.Lines()
	s.draft.Reset()
	if res.DocketID == 0 {
		return res, fmt.Errorf("order %d: %w", res.OrderID, ErrEmptyOrder)
	}
	if s.notifier != nil {
		s.notifier.OrderPlaced(ctx, num, res.DocketID, lines)
	}
	return res, nil
}
