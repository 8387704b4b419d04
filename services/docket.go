package services

import (
	"context"
	"errors"
	"fmt"

	"docket-system/store"
)

// ErrEmptyOrder refuses a docket for an order with no persisted items.
var ErrEmptyOrder = errors.New("order has no items")

// GenerateDocket computes the kitchen time estimate for an order and
// persists its docket. Each category's station works its items in
// parallel up to its slowest item, so the estimate is the sum over the
// order's categories of the maximum preparation time in each.
func GenerateDocket(ctx context.Context, st store.Store, orderID int64) (int64, error) {
	entries, err := st.PrepEntries(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("load prep times for order %d: %w", orderID, err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("order %d: %w", orderID, ErrEmptyOrder)
	}

	maxByCategory := map[int64]int{}
	for _, e := range entries {
		if e.PrepTime > maxByCategory[e.CategoryID] {
			maxByCategory[e.CategoryID] = e.PrepTime
		}
	}
	estimate := 0
	for _, m := range maxByCategory {
		estimate += m
	}

	id, err := st.CreateDocket(ctx, orderID, estimate)
	if err != nil {
		return 0, fmt.Errorf("create docket: %w", err)
	}
	return id, nil
}
