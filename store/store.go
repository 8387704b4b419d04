// Package store defines the persistence collaborator for the docket
// engine, with Postgres, SQLite and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"

	"docket-system/models"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrMealNotFound  = errors.New("meal not found")
	ErrNoActiveOrder = errors.New("no active order")
	ErrNotFound      = errors.New("not found")
)

// Store is the minimal relational contract the engine issues its
// operations against. Implementations return generated identities from
// the Create methods and the sentinel errors above from the lookups.
type Store interface {
	TableIDByNumber(ctx context.Context, number int) (int64, error)
	MealIDByName(ctx context.Context, name string) (int64, error)

	// CreateOrder inserts an Active order for the table.
	CreateOrder(ctx context.Context, tableID int64, createdAt time.Time) (int64, error)
	CreateOrderItem(ctx context.Context, orderID, mealID int64, quantity int) (int64, error)
	CreateMealAdjustment(ctx context.Context, orderItemID int64, adjustment string, isAllergy bool) (int64, error)
	CreateDocket(ctx context.Context, orderID int64, timeEstimate int) (int64, error)

	// PrepEntries returns each item's category and prep time for one order.
	PrepEntries(ctx context.Context, orderID int64) ([]models.PrepEntry, error)

	// OldestActiveOrder returns the earliest-created Active order for the
	// table number, or ErrNoActiveOrder.
	OldestActiveOrder(ctx context.Context, tableNumber int) (int64, error)
	SetOrderStatus(ctx context.Context, orderID int64, status string) error

	// OrdersByStatus returns orders with their table numbers, creation
	// time ascending.
	OrdersByStatus(ctx context.Context, status string) ([]models.OrderSummary, error)

	// ItemLines returns the order's items joined with meal, category and
	// adjustment, ordered by category name.
	ItemLines(ctx context.Context, orderID int64) ([]models.ItemLine, error)

	// WithTx runs fn against a store scoped to one transaction; fn's
	// error aborts it.
	WithTx(ctx context.Context, fn func(Store) error) error
}
