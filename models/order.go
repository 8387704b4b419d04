package models

import (
	"fmt"
	"time"
)

const (
	OrderStatusActive   = "Active"
	OrderStatusArchived = "Archived"
)

// Order is a row from the orders table.
type Order struct {
	ID        int64
	TableID   int64
	CreatedAt time.Time
	Status    string
}

// Meal is a menu row as persisted, with its category and prep time.
type Meal struct {
	ID         int64
	CategoryID int64
	Name       string
	PrepTime   int // minutes
}

type OrderItem struct {
	ID       int64
	OrderID  int64
	MealID   int64
	Quantity int
}

// MealAdjustment carries the adjustment captured for one order item.
// An empty Adjustment with IsAllergy set means "allergy only, no text".
type MealAdjustment struct {
	ID          int64
	OrderItemID int64
	Adjustment  string
	IsAllergy   bool
}

// Docket is the persisted kitchen ticket for one placed order.
type Docket struct {
	ID           int64
	OrderID      int64
	TimeEstimate int // minutes
	IsGrouped    bool
	OrderSent    bool
}

// PrepEntry is one order item's category and preparation time, read back
// for docket estimation.
type PrepEntry struct {
	CategoryID int64
	PrepTime   int
}

// OrderSummary is one order row joined with its table number.
type OrderSummary struct {
	ID          int64
	TableNumber int
	CreatedAt   time.Time
}

// ItemLine is one order item joined with its meal, category and optional
// adjustment. HasAdjustment distinguishes "no adjustment row" from an
// empty allergy-only adjustment.
type ItemLine struct {
	MealName      string
	CategoryName  string
	Adjustment    string
	IsAllergy     bool
	HasAdjustment bool
}

// CategoryLine is one category's item lines joined into a display string.
type CategoryLine struct {
	Category string
	Line     string
}

// DocketView is the projection of one order for the Active and Archived
// screens. Groups keeps categories in display order.
type DocketView struct {
	OrderID     int64
	TableNumber int
	CreatedAt   time.Time
	Elapsed     time.Duration
	Groups      []CategoryLine
}

// Title renders the screen heading for this docket. Bump selections are
// parsed back out of this format, so the "Table N" prefix is load-bearing.
func (v DocketView) Title() string {
	return fmt.Sprintf("Table %d | Created: %s | Elapsed: %s",
		v.TableNumber, v.CreatedAt.Format("15:04:05"), v.ElapsedText())
}

// ElapsedText formats the elapsed time as whole minutes and seconds.
func (v DocketView) ElapsedText() string {
	secs := int(v.Elapsed.Seconds())
	return fmt.Sprintf("%d mins %d secs", secs/60, secs%60)
}
