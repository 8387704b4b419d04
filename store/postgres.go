package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"docket-system/models"
)

// pgQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// statements serve pooled and transactional calls.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres is the pgx-backed store.
type Postgres struct {
	pool *pgxpool.Pool
	q    pgQuerier
}

var _ Store = (*Postgres)(nil)

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool, q: pool}
}

func (p *Postgres) WithTx(ctx context.Context, fn func(Store) error) error {
	if p.pool == nil {
		// Already inside a transaction.
		return fn(p)
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(&Postgres{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Postgres) TableIDByNumber(ctx context.Context, number int) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		SELECT id FROM restaurant_tables WHERE table_number = $1`,
		number,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrTableNotFound
	}
	return id, err
}

func (p *Postgres) MealIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		SELECT id FROM meals WHERE name = $1`,
		name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrMealNotFound
	}
	return id, err
}

func (p *Postgres) CreateOrder(ctx context.Context, tableID int64, createdAt time.Time) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		INSERT INTO orders (table_id, created_at, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		tableID, createdAt, models.OrderStatusActive,
	).Scan(&id)
	return id, err
}

func (p *Postgres) CreateOrderItem(ctx context.Context, orderID, mealID int64, quantity int) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		INSERT INTO order_items (order_id, meal_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`,
		orderID, mealID, quantity,
	).Scan(&id)
	return id, err
}

func (p *Postgres) CreateMealAdjustment(ctx context.Context, orderItemID int64, adjustment string, isAllergy bool) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		INSERT INTO meal_adjustments (order_item_id, adjustment, is_allergy)
		VALUES ($1, $2, $3)
		RETURNING id`,
		orderItemID, adjustment, isAllergy,
	).Scan(&id)
	return id, err
}

func (p *Postgres) CreateDocket(ctx context.Context, orderID int64, timeEstimate int) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		INSERT INTO dockets (order_id, time_estimate, is_grouped, order_sent)
		VALUES ($1, $2, false, false)
		RETURNING id`,
		orderID, timeEstimate,
	).Scan(&id)
	return id, err
}

func (p *Postgres) PrepEntries(ctx context.Context, orderID int64) ([]models.PrepEntry, error) {
	rows, err := p.q.Query(ctx, `
		SELECT m.category_id, m.preparation_time
		FROM order_items oi
		JOIN meals m ON oi.meal_id = m.id
		WHERE oi.order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.PrepEntry
	for rows.Next() {
		var e models.PrepEntry
		if err := rows.Scan(&e.CategoryID, &e.PrepTime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *Postgres) OldestActiveOrder(ctx context.Context, tableNumber int) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, `
		SELECT o.id
		FROM orders o
		JOIN restaurant_tables t ON o.table_id = t.id
		WHERE t.table_number = $1 AND o.status = $2
		ORDER BY o.created_at, o.id
		LIMIT 1`,
		tableNumber, models.OrderStatusActive,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoActiveOrder
	}
	return id, err
}

func (p *Postgres) SetOrderStatus(ctx context.Context, orderID int64, status string) error {
	tag, err := p.q.Exec(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2`,
		status, orderID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

func (p *Postgres) OrdersByStatus(ctx context.Context, status string) ([]models.OrderSummary, error) {
	rows, err := p.q.Query(ctx, `
		SELECT o.id, t.table_number, o.created_at
		FROM orders o
		JOIN restaurant_tables t ON o.table_id = t.id
		WHERE o.status = $1
		ORDER BY o.created_at, o.id`,
		status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderSummary
	for rows.Next() {
		var o models.OrderSummary
		if err := rows.Scan(&o.ID, &o.TableNumber, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (p *Postgres) ItemLines(ctx context.Context, orderID int64) ([]models.ItemLine, error) {
	rows, err := p.q.Query(ctx, `
		SELECT m.name, c.name,
		       COALESCE(ma.adjustment, ''), COALESCE(ma.is_allergy, false),
		       ma.id IS NOT NULL
		FROM order_items oi
		JOIN meals m ON oi.meal_id = m.id
		JOIN meal_categories c ON m.category_id = c.id
		LEFT JOIN meal_adjustments ma ON ma.order_item_id = oi.id
		WHERE oi.order_id = $1
		ORDER BY c.name, oi.id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.ItemLine
	for rows.Next() {
		var l models.ItemLine
		if err := rows.Scan(&l.MealName, &l.CategoryName, &l.Adjustment, &l.IsAllergy, &l.HasAdjustment); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
