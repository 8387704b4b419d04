package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"docket-system/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meal_categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS meals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category_id INTEGER NOT NULL REFERENCES meal_categories(id),
	name TEXT NOT NULL UNIQUE,
	preparation_time INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS restaurant_tables (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	table_number INTEGER NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	table_id INTEGER NOT NULL REFERENCES restaurant_tables(id),
	created_at TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Active'
);
CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL REFERENCES orders(id),
	meal_id INTEGER NOT NULL REFERENCES meals(id),
	quantity INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS meal_adjustments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_item_id INTEGER NOT NULL UNIQUE REFERENCES order_items(id),
	adjustment TEXT NOT NULL DEFAULT '',
	is_allergy INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS dockets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL UNIQUE REFERENCES orders(id),
	time_estimate INTEGER NOT NULL,
	is_grouped INTEGER NOT NULL DEFAULT 0,
	order_sent INTEGER NOT NULL DEFAULT 0
);
`

// Fixed-width UTC layout so lexicographic ORDER BY matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// sqQuerier is satisfied by both *sql.DB and *sql.Tx.
type sqQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLite is the embedded single-terminal backend. It applies its schema
// and the menu seed on open, so a fresh database file is usable without
// a migrate step.
type SQLite struct {
	db *sql.DB
	q  sqQuerier
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "docket.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The engine is single-session; one connection avoids write locking.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	s := &SQLite{db: db, q: db}
	if err := s.seed(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) seed(ctx context.Context) error {
	for _, c := range models.Categories {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO meal_categories (name) VALUES (?)`, string(c)); err != nil {
			return fmt.Errorf("seed category %s: %w", c, err)
		}
	}
	for _, m := range models.SeedMeals {
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO meals (category_id, name, preparation_time)
			SELECT id, ?, ? FROM meal_categories WHERE name = ?`,
			m.Name, m.PrepTime, string(m.Category)); err != nil {
			return fmt.Errorf("seed meal %s: %w", m.Name, err)
		}
	}
	for n := 1; n <= 20; n++ {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO restaurant_tables (table_number) VALUES (?)`, n); err != nil {
			return fmt.Errorf("seed table %d: %w", n, err)
		}
	}
	return nil
}

func (s *SQLite) WithTx(ctx context.Context, fn func(Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(&SQLite{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) TableIDByNumber(ctx context.Context, number int) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`SELECT id FROM restaurant_tables WHERE table_number = ?`, number).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTableNotFound
	}
	return id, err
}

func (s *SQLite) MealIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`SELECT id FROM meals WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrMealNotFound
	}
	return id, err
}

func (s *SQLite) CreateOrder(ctx context.Context, tableID int64, createdAt time.Time) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO orders (table_id, created_at, status) VALUES (?, ?, ?)`,
		tableID, createdAt.UTC().Format(sqliteTimeLayout), models.OrderStatusActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) CreateOrderItem(ctx context.Context, orderID, mealID int64, quantity int) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO order_items (order_id, meal_id, quantity) VALUES (?, ?, ?)`,
		orderID, mealID, quantity)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) CreateMealAdjustment(ctx context.Context, orderItemID int64, adjustment string, isAllergy bool) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO meal_adjustments (order_item_id, adjustment, is_allergy) VALUES (?, ?, ?)`,
		orderItemID, adjustment, isAllergy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) CreateDocket(ctx context.Context, orderID int64, timeEstimate int) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO dockets (order_id, time_estimate, is_grouped, order_sent) VALUES (?, ?, 0, 0)`,
		orderID, timeEstimate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) PrepEntries(ctx context.Context, orderID int64) ([]models.PrepEntry, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT m.category_id, m.preparation_time
		FROM order_items oi
		JOIN meals m ON oi.meal_id = m.id
		WHERE oi.order_id = ?`,
		orderID)
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

func (s *SQLite) OldestActiveOrder(ctx context.Context, tableNumber int) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx, `
		SELECT o.id
		FROM orders o
		JOIN restaurant_tables t ON o.table_id = t.id
		WHERE t.table_number = ? AND o.status = ?
		ORDER BY o.created_at, o.id
		LIMIT 1`,
		tableNumber, models.OrderStatusActive).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoActiveOrder
	}
	return id, err
}

func (s *SQLite) SetOrderStatus(ctx context.Context, orderID int64, status string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

func (s *SQLite) OrdersByStatus(ctx context.Context, status string) ([]models.OrderSummary, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT o.id, t.table_number, o.created_at
		FROM orders o
		JOIN restaurant_tables t ON o.table_id = t.id
		WHERE o.status = ?
		ORDER BY o.created_at, o.id`,
		status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderSummary
	for rows.Next() {
		var o models.OrderSummary
		var created string
		if err := rows.Scan(&o.ID, &o.TableNumber, &created); err != nil {
			return nil, err
		}
		o.CreatedAt, err = time.Parse(sqliteTimeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *SQLite) ItemLines(ctx context.Context, orderID int64) ([]models.ItemLine, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT m.name, c.name,
		       COALESCE(ma.adjustment, ''), COALESCE(ma.is_allergy, 0),
		       ma.id IS NOT NULL
		FROM order_items oi
		JOIN meals m ON oi.meal_id = m.id
		JOIN meal_categories c ON m.category_id = c.id
		LEFT JOIN meal_adjustments ma ON ma.order_item_id = oi.id
		WHERE oi.order_id = ?
		ORDER BY c.name, oi.id`,
		orderID)
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
