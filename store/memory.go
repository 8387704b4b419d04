package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"docket-system/models"
)

// Memory is an in-memory Store seeded with the same reference data as
// the relational backends. It backs the service tests and the
// STORE_DRIVER=memory demo mode.
type Memory struct {
	mu            sync.Mutex
	categoryIDs   map[models.Category]int64
	categoryNames map[int64]string
	meals         map[string]models.Meal
	tables        map[int]int64

	orders      []models.Order
	items       []models.OrderItem
	adjustments []models.MealAdjustment
	dockets     []models.Docket

	nextID int64
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	m := &Memory{
		categoryIDs:   map[models.Category]int64{},
		categoryNames: map[int64]string{},
		meals:         map[string]models.Meal{},
		tables:        map[int]int64{},
	}
	for _, c := range models.Categories {
		id := m.next()
		m.categoryIDs[c] = id
		m.categoryNames[id] = string(c)
	}
	for _, sm := range models.SeedMeals {
		m.meals[sm.Name] = models.Meal{
			ID:         m.next(),
			CategoryID: m.categoryIDs[sm.Category],
			Name:       sm.Name,
			PrepTime:   sm.PrepTime,
		}
	}
	for n := 1; n <= 20; n++ {
		m.tables[n] = m.next()
	}
	return m
}

func (m *Memory) next() int64 {
	m.nextID++
	return m.nextID
}

// WithTx runs fn against the store itself. The engine is single-session,
// so the memory backend does not stage writes; a mid-transaction failure
// leaves its earlier writes in place.
func (m *Memory) WithTx(ctx context.Context, fn func(Store) error) error {
	return fn(m)
}

func (m *Memory) TableIDByNumber(ctx context.Context, number int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.tables[number]
	if !ok {
		return 0, ErrTableNotFound
	}
	return id, nil
}

func (m *Memory) MealIDByName(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meal, ok := m.meals[name]
	if !ok {
		return 0, ErrMealNotFound
	}
	return meal.ID, nil
}

func (m *Memory) CreateOrder(ctx context.Context, tableID int64, createdAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := models.Order{ID: m.next(), TableID: tableID, CreatedAt: createdAt, Status: models.OrderStatusActive}
	m.orders = append(m.orders, o)
	return o.ID, nil
}

func (m *Memory) CreateOrderItem(ctx context.Context, orderID, mealID int64, quantity int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := models.OrderItem{ID: m.next(), OrderID: orderID, MealID: mealID, Quantity: quantity}
	m.items = append(m.items, it)
	return it.ID, nil
}

func (m *Memory) CreateMealAdjustment(ctx context.Context, orderItemID int64, adjustment string, isAllergy bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := models.MealAdjustment{ID: m.next(), OrderItemID: orderItemID, Adjustment: adjustment, IsAllergy: isAllergy}
	m.adjustments = append(m.adjustments, a)
	return a.ID, nil
}

func (m *Memory) CreateDocket(ctx context.Context, orderID int64, timeEstimate int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := models.Docket{ID: m.next(), OrderID: orderID, TimeEstimate: timeEstimate}
	m.dockets = append(m.dockets, d)
	return d.ID, nil
}

func (m *Memory) PrepEntries(ctx context.Context, orderID int64) ([]models.PrepEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []models.PrepEntry
	for _, it := range m.items {
		if it.OrderID != orderID {
			continue
		}
		meal := m.mealByID(it.MealID)
		entries = append(entries, models.PrepEntry{CategoryID: meal.CategoryID, PrepTime: meal.PrepTime})
	}
	return entries, nil
}

func (m *Memory) OldestActiveOrder(ctx context.Context, tableNumber int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tableID, ok := m.tables[tableNumber]
	if !ok {
		return 0, ErrNoActiveOrder
	}
	best := -1
	for i, o := range m.orders {
		if o.TableID != tableID || o.Status != models.OrderStatusActive {
			continue
		}
		if best < 0 || o.CreatedAt.Before(m.orders[best].CreatedAt) {
			best = i
		}
	}
	if best < 0 {
		return 0, ErrNoActiveOrder
	}
	return m.orders[best].ID, nil
}

func (m *Memory) SetOrderStatus(ctx context.Context, orderID int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) OrdersByStatus(ctx context.Context, status string) ([]models.OrderSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.OrderSummary
	for _, o := range m.orders {
		if o.Status != status {
			continue
		}
		out = append(out, models.OrderSummary{
			ID:          o.ID,
			TableNumber: m.tableNumber(o.TableID),
			CreatedAt:   o.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) ItemLines(ctx context.Context, orderID int64) ([]models.ItemLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var lines []models.ItemLine
	for _, it := range m.items {
		if it.OrderID != orderID {
			continue
		}
		meal := m.mealByID(it.MealID)
		l := models.ItemLine{
			MealName:     meal.Name,
			CategoryName: m.categoryNames[meal.CategoryID],
		}
		for _, a := range m.adjustments {
			if a.OrderItemID == it.ID {
				l.Adjustment = a.Adjustment
				l.IsAllergy = a.IsAllergy
				l.HasAdjustment = true
				break
			}
		}
		lines = append(lines, l)
	}
	// Match the relational backends: category name, then insertion order.
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].CategoryName < lines[j].CategoryName
	})
	return lines, nil
}

func (m *Memory) mealByID(id int64) models.Meal {
	for _, meal := range m.meals {
		if meal.ID == id {
			return meal
		}
	}
	return models.Meal{}
}

func (m *Memory) tableNumber(tableID int64) int {
	for n, id := range m.tables {
		if id == tableID {
			return n
		}
	}
	return 0
}

// Snapshot accessors for tests.

func (m *Memory) Orders() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Order(nil), m.orders...)
}

func (m *Memory) Items() []models.OrderItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.OrderItem(nil), m.items...)
}

func (m *Memory) Adjustments() []models.MealAdjustment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.MealAdjustment(nil), m.adjustments...)
}

func (m *Memory) Dockets() []models.Docket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Docket(nil), m.dockets...)
}
