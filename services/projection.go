package services

import (
	"context"
	"fmt"

	"docket-system/models"
)

// docketSeparator joins one category's item lines on a docket view.
const docketSeparator = ", "

// ProjectActive returns the Active screen's dockets, oldest first.
func (s *Session) ProjectActive(ctx context.Context) ([]models.DocketView, error) {
	return s.project(ctx, models.OrderStatusActive)
}

// ProjectArchived returns the Archived screen's dockets, oldest first.
func (s *Session) ProjectArchived(ctx context.Context) ([]models.DocketView, error) {
	return s.project(ctx, models.OrderStatusArchived)
}

// project re-reads committed state on every call; nothing is cached. The
// groupings are rebuilt from relational rows, so an order's view is the
// same before and after bumping.
func (s *Session) project(ctx context.Context, status string) ([]models.DocketView, error) {
	orders, err := s.store.OrdersByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("load %s orders: %w", status, err)
	}
	now := s.now()
	views := make([]models.DocketView, 0, len(orders))
	for _, o := range orders {
		lines, err := s.store.ItemLines(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("load items for order %d: %w", o.ID, err)
		}
		v := models.DocketView{
			OrderID:     o.ID,
			TableNumber: o.TableNumber,
			CreatedAt:   o.CreatedAt,
			Elapsed:     now.Sub(o.CreatedAt),
		}
		byCategory := map[string]int{}
		for _, l := range lines {
			text := l.MealName
			if l.HasAdjustment {
				text = Entry{Base: l.MealName, Comment: l.Adjustment, Allergy: l.IsAllergy}.Encode()
			}
			if i, ok := byCategory[l.CategoryName]; ok {
				v.Groups[i].Line += docketSeparator + text
				continue
			}
			byCategory[l.CategoryName] = len(v.Groups)
			v.Groups = append(v.Groups, models.CategoryLine{Category: l.CategoryName, Line: text})
		}
		views = append(views, v)
	}
	return views, nil
}
