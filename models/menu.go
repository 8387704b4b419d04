package models

import "strings"

// Category is a kitchen station grouping for meals.
type Category string

const (
	CategoryEntrees  Category = "Entrees"
	CategoryMains    Category = "Mains"
	CategoryDesserts Category = "Desserts"
)

// Categories lists the categories in menu display order. The draft seeds
// its header sentinels in this order.
var Categories = []Category{CategoryEntrees, CategoryMains, CategoryDesserts}

// Header returns the sentinel line marking the start of this category's
// block on the draft docket.
func (c Category) Header() string { return string(c) + ":" }

// SeedMeal is one seeded menu row with its kitchen preparation time in
// minutes. The stores and the seed migration carry the same rows.
type SeedMeal struct {
	Name     string
	Category Category
	PrepTime int
}

var SeedMeals = []SeedMeal{
	{"Garlic Bread", CategoryEntrees, 8},
	{"Salt & Pepper Squid", CategoryEntrees, 10},
	{"Pork Belly Bites", CategoryEntrees, 12},
	{"Pasta Carbonara", CategoryMains, 15},
	{"Steak", CategoryMains, 20},
	{"Blue Cod & Scallops", CategoryMains, 18},
	{"Chocolate Brownie", CategoryDesserts, 10},
	{"Ice Cream Sundae", CategoryDesserts, 5},
	{"Affogato", CategoryDesserts, 5},
}

// MenuFor returns the seeded meal names for one category, in seed order.
func MenuFor(c Category) []string {
	var names []string
	for _, m := range SeedMeals {
		if m.Category == c {
			names = append(names, m.Name)
		}
	}
	return names
}

// variantPrefixes resolve items whose display text starts with a known
// base name followed by an option suffix, e.g. "Steak (Med Rare)".
var variantPrefixes = []struct {
	prefix   string
	category Category
}{
	{"Steak", CategoryMains},
	{"Ice Cream Sundae", CategoryDesserts},
	{"Affogato", CategoryDesserts},
}

// CategoryFor resolves an item's category: exact menu name match first,
// then variant prefixes. ok is false for unclassified items, which the
// draft appends without a header.
func CategoryFor(item string) (Category, bool) {
	for _, m := range SeedMeals {
		if m.Name == item {
			return m.Category, true
		}
	}
	for _, v := range variantPrefixes {
		if strings.HasPrefix(item, v.prefix) {
			return v.category, true
		}
	}
	return "", false
}

// IsHeader reports whether line is one of the category header sentinels.
func IsHeader(line string) bool {
	for _, c := range Categories {
		if line == c.Header() {
			return true
		}
	}
	return false
}
