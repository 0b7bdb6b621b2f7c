package models

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Category is one label of the closed set of expense categories.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryHousing        Category = "Housing"
	CategoryUtilities      Category = "Utilities"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealth         Category = "Health"
	CategoryEducation      Category = "Education"
	CategoryShopping       Category = "Shopping"
	CategoryTravel         Category = "Travel"
	CategoryOther          Category = "Other"
)

// DefaultCategory is assigned to expenses whose label is missing or unknown.
const DefaultCategory = CategoryOther

var allCategories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryHousing,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryShopping,
	CategoryTravel,
	CategoryOther,
}

type categoryStyle struct {
	icon  string
	color string
}

var categoryStyles = map[Category]categoryStyle{
	CategoryFood:           {icon: "fork.knife", color: "green"},
	CategoryTransportation: {icon: "car.fill", color: "blue"},
	CategoryHousing:        {icon: "house.fill", color: "brown"},
	CategoryUtilities:      {icon: "bolt.fill", color: "yellow"},
	CategoryEntertainment:  {icon: "tv.fill", color: "purple"},
	CategoryHealth:         {icon: "heart.fill", color: "red"},
	CategoryEducation:      {icon: "book.fill", color: "cyan"},
	CategoryShopping:       {icon: "cart.fill", color: "orange"},
	CategoryTravel:         {icon: "airplane", color: "indigo"},
	CategoryOther:          {icon: "square.grid.2x2.fill", color: "gray"},
}

// categoriesByFold indexes the closed set by case-folded label.
var categoriesByFold = func() map[string]Category {
	fold := cases.Fold()
	m := make(map[string]Category, len(allCategories))
	for _, c := range allCategories {
		m[fold.String(string(c))] = c
	}
	return m
}()

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return slices.Clone(allCategories)
}

// LookupCategory maps label onto the closed set, ignoring case and
// surrounding whitespace. The boolean is false for unknown labels.
func LookupCategory(label string) (Category, bool) {
	c, ok := categoriesByFold[cases.Fold().String(strings.TrimSpace(label))]
	return c, ok
}

// ParseCategory is the total form of LookupCategory: unknown labels map to
// DefaultCategory.
func ParseCategory(label string) Category {
	if c, ok := LookupCategory(label); ok {
		return c
	}
	return DefaultCategory
}

// Normalize returns c if it is a member of the closed set and
// DefaultCategory otherwise.
func (c Category) Normalize() Category {
	return ParseCategory(string(c))
}

// IsValid reports whether c is exactly one of the known labels.
func (c Category) IsValid() bool {
	_, ok := categoryStyles[c]
	return ok
}

// Icon returns the symbol name clients use to render the category.
func (c Category) Icon() string {
	return categoryStyles[c.Normalize()].icon
}

// Color returns the color name clients use to render the category.
func (c Category) Color() string {
	return categoryStyles[c.Normalize()].color
}

// Scan implements sql.Scanner. Labels read from storage are normalized, so
// a row written by an older client never surfaces an unknown category.
func (c *Category) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = DefaultCategory
	case string:
		*c = ParseCategory(v)
	case []byte:
		*c = ParseCategory(string(v))
	default:
		return fmt.Errorf("models: cannot scan %T into Category", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (c Category) Value() (driver.Value, error) {
	return string(c.Normalize()), nil
}
