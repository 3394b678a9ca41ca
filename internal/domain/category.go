package domain

import "fmt"

// Category is a study subject and the multiplier applied to its minutes.
type Category struct {
	Name        string
	DisplayName string
	Color       string
	Difficulty  float64
}

// Label returns the display name, falling back to the name.
func (c Category) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Catalog is an ordered set of categories.
type Catalog []Category

// DefaultCatalog is the subject list a fresh install starts with.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "Mathematics", DisplayName: "Mathematics", Color: "blue", Difficulty: 1.0},
		{Name: "English", DisplayName: "English", Color: "yellow", Difficulty: 1.0},
		{Name: "Programming", DisplayName: "Programming", Color: "green", Difficulty: 1.2},
		{Name: "Machine Learning", DisplayName: "Machine Learning", Color: "red", Difficulty: 1.5},
	}
}

// Lookup finds a category by name.
func (c Catalog) Lookup(name string) (Category, error) {
	for _, cat := range c {
		if cat.Name == name {
			return cat, nil
		}
	}
	return Category{}, fmt.Errorf("%q: %w", name, ErrUnknownCategory)
}

// Names returns the category names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, cat := range c {
		names = append(names, cat.Name)
	}
	return names
}
