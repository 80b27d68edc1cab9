// Package catalog holds the immutable registry of dashboard widgets.
package catalog

import (
	"fmt"
	"slices"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

// Catalog is a fixed, ordered set of widget descriptors. Declaration order is
// the tie-breaker everywhere widgets are sorted.
type Catalog struct {
	widgets []models.WidgetDescriptor
	index   map[string]int
}

// New validates descriptors and builds a catalog. Ids must be unique and every
// widget must belong to a known category.
func New(widgets []models.WidgetDescriptor) (*Catalog, error) {
	c := &Catalog{
		widgets: make([]models.WidgetDescriptor, len(widgets)),
		index:   make(map[string]int, len(widgets)),
	}
	for i, w := range widgets {
		if w.ID == "" {
			return nil, errs.NewValidationError(fmt.Sprintf("widget at position %d has no id", i))
		}
		if !w.Category.Valid() {
			return nil, errs.NewValidationError(fmt.Sprintf("widget %q has unknown category %q", w.ID, w.Category))
		}
		if _, dup := c.index[w.ID]; dup {
			return nil, errs.NewValidationError("duplicate widget id: " + w.ID)
		}
		c.widgets[i] = clone(w)
		c.index[w.ID] = i
	}
	return c, nil
}

// MustNew is New for load-time catalogs; it panics on invalid input.
func MustNew(widgets []models.WidgetDescriptor) *Catalog {
	c, err := New(widgets)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every descriptor in declaration order. Descriptors returned by
// the catalog are deep copies; callers may modify them freely.
func (c *Catalog) All() []models.WidgetDescriptor {
	out := make([]models.WidgetDescriptor, len(c.widgets))
	for i, w := range c.widgets {
		out[i] = clone(w)
	}
	return out
}

// ByCategory returns the descriptors of one tab in declaration order.
func (c *Catalog) ByCategory(cat models.Category) []models.WidgetDescriptor {
	var out []models.WidgetDescriptor
	for _, w := range c.widgets {
		if w.Category == cat {
			out = append(out, clone(w))
		}
	}
	return out
}

func (c *Catalog) Get(id string) (models.WidgetDescriptor, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.WidgetDescriptor{}, false
	}
	return clone(c.widgets[i]), true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len is the number of widgets in the catalog.
func (c *Catalog) Len() int { return len(c.widgets) }

func clone(w models.WidgetDescriptor) models.WidgetDescriptor {
	w.DefaultVisibility = clonePtr(w.DefaultVisibility)
	w.DefaultOrder = clonePtr(w.DefaultOrder)
	w.RequiredPermissions = slices.Clone(w.RequiredPermissions)
	if w.RoleBasedVisibility != nil {
		overrides := make(map[string]models.RoleOverride, len(w.RoleBasedVisibility))
		for role, o := range w.RoleBasedVisibility {
			overrides[role] = models.RoleOverride{Visible: clonePtr(o.Visible), Order: clonePtr(o.Order)}
		}
		w.RoleBasedVisibility = overrides
	}
	return w
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
