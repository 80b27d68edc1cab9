// Package layout resolves, reconciles, mutates and projects per-user dashboard layouts.
package layout

import (
	"math"
	"sort"

	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/pkg/helpers"
)

const (
	// FallbackVisibleOrder is assigned to visible widgets without an explicit order.
	FallbackVisibleOrder = 999
	// FallbackHiddenOrder is assigned to hidden widgets without an explicit order.
	FallbackHiddenOrder = 1999
)

// matchRole returns the override of the first role in roles present on the widget.
func matchRole(w models.WidgetDescriptor, roles []string) (models.RoleOverride, bool) {
	if len(w.RoleBasedVisibility) == 0 {
		return models.RoleOverride{}, false
	}
	for _, r := range roles {
		if o, ok := w.RoleBasedVisibility[r]; ok {
			return o, true
		}
	}
	return models.RoleOverride{}, false
}

// anonymousDenied is the default-deny rule for role-less callers.
func anonymousDenied(w models.WidgetDescriptor, roles []string) bool {
	return len(roles) == 0 &&
		len(w.RoleBasedVisibility) == 0 &&
		!w.DefaultVisible() &&
		!w.IsCore
}

func resolveOne(w models.WidgetDescriptor, roles []string) models.UserWidgetPreference {
	visible := w.DefaultVisible()
	order := helpers.ValueOr(w.DefaultOrder, math.Inf(1))
	if o, ok := matchRole(w, roles); ok {
		if o.Visible != nil {
			visible = *o.Visible
		}
		if o.Order != nil {
			order = *o.Order
		}
	}
	if anonymousDenied(w, roles) {
		visible = false
	}
	if math.IsInf(order, 1) {
		if visible {
			order = FallbackVisibleOrder
		} else {
			order = FallbackHiddenOrder
		}
	}
	return models.UserWidgetPreference{ID: w.ID, Visible: visible, Order: order}
}

// Resolve computes the default layout for roles from the catalog alone. A nil
// category resolves the whole catalog. The result is sorted by order, ties in
// catalog order.
func Resolve(c *catalog.Catalog, roles []string, category *models.Category) []models.UserWidgetPreference {
	var widgets []models.WidgetDescriptor
	if category != nil {
		widgets = c.ByCategory(*category)
	} else {
		widgets = c.All()
	}
	out := make([]models.UserWidgetPreference, 0, len(widgets))
	for _, w := range widgets {
		out = append(out, resolveOne(w, roles))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
