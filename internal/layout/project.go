package layout

import (
	"sort"

	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/internal/perm"
	"github.com/GregMSThompson/dashboard-backend/pkg/helpers"
)

// Entry is one widget to render on a tab, with its effective order and settings.
type Entry struct {
	Widget   models.WidgetDescriptor `json:"widget"`
	Order    float64                 `json:"order"`
	Settings map[string]any          `json:"settings,omitempty"`
}

// ProjectEntries computes the widgets of category that should render for roles,
// given the session's active preferences. Computed on every call.
func ProjectEntries(c *catalog.Catalog, oracle perm.Oracle, category models.Category, roles []string, active []models.UserWidgetPreference) []Entry {
	byID := make(map[string]models.UserWidgetPreference, len(active))
	for _, p := range active {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	var out []Entry
	for _, w := range c.ByCategory(category) {
		p, hasPref := byID[w.ID]

		visible := w.DefaultVisible()
		if hasPref {
			visible = p.Visible
		} else if o, ok := matchRole(w, roles); ok && o.Visible != nil {
			visible = *o.Visible
		}
		if !visible {
			continue
		}
		if !perm.HasAll(oracle, roles, w.RequiredPermissions) {
			continue
		}

		e := Entry{Widget: w, Order: helpers.ValueOr(w.DefaultOrder, FallbackVisibleOrder)}
		if hasPref {
			e.Order = p.Order
			e.Settings = p.Settings
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Project is ProjectEntries reduced to the ordered descriptors.
func Project(c *catalog.Catalog, oracle perm.Oracle, category models.Category, roles []string, active []models.UserWidgetPreference) []models.WidgetDescriptor {
	entries := ProjectEntries(c, oracle, category, roles, active)
	out := make([]models.WidgetDescriptor, len(entries))
	for i, e := range entries {
		out[i] = e.Widget
	}
	return out
}
