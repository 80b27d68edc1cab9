package layout

import (
	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

// Reconcile merges saved preferences with the current role-based defaults.
//
// Saved entries replace their default counterpart whole. Saved entries for
// widgets still in the catalog but missing from the defaults are appended;
// entries for widgets no longer in the catalog are dropped. Role rules that
// force visibility always win over saved visibility, saved order is kept.
func Reconcile(c *catalog.Catalog, saved *models.UserDashboardLayoutPreferences, roles []string) []models.UserWidgetPreference {
	defaults := Resolve(c, roles, nil)
	if saved == nil {
		return defaults
	}

	savedByID := make(map[string]models.UserWidgetPreference, len(saved.Widgets))
	for _, p := range saved.Widgets {
		if _, dup := savedByID[p.ID]; !dup {
			savedByID[p.ID] = p
		}
	}

	out := make([]models.UserWidgetPreference, 0, len(defaults))
	seen := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		if p, ok := savedByID[d.ID]; ok {
			out = append(out, p)
		} else {
			out = append(out, d)
		}
		seen[d.ID] = true
	}
	for _, p := range saved.Widgets {
		if seen[p.ID] || !c.Has(p.ID) {
			continue
		}
		out = append(out, p)
		seen[p.ID] = true
	}

	for i := range out {
		w, ok := c.Get(out[i].ID)
		if !ok {
			continue
		}
		if visible, forced := forcedVisibility(w, roles); forced {
			out[i].Visible = visible
		}
	}
	return out
}

// forcedVisibility reports whether role rules pin the widget's visibility for roles.
func forcedVisibility(w models.WidgetDescriptor, roles []string) (visible, forced bool) {
	if o, ok := matchRole(w, roles); ok && o.Visible != nil {
		return *o.Visible, true
	}
	if anonymousDenied(w, roles) {
		return false, true
	}
	return false, false
}

// driftedIDs lists saved widget ids that no longer exist in the catalog.
func driftedIDs(c *catalog.Catalog, saved *models.UserDashboardLayoutPreferences) []string {
	if saved == nil {
		return nil
	}
	var out []string
	for _, p := range saved.Widgets {
		if !c.Has(p.ID) {
			out = append(out, p.ID)
		}
	}
	return out
}
