package models

import "github.com/GregMSThompson/dashboard-backend/pkg/helpers"

// Category identifies the dashboard tab a widget belongs to.
type Category string

const (
	CategoryOverview Category = "overview"
	CategorySpending Category = "spending"
	CategoryAccounts Category = "accounts"
	CategoryReports  Category = "reports"
	CategoryAdmin    Category = "admin"
)

// Categories lists every tab in navigation order.
var Categories = []Category{
	CategoryOverview,
	CategorySpending,
	CategoryAccounts,
	CategoryReports,
	CategoryAdmin,
}

// Valid reports whether c is a known tab.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// RoleOverride replaces a widget's default visibility and/or order for one role.
// Either field may be set on its own.
type RoleOverride struct {
	Visible *bool    `json:"visible,omitempty"`
	Order   *float64 `json:"order,omitempty"`
}

// WidgetDescriptor is an immutable catalog entry.
type WidgetDescriptor struct {
	ID                  string                  `json:"id"`
	Category            Category                `json:"category"`
	Title               string                  `json:"title"`
	DefaultVisibility   *bool                   `json:"defaultVisibility,omitempty"`
	DefaultOrder        *float64                `json:"defaultOrder,omitempty"`
	RequiredPermissions []string                `json:"requiredPermissions,omitempty"`
	RoleBasedVisibility map[string]RoleOverride `json:"roleBasedVisibility,omitempty"`
	// IsCore marks widgets that should not be hidden. Advisory only.
	IsCore bool `json:"isCore,omitempty"`
}

// DefaultVisible returns the declared default visibility, true when unset.
func (d WidgetDescriptor) DefaultVisible() bool {
	return helpers.ValueOr(d.DefaultVisibility, true)
}
