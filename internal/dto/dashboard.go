package dto

import (
	"github.com/GregMSThompson/dashboard-backend/internal/layout"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

// --- Request types ---

type SetVisibilityRequest struct {
	Visible *bool `json:"visible"`
}

type SetOrderRequest struct {
	Order *float64 `json:"order"`
}

type SetSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}

// ReorderTabRequest carries the post-drop widget id sequence of one tab.
type ReorderTabRequest struct {
	WidgetIDs []string `json:"widgetIds"`
}

// --- Response types ---

type TabResponse struct {
	Tab     models.Category `json:"tab"`
	Widgets []layout.Entry  `json:"widgets"`
}

type LayoutResponse struct {
	CurrentTab models.Category               `json:"currentTab"`
	Widgets    []models.UserWidgetPreference `json:"widgets"`
}

// MutationResponse reports whether a single-widget change was applied. A
// widget outside the active layout is not an error.
type MutationResponse struct {
	WidgetID string `json:"widgetId"`
	Applied  bool   `json:"applied"`
}

type ReorderResponse struct {
	Tab     models.Category `json:"tab"`
	Applied int             `json:"applied"`
}

type CatalogResponse struct {
	Tabs    []models.Category         `json:"tabs"`
	Widgets []models.WidgetDescriptor `json:"widgets"`
}
