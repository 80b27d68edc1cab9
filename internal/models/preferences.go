package models

import "time"

// UserWidgetPreference is a user's (or the resolver's) visibility and order for one widget.
type UserWidgetPreference struct {
	ID       string         `firestore:"id" json:"id"`
	Visible  bool           `firestore:"visible" json:"visible"`
	Order    float64        `firestore:"order" json:"order"`
	Settings map[string]any `firestore:"settings,omitempty" json:"settings,omitempty"`
}

// UserDashboardLayoutPreferences is the unit of durable persistence, stored whole per user.
type UserDashboardLayoutPreferences struct {
	UserID    string                 `firestore:"userId" json:"userId"`
	Widgets   []UserWidgetPreference `firestore:"widgets" json:"widgets"`
	UpdatedAt time.Time              `firestore:"updatedAt" json:"updatedAt"`
}
