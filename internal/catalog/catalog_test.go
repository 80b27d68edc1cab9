package catalog

import (
	"testing"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.WidgetDescriptor{
		{ID: "a", Category: models.CategoryOverview},
		{ID: "a", Category: models.CategorySpending},
	})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestNew_RejectsUnknownCategory(t *testing.T) {
	_, err := New([]models.WidgetDescriptor{{ID: "a", Category: "nope"}})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestNew_RejectsEmptyID(t *testing.T) {
	if _, err := New([]models.WidgetDescriptor{{Category: models.CategoryOverview}}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestByCategory_PreservesDeclarationOrder(t *testing.T) {
	c := MustNew([]models.WidgetDescriptor{
		{ID: "b", Category: models.CategoryOverview},
		{ID: "x", Category: models.CategorySpending},
		{ID: "a", Category: models.CategoryOverview},
	})
	got := c.ByCategory(models.CategoryOverview)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 widgets, got %d", c.Len())
	}
}

func TestGet(t *testing.T) {
	c := Default()
	w, ok := c.Get(WidgetTopSpenders)
	if !ok {
		t.Fatal("expected topSpenders in default catalog")
	}
	if w.Category != models.CategoryOverview {
		t.Errorf("unexpected category: %s", w.Category)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected missing widget lookup to fail")
	}
	if c.Has("missing") {
		t.Error("expected Has to be false for missing widget")
	}
}

func TestDefault_EveryCategoryPopulated(t *testing.T) {
	c := Default()
	for _, cat := range models.Categories {
		if len(c.ByCategory(cat)) == 0 {
			t.Errorf("category %s has no widgets", cat)
		}
	}
}

func TestDescriptorsAreCopies(t *testing.T) {
	visible, order := false, 4.0
	c := MustNew([]models.WidgetDescriptor{{
		ID:                  "a",
		Category:            models.CategoryOverview,
		DefaultVisibility:   &visible,
		RequiredPermissions: []string{"VIEW_DASHBOARD"},
		RoleBasedVisibility: map[string]models.RoleOverride{"admin": {Order: &order}},
	}})
	visible = true

	w, _ := c.Get("a")
	*w.RoleBasedVisibility["admin"].Order = 0
	w.RoleBasedVisibility["viewer"] = models.RoleOverride{}
	w.RequiredPermissions[0] = "MANAGE_USERS"
	all := c.All()
	*all[0].DefaultVisibility = true
	tab := c.ByCategory(models.CategoryOverview)
	tab[0].RequiredPermissions[0] = "MANAGE_USERS"

	got, _ := c.Get("a")
	if got.DefaultVisible() {
		t.Error("expected default visibility to stay false")
	}
	if *got.RoleBasedVisibility["admin"].Order != 4 {
		t.Errorf("expected override order 4, got %v", *got.RoleBasedVisibility["admin"].Order)
	}
	if _, ok := got.RoleBasedVisibility["viewer"]; ok {
		t.Error("expected override map to be unchanged")
	}
	if got.RequiredPermissions[0] != "VIEW_DASHBOARD" {
		t.Errorf("expected permissions unchanged, got %v", got.RequiredPermissions)
	}
}
