package store

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

func sampleLayout() *models.UserDashboardLayoutPreferences {
	return &models.UserDashboardLayoutPreferences{
		Widgets: []models.UserWidgetPreference{
			{ID: "topSpenders", Visible: true, Order: 2.5, Settings: map[string]any{"limit": float64(5), "dimension": "merchant"}},
			{ID: "netWorth", Visible: false, Order: 1999},
			{ID: "welcome", Visible: true, Order: -1},
		},
	}
}

func assertRoundTrip(t *testing.T, got, want *models.UserDashboardLayoutPreferences) {
	t.Helper()
	if len(got.Widgets) != len(want.Widgets) {
		t.Fatalf("expected %d widgets, got %d", len(want.Widgets), len(got.Widgets))
	}
	byID := make(map[string]models.UserWidgetPreference, len(got.Widgets))
	for _, w := range got.Widgets {
		byID[w.ID] = w
	}
	for _, w := range want.Widgets {
		g, ok := byID[w.ID]
		if !ok {
			t.Fatalf("widget %s missing after round trip", w.ID)
		}
		if g.Visible != w.Visible || g.Order != w.Order {
			t.Errorf("widget %s: got visible=%v order=%v, want %v/%v", w.ID, g.Visible, g.Order, w.Visible, w.Order)
		}
		for k, v := range w.Settings {
			if g.Settings[k] != v {
				t.Errorf("widget %s setting %s: got %v, want %v", w.ID, k, g.Settings[k], v)
			}
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key("ns", "u1"); got != "ns_u1" {
		t.Errorf("unexpected key %q", got)
	}
	if got := Key("", "u1"); got != DefaultNamespace+"_u1" {
		t.Errorf("unexpected default key %q", got)
	}
}

func TestKVStore_MemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewKVStore(kv, "ns")

	if _, err := s.Load(ctx, "u1"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError before save, got %v", err)
	}

	want := sampleLayout()
	if err := s.Save(ctx, "u1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("expected user id stamped, got %q", got.UserID)
	}
	assertRoundTrip(t, got, want)

	if _, err := kv.Get(ctx, "ns_u1"); err != nil {
		t.Errorf("expected record under namespaced key: %v", err)
	}

	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Load(ctx, "u1"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError after clear, got %v", err)
	}
}

func TestKVStore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, Key("ns", "u1"), []byte("{not json"))
	s := NewKVStore(kv, "ns")

	_, err := s.Load(ctx, "u1")
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %T: %v", err, err)
	}
}

func TestMemoryKV_IsolatesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	in := []byte("abc")
	_ = kv.Set(ctx, "k", in)
	in[0] = 'z'
	got, _ := kv.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("expected stored copy, got %q", got)
	}
}
