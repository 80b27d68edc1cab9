package layout

import (
	"context"
	"sync"

	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/internal/perm"
	"github.com/GregMSThompson/dashboard-backend/pkg/helpers"
)

// --- Fixtures ---

func testCatalog() *catalog.Catalog {
	return catalog.MustNew([]models.WidgetDescriptor{
		{ID: "A", Category: models.CategoryOverview, DefaultVisibility: helpers.Ptr(true), DefaultOrder: helpers.Ptr(1.0)},
		{ID: "B", Category: models.CategoryOverview, DefaultVisibility: helpers.Ptr(true), DefaultOrder: helpers.Ptr(2.0)},
		{ID: "C", Category: models.CategoryReports, DefaultVisibility: helpers.Ptr(true), RequiredPermissions: []string{perm.ViewReports}},
		{
			ID:                "D",
			Category:          models.CategoryAdmin,
			DefaultVisibility: helpers.Ptr(false),
			RoleBasedVisibility: map[string]models.RoleOverride{
				perm.RoleAdmin: {Visible: helpers.Ptr(true)},
			},
		},
		{ID: "E", Category: models.CategoryReports, DefaultVisibility: helpers.Ptr(false)},
		{ID: "F", Category: models.CategoryReports, DefaultVisibility: helpers.Ptr(false), IsCore: true},
	})
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func prefIDs(p []models.UserWidgetPreference) []string {
	return ids(p, func(p models.UserWidgetPreference) string { return p.ID })
}

func descIDs(d []models.WidgetDescriptor) []string {
	return ids(d, func(d models.WidgetDescriptor) string { return d.ID })
}

func find(p []models.UserWidgetPreference, id string) (models.UserWidgetPreference, bool) {
	for _, e := range p {
		if e.ID == id {
			return e, true
		}
	}
	return models.UserWidgetPreference{}, false
}

// --- Fakes ---

type fakePrefStore struct {
	mu      sync.Mutex
	records map[string]*models.UserDashboardLayoutPreferences
	saves   []*models.UserDashboardLayoutPreferences
	loadErr error
	saveErr error
	gate    chan struct{}

	loadStarted chan struct{}
	loadGate    chan struct{}
}

func newFakePrefStore() *fakePrefStore {
	return &fakePrefStore{records: make(map[string]*models.UserDashboardLayoutPreferences)}
}

func (f *fakePrefStore) Load(_ context.Context, uid string) (*models.UserDashboardLayoutPreferences, error) {
	if f.loadStarted != nil {
		f.loadStarted <- struct{}{}
	}
	if f.loadGate != nil {
		<-f.loadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	rec, ok := f.records[uid]
	if !ok {
		return nil, errs.NewNotFoundError("dashboard layout not found")
	}
	return rec, nil
}

func (f *fakePrefStore) Save(_ context.Context, uid string, prefs *models.UserDashboardLayoutPreferences) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, prefs)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[uid] = prefs
	return nil
}

func (f *fakePrefStore) Clear(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, uid)
	return nil
}

func (f *fakePrefStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakePrefStore) record(uid string) *models.UserDashboardLayoutPreferences {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[uid]
}

type fakeRecorder struct {
	mu         sync.Mutex
	loads      []string
	persists   []string
	lookupMiss int
}

func (r *fakeRecorder) ObserveLoad(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads = append(r.loads, result)
}

func (r *fakeRecorder) ObservePersist(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persists = append(r.persists, result)
}

func (r *fakeRecorder) ObserveLookupMiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookupMiss++
}
