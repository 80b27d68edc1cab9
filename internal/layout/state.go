package layout

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/internal/perm"
	"github.com/GregMSThompson/dashboard-backend/pkg/logger"
)

// PreferenceStore is the durable per-user persistence of layout preferences.
// Load returns *errs.NotFoundError when the user has no saved record.
type PreferenceStore interface {
	Load(ctx context.Context, uid string) (*models.UserDashboardLayoutPreferences, error)
	Save(ctx context.Context, uid string, prefs *models.UserDashboardLayoutPreferences) error
	Clear(ctx context.Context, uid string) error
}

// Recorder receives layout persistence outcomes.
type Recorder interface {
	ObserveLoad(result string)
	ObservePersist(result string)
	ObserveLookupMiss()
}

type nopRecorder struct{}

func (nopRecorder) ObserveLoad(string)    {}
func (nopRecorder) ObservePersist(string) {}
func (nopRecorder) ObserveLookupMiss()    {}

// Load and persist results reported to the Recorder.
const (
	ResultOK         = "ok"
	ResultNotFound   = "not_found"
	ResultError      = "error"
	ResultSuperseded = "superseded"
)

// OrderUpdate sets the order of one widget.
type OrderUpdate struct {
	ID    string  `json:"id"`
	Order float64 `json:"order"`
}

// PositionsFromIDs turns a post-drop id sequence into order updates, each id's
// zero-based position becoming its order. Repeated ids keep their first position.
func PositionsFromIDs(ids []string) []OrderUpdate {
	out := make([]OrderUpdate, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, OrderUpdate{ID: id, Order: float64(i)})
	}
	return out
}

type Option func(*State)

// WithRecorder reports load and persist outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(s *State) { s.rec = r }
}

// State is the layout of one user's active session. All methods are safe for
// concurrent use; each mutation is applied atomically and followed by a
// fire-and-forget write of the full layout. Once closed, a State ignores
// further mutations.
type State struct {
	uid     string
	catalog *catalog.Catalog
	oracle  perm.Oracle
	store   PreferenceStore
	rec     Recorder
	writer  *writer

	// initMu is held exclusively across Initialize's load and swap, and
	// shared by mutations, so no mutation lands between the two.
	initMu sync.RWMutex

	mu            sync.Mutex
	activeWidgets []models.UserWidgetPreference
	currentTab    models.Category
	roles         []string
	initialized   bool
	closed        bool
}

func NewState(uid string, c *catalog.Catalog, oracle perm.Oracle, store PreferenceStore, opts ...Option) *State {
	s := &State{
		uid:     uid,
		catalog: c,
		oracle:  oracle,
		store:   store,
		rec:     nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writer = newWriter(s.persist, func() { s.rec.ObservePersist(ResultSuperseded) })
	return s
}

// Initialize loads the user's saved record and reconciles it against roles.
// A failed load falls back to catalog defaults.
func (s *State) Initialize(ctx context.Context, tab models.Category, roles []string) {
	log := logger.FromContext(ctx)

	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.Closed() {
		log.Warn("initialize on closed dashboard layout", "uid", s.uid)
		return
	}

	// pending writes must land before the record is read back
	if err := s.writer.flush(ctx); err != nil {
		log.Warn("dashboard layout flush interrupted", "uid", s.uid, "error", err)
	}

	saved, err := s.store.Load(ctx, s.uid)
	switch {
	case err == nil:
		s.rec.ObserveLoad(ResultOK)
	case errs.IsNotFound(err):
		s.rec.ObserveLoad(ResultNotFound)
		saved = nil
	default:
		s.rec.ObserveLoad(ResultError)
		log.Warn("failed to load dashboard layout, using defaults", "uid", s.uid, "error", err)
		saved = nil
	}

	if logger.IsDebugEnabled(ctx) {
		if drifted := driftedIDs(s.catalog, saved); len(drifted) > 0 {
			log.Debug("ignoring saved widgets missing from catalog", "uid", s.uid, "widget_ids", drifted)
		}
	}
	widgets := Reconcile(s.catalog, saved, roles)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeWidgets = widgets
	s.currentTab = tab
	s.roles = slices.Clone(roles)
	s.initialized = true
}

// NeedsInit reports whether the layout must be loaded and reconciled for
// roles. The active layout spans every tab, so switching tabs never needs it.
// Role order matters because overrides are first-match.
func (s *State) NeedsInit(roles []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.initialized || !slices.Equal(s.roles, roles)
}

// SetCurrentTab records the tab the user is viewing without touching the layout.
func (s *State) SetCurrentTab(tab models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTab = tab
}

func (s *State) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *State) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *State) CurrentTab() models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTab
}

func (s *State) Roles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.roles)
}

// Snapshot returns a copy of the active preferences in storage order.
func (s *State) Snapshot() []models.UserWidgetPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activeWidgets)
}

// Tab projects the widgets to render for tab. Empty until initialised.
func (s *State) Tab(tab models.Category) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil
	}
	return ProjectEntries(s.catalog, s.oracle, tab, s.roles, s.activeWidgets)
}

// SetVisibility shows or hides one widget. It reports false, without
// persisting, when the widget is not in the active layout.
func (s *State) SetVisibility(ctx context.Context, id string, visible bool) bool {
	return s.mutateOne(ctx, id, func(p *models.UserWidgetPreference) { p.Visible = visible })
}

// SetOrder sets the raw order of one widget. Entries are not re-sorted.
func (s *State) SetOrder(ctx context.Context, id string, order float64) bool {
	return s.mutateOne(ctx, id, func(p *models.UserWidgetPreference) { p.Order = order })
}

// SetSettings replaces the opaque per-widget settings.
func (s *State) SetSettings(ctx context.Context, id string, settings map[string]any) bool {
	settings = maps.Clone(settings)
	return s.mutateOne(ctx, id, func(p *models.UserWidgetPreference) { p.Settings = settings })
}

func (s *State) mutateOne(ctx context.Context, id string, fn func(*models.UserWidgetPreference)) bool {
	s.initMu.RLock()
	defer s.initMu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedLocked(ctx) {
		return false
	}
	i := s.indexOf(id)
	if i < 0 {
		s.lookupMiss(ctx, id)
		return false
	}
	fn(&s.activeWidgets[i])
	s.submitLocked(ctx)
	return true
}

// BatchUpdateOrders applies every update in one mutation and persists once.
// Unknown ids are skipped. It returns the number of updates applied.
func (s *State) BatchUpdateOrders(ctx context.Context, updates []OrderUpdate) int {
	s.initMu.RLock()
	defer s.initMu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedLocked(ctx) {
		return 0
	}
	applied := 0
	for _, u := range updates {
		i := s.indexOf(u.ID)
		if i < 0 {
			s.lookupMiss(ctx, u.ID)
			continue
		}
		s.activeWidgets[i].Order = u.Order
		applied++
	}
	if applied > 0 {
		s.submitLocked(ctx)
	}
	return applied
}

// ResetToDefaults replaces the entries of tab with its role-based defaults.
// Widgets of other tabs are left untouched.
func (s *State) ResetToDefaults(ctx context.Context, tab models.Category) {
	s.initMu.RLock()
	defer s.initMu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedLocked(ctx) {
		return
	}
	if !s.initialized {
		logger.FromContext(ctx).Warn("reset requested before layout initialised", "uid", s.uid, "tab", tab)
		return
	}

	defaults := Resolve(s.catalog, s.roles, &tab)
	kept := make([]models.UserWidgetPreference, 0, len(s.activeWidgets))
	for _, p := range s.activeWidgets {
		if w, ok := s.catalog.Get(p.ID); ok && w.Category == tab {
			continue
		}
		kept = append(kept, p)
	}
	kept = append(kept, defaults...)
	slices.SortStableFunc(kept, func(a, b models.UserWidgetPreference) int {
		switch {
		case a.Order < b.Order:
			return -1
		case a.Order > b.Order:
			return 1
		}
		return 0
	})
	s.activeWidgets = kept
	s.submitLocked(ctx)
}

// Flush waits for pending layout writes.
func (s *State) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close writes any pending layout and stops the background writer. Mutations
// after Close are dropped, so a closed session can no longer write.
func (s *State) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.writer.close()
}

// closedLocked reports, with a warning, a mutation on a closed State. s.mu must be held.
func (s *State) closedLocked(ctx context.Context) bool {
	if s.closed {
		logger.FromContext(ctx).Warn("dashboard layout session closed, change dropped", "uid", s.uid)
	}
	return s.closed
}

func (s *State) indexOf(id string) int {
	for i, p := range s.activeWidgets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) lookupMiss(ctx context.Context, id string) {
	s.rec.ObserveLookupMiss()
	logger.FromContext(ctx).Warn("widget not in active layout", "uid", s.uid, "widget_id", id)
}

// submitLocked hands a snapshot of the current layout to the writer. s.mu must be held.
func (s *State) submitLocked(ctx context.Context) {
	prefs := &models.UserDashboardLayoutPreferences{
		UserID:    s.uid,
		Widgets:   slices.Clone(s.activeWidgets),
		UpdatedAt: time.Now(),
	}
	s.writer.submit(writeJob{ctx: context.WithoutCancel(ctx), prefs: prefs})
}

func (s *State) persist(j writeJob) {
	if err := s.store.Save(j.ctx, s.uid, j.prefs); err != nil {
		s.rec.ObservePersist(ResultError)
		logger.FromContext(j.ctx).Error("failed to persist dashboard layout", "uid", s.uid, "error", err)
		return
	}
	s.rec.ObservePersist(ResultOK)
}
