package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/dto"
	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/layout"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/internal/perm"
	"github.com/GregMSThompson/dashboard-backend/pkg/logger"
)

// sessionGauge is satisfied by prometheus.Gauge.
type sessionGauge interface {
	Set(float64)
}

type session struct {
	state    *layout.State
	lastSeen time.Time
}

type dashboardService struct {
	catalog *catalog.Catalog
	oracle  perm.Oracle
	store   layout.PreferenceStore
	rec     layout.Recorder
	gauge   sessionGauge
	idle    time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	inits    singleflight.Group
}

// minJanitorInterval bounds how often idle sessions are swept.
const minJanitorInterval = time.Second

type DashboardOption func(*dashboardService)

func WithRecorder(r layout.Recorder) DashboardOption {
	return func(s *dashboardService) { s.rec = r }
}

func WithSessionGauge(g sessionGauge) DashboardOption {
	return func(s *dashboardService) { s.gauge = g }
}

// WithIdleTimeout sets how long an untouched session is kept in memory.
func WithIdleTimeout(d time.Duration) DashboardOption {
	return func(s *dashboardService) { s.idle = d }
}

// NewDashboardService owns one layout session per active user.
func NewDashboardService(c *catalog.Catalog, oracle perm.Oracle, store layout.PreferenceStore, opts ...DashboardOption) *dashboardService {
	s := &dashboardService{
		catalog:  c,
		oracle:   oracle,
		store:    store,
		idle:     30 * time.Minute,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Public service methods ---

func (s *dashboardService) GetTab(ctx context.Context, uid string, roles []string, tab models.Category) (dto.TabResponse, error) {
	if err := validateTab(tab); err != nil {
		return dto.TabResponse{}, err
	}
	st := s.ensure(ctx, uid, tab, roles)
	widgets := st.Tab(tab)
	if widgets == nil {
		widgets = []layout.Entry{}
	}
	return dto.TabResponse{Tab: tab, Widgets: widgets}, nil
}

func (s *dashboardService) GetLayout(ctx context.Context, uid string, roles []string) (dto.LayoutResponse, error) {
	st := s.ensureCurrent(ctx, uid, roles)
	return dto.LayoutResponse{CurrentTab: st.CurrentTab(), Widgets: st.Snapshot()}, nil
}

func (s *dashboardService) SetVisibility(ctx context.Context, uid string, roles []string, widgetID string, req dto.SetVisibilityRequest) (dto.MutationResponse, error) {
	if req.Visible == nil {
		return dto.MutationResponse{}, errs.NewValidationError("visible is required")
	}
	st := s.ensureCurrent(ctx, uid, roles)
	return dto.MutationResponse{WidgetID: widgetID, Applied: st.SetVisibility(ctx, widgetID, *req.Visible)}, nil
}

func (s *dashboardService) SetOrder(ctx context.Context, uid string, roles []string, widgetID string, req dto.SetOrderRequest) (dto.MutationResponse, error) {
	if req.Order == nil {
		return dto.MutationResponse{}, errs.NewValidationError("order is required")
	}
	st := s.ensureCurrent(ctx, uid, roles)
	return dto.MutationResponse{WidgetID: widgetID, Applied: st.SetOrder(ctx, widgetID, *req.Order)}, nil
}

func (s *dashboardService) SetSettings(ctx context.Context, uid string, roles []string, widgetID string, req dto.SetSettingsRequest) (dto.MutationResponse, error) {
	st := s.ensureCurrent(ctx, uid, roles)
	return dto.MutationResponse{WidgetID: widgetID, Applied: st.SetSettings(ctx, widgetID, req.Settings)}, nil
}

// ReorderTab applies a drag-and-drop result: each id's zero-based position
// becomes its order, written as a single layout save.
func (s *dashboardService) ReorderTab(ctx context.Context, uid string, roles []string, tab models.Category, req dto.ReorderTabRequest) (dto.ReorderResponse, error) {
	if err := validateTab(tab); err != nil {
		return dto.ReorderResponse{}, err
	}
	if len(req.WidgetIDs) == 0 {
		return dto.ReorderResponse{}, errs.NewValidationError("widgetIds must not be empty")
	}
	for _, id := range req.WidgetIDs {
		if w, ok := s.catalog.Get(id); ok && w.Category != tab {
			return dto.ReorderResponse{}, errs.NewValidationError("widget " + id + " does not belong to tab " + string(tab))
		}
	}
	st := s.ensure(ctx, uid, tab, roles)
	applied := st.BatchUpdateOrders(ctx, layout.PositionsFromIDs(req.WidgetIDs))
	return dto.ReorderResponse{Tab: tab, Applied: applied}, nil
}

func (s *dashboardService) ResetTab(ctx context.Context, uid string, roles []string, tab models.Category) (dto.TabResponse, error) {
	if err := validateTab(tab); err != nil {
		return dto.TabResponse{}, err
	}
	st := s.ensure(ctx, uid, tab, roles)
	st.ResetToDefaults(ctx, tab)
	widgets := st.Tab(tab)
	if widgets == nil {
		widgets = []layout.Entry{}
	}
	return dto.TabResponse{Tab: tab, Widgets: widgets}, nil
}

// ClearPreferences deletes the user's saved record and drops the session.
func (s *dashboardService) ClearPreferences(ctx context.Context, uid string) error {
	s.mu.Lock()
	sess, ok := s.sessions[uid]
	delete(s.sessions, uid)
	s.updateGaugeLocked()
	s.mu.Unlock()

	// pending writes land before the delete so they cannot resurrect the record
	if ok {
		sess.state.Close()
	}
	if err := s.store.Clear(ctx, uid); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("dashboard preferences cleared")
	return nil
}

// Catalog lists the widgets the caller's roles are permitted to see.
func (s *dashboardService) Catalog(_ context.Context, roles []string) dto.CatalogResponse {
	widgets := []models.WidgetDescriptor{}
	for _, w := range s.catalog.All() {
		if perm.HasAll(s.oracle, roles, w.RequiredPermissions) {
			widgets = append(widgets, w)
		}
	}
	return dto.CatalogResponse{Tabs: models.Categories, Widgets: widgets}
}

// EvictIdle closes sessions untouched for longer than the idle timeout.
func (s *dashboardService) EvictIdle(ctx context.Context) int {
	cutoff := s.now().Add(-s.idle)
	var evicted []*session

	s.mu.Lock()
	for uid, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			evicted = append(evicted, sess)
			delete(s.sessions, uid)
		}
	}
	s.updateGaugeLocked()
	s.mu.Unlock()

	for _, sess := range evicted {
		sess.state.Close()
	}
	if len(evicted) > 0 {
		logger.FromContext(ctx).Debug("evicted idle dashboard sessions", "count", len(evicted))
	}
	return len(evicted)
}

// RunJanitor evicts idle sessions every interval until ctx ends.
func (s *dashboardService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval < minJanitorInterval {
		interval = minJanitorInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.EvictIdle(ctx)
		}
	}
}

// Close flushes and drops every session.
func (s *dashboardService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.updateGaugeLocked()
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.state.Close()
	}
}

// --- Sessions ---

func (s *dashboardService) touch(uid string) *layout.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[uid]
	if !ok {
		opts := []layout.Option{}
		if s.rec != nil {
			opts = append(opts, layout.WithRecorder(s.rec))
		}
		sess = &session{state: layout.NewState(uid, s.catalog, s.oracle, s.store, opts...)}
		s.sessions[uid] = sess
		s.updateGaugeLocked()
	}
	sess.lastSeen = s.now()
	return sess.state
}

// ensure returns the user's session initialised for roles and viewing tab.
// The layout is only reloaded for a new session or changed roles; concurrent
// requests for the same pair share one load.
func (s *dashboardService) ensure(ctx context.Context, uid string, tab models.Category, roles []string) *layout.State {
	st := s.touch(uid)
	if st.NeedsInit(roles) {
		key := uid + "\x00" + strings.Join(roles, ",")
		s.inits.Do(key, func() (any, error) {
			if st.NeedsInit(roles) {
				st.Initialize(context.WithoutCancel(ctx), tab, roles)
			}
			return nil, nil
		})
	}
	st.SetCurrentTab(tab)
	return st
}

// ensureCurrent initialises against the session's current tab, or the first
// tab for a new session.
func (s *dashboardService) ensureCurrent(ctx context.Context, uid string, roles []string) *layout.State {
	st := s.touch(uid)
	tab := models.Categories[0]
	if st.Initialized() {
		tab = st.CurrentTab()
	}
	return s.ensure(ctx, uid, tab, roles)
}

func (s *dashboardService) updateGaugeLocked() {
	if s.gauge != nil {
		s.gauge.Set(float64(len(s.sessions)))
	}
}

// --- Validation ---

func validateTab(tab models.Category) error {
	if !tab.Valid() {
		return errs.NewValidationError("unknown tab: " + string(tab))
	}
	return nil
}
