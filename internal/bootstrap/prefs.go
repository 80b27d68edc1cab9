package bootstrap

import (
	"github.com/GregMSThompson/dashboard-backend/internal/config"
	"github.com/GregMSThompson/dashboard-backend/internal/layout"
	"github.com/GregMSThompson/dashboard-backend/internal/store"
)

// PreferenceStore picks the layout persistence backend named by cfg. Run
// must have opened the matching client.
func (bs *Bootstrap) PreferenceStore(cfg *config.Config) layout.PreferenceStore {
	switch cfg.PrefsBackend {
	case config.BackendRedis:
		return store.NewKVStore(store.NewRedisKV(bs.Redis), cfg.PrefsNamespace)
	case config.BackendMemory:
		return store.NewKVStore(store.NewMemoryKV(), cfg.PrefsNamespace)
	default:
		return store.NewDashboardStore(bs.Firestore, cfg.PrefsCollection, cfg.PrefsNamespace)
	}
}
