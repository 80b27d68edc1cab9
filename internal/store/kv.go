package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

// KV is a string-keyed blob store with single-key atomicity. Get returns
// *errs.NotFoundError for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type kvStore struct {
	kv        KV
	namespace string
}

// NewKVStore stores layout records JSON-encoded under Key(namespace, uid).
func NewKVStore(kv KV, namespace string) *kvStore {
	return &kvStore{kv: kv, namespace: namespace}
}

func (s *kvStore) Load(ctx context.Context, uid string) (*models.UserDashboardLayoutPreferences, error) {
	raw, err := s.kv.Get(ctx, Key(s.namespace, uid))
	if err != nil {
		return nil, err
	}
	var prefs models.UserDashboardLayoutPreferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse dashboard layout", err)
	}
	return &prefs, nil
}

func (s *kvStore) Save(ctx context.Context, uid string, prefs *models.UserDashboardLayoutPreferences) error {
	prefs.UserID = uid
	if prefs.UpdatedAt.IsZero() {
		prefs.UpdatedAt = time.Now()
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to encode dashboard layout", err)
	}
	return s.kv.Set(ctx, Key(s.namespace, uid), raw)
}

func (s *kvStore) Clear(ctx context.Context, uid string) error {
	return s.kv.Remove(ctx, Key(s.namespace, uid))
}
