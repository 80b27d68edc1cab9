package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/pkg/logger"
)

// DefaultCollection holds one layout document per user.
const DefaultCollection = "dashboard_layouts"

type dashboardStore struct {
	client     *firestore.Client
	collection string
	namespace  string
}

// NewDashboardStore stores layout records as native Firestore documents,
// one per user, keyed by Key(namespace, uid).
func NewDashboardStore(client *firestore.Client, collection, namespace string) *dashboardStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &dashboardStore{client: client, collection: collection, namespace: namespace}
}

func (s *dashboardStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(Key(s.namespace, uid))
}

func (s *dashboardStore) Load(ctx context.Context, uid string) (*models.UserDashboardLayoutPreferences, error) {
	doc, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("dashboard layout not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get dashboard layout", err)
	}
	var prefs models.UserDashboardLayoutPreferences
	if err := doc.DataTo(&prefs); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse dashboard layout", err)
	}
	return &prefs, nil
}

func (s *dashboardStore) Save(ctx context.Context, uid string, prefs *models.UserDashboardLayoutPreferences) error {
	prefs.UserID = uid
	if prefs.UpdatedAt.IsZero() {
		prefs.UpdatedAt = time.Now()
	}
	if _, err := s.doc(uid).Set(ctx, prefs); err != nil {
		return errs.NewDatabaseError("update", "failed to save dashboard layout", err)
	}
	logger.FromContext(ctx).Debug("dashboard layout saved", "widgets", len(prefs.Widgets))
	return nil
}

func (s *dashboardStore) Clear(ctx context.Context, uid string) error {
	if _, err := s.doc(uid).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to clear dashboard layout", err)
	}
	return nil
}
