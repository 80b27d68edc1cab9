package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/dashboard-backend/internal/config"
	"github.com/GregMSThompson/dashboard-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Redis     *redis.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	switch cfg.PrefsBackend {
	case config.BackendFirestore:
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	case config.BackendRedis:
		bs.Redis, err = InitRedis(applicationCtx, cfg.RedisURL)
	}
	if err != nil {
		return bs, err
	}

	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

// Close releases whichever backend clients were opened.
func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.Redis != nil {
		errList = append(errList, bs.Redis.Close())
	}
	return errors.Join(errList...)
}
