package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"todolist/internal/config"
	"todolist/internal/storage"
	"todolist/internal/todo"
)

// openKV is swapped in tests to inject backend failures.
var openKV = storage.Open

// OpenStore is the default StoreFactory. It opens the configured backend
// under cfg.Dir and loads the saved tasks into a new store.
func OpenStore(ctx context.Context, cfg *config.Config) (*todo.Store, func() error, error) {
	settings := cfg.Settings.Storage
	if settings.Backend == "" || settings.Backend == storage.BackendFile {
		if err := cfg.EnsureDir(); err != nil {
			return nil, nil, fmt.Errorf("create config dir: %w", err)
		}
	}

	kv, closeKV, err := openKV(storage.Options{
		Backend:  settings.Backend,
		Dir:      cfg.StoragePath(),
		RedisURL: settings.RedisURL,
	})
	if err != nil {
		return nil, nil, err
	}

	var logger log.FieldLogger
	if cfg.Log != nil {
		logger = cfg.Log
	}

	repo := storage.NewTaskRepository(kv, settings.Key, logger)
	store, err := todo.NewStore(ctx, repo,
		todo.WithTimestampLayout(cfg.Settings.TimestampLayout),
		todo.WithLogger(logger),
	)
	if err != nil {
		if cerr := closeKV(); cerr != nil && cfg.Log != nil {
			cfg.Log.WithError(cerr).Warn("cli.close_failed")
		}
		return nil, nil, err
	}
	if cfg.Log != nil {
		cfg.Log.WithField("key", repo.Key()).Debug("cli.store_opened")
	}
	return store, closeKV, nil
}
