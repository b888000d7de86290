// Package bootstrap assembles the service from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZinnunMalikov/clipsmart-main/internal/assistant"
	"github.com/ZinnunMalikov/clipsmart-main/internal/cache"
	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/database"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/objectstore"
	"github.com/ZinnunMalikov/clipsmart-main/internal/storage"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

// closer releases a component on shutdown.
type closer func() error

// SetupAssistant returns nil when no API key is configured.
func SetupAssistant(cfg config.AssistantConfig, log logger.Logger, tp *telemetry.Provider) *assistant.Client {
	client, err := assistant.New(cfg, log, tp)
	if errors.Is(err, assistant.ErrNotConfigured) {
		log.Warn("Assistant disabled: ANTHROPIC_API_KEY not set, screenshot and calendar endpoints return 503")
		return nil
	}
	if err != nil {
		log.Warn("Assistant unavailable", logger.Error(err))
		return nil
	}
	log.Info("Assistant enabled", logger.String("model", cfg.Model))
	return client
}

// SetupCache returns nil when Redis is unconfigured or unreachable.
func SetupCache(cfg config.RedisConfig, log logger.Logger, tp *telemetry.Provider) (*cache.Cache, closer) {
	if !cfg.Enabled() {
		log.Info("Response cache disabled")
		return nil, nil
	}

	rdb, err := cache.NewClient(cfg)
	if err != nil {
		log.Warn("Response cache unavailable, continuing without it",
			logger.String("address", cfg.Address),
			logger.Error(err))
		return nil, nil
	}

	log.Info("Response cache connected", logger.String("address", cfg.Address))
	c := cache.New(rdb, cfg, log, tp)
	return c, c.Close
}

// SetupObjectStore returns nil when no bucket is configured.
func SetupObjectStore(ctx context.Context, cfg config.ObjectStoreConfig, log logger.Logger, tp *telemetry.Provider) *objectstore.Store {
	if !cfg.Enabled() {
		log.Info("Object storage disabled")
		return nil
	}

	store, err := objectstore.New(ctx, cfg, log, tp)
	if err != nil {
		log.Warn("Object storage unavailable, continuing without it", logger.Error(err))
		return nil
	}

	log.Info("Object storage enabled",
		logger.String("bucket", cfg.Bucket),
		logger.String("region", cfg.Region))
	return store
}

// SetupRequestLog opens the configured backend. A backend that cannot be
// reached falls back to discarding entries.
func SetupRequestLog(ctx context.Context, cfg *config.Config, log logger.Logger) (storage.RequestLog, closer) {
	switch cfg.RequestLog.Backend {
	case config.RequestLogElasticsearch:
		client, err := storage.NewElasticsearchClient(ctx, cfg.Elasticsearch, log)
		if err != nil {
			log.Warn("Elasticsearch request log unavailable", logger.Error(err))
			return storage.NopRequestLog{}, nil
		}
		return storage.NewElasticsearchRequestLog(client, cfg.Elasticsearch.Index), nil

	case config.RequestLogPostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Warn("Postgres request log unavailable", logger.Error(err))
			return storage.NopRequestLog{}, nil
		}
		log.Info("Postgres request log connected",
			logger.String("host", cfg.Database.Host),
			logger.String("database", cfg.Database.Database))
		return storage.NewPostgresRequestLog(db), db.Close

	default:
		return storage.NopRequestLog{}, nil
	}
}

// MigrateDatabase applies pending migrations to the configured database.
func MigrateDatabase(cfg config.DatabaseConfig, log logger.Logger, down int) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := database.NewMigrator(db.DB, log)
	if err != nil {
		return err
	}

	if down > 0 {
		err = m.Down(down)
	} else {
		err = m.Up()
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database left dirty at version %d", version)
	}
	log.Info("Database schema version", logger.Int("version", int(version)))
	return nil
}
