package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"productbot/assistant/internal/bot"
	"productbot/assistant/internal/client"
	"productbot/assistant/internal/config"
	"productbot/assistant/internal/ingest"
	"productbot/assistant/internal/mirror"
	"productbot/assistant/internal/repository"
	"productbot/assistant/internal/service"
	"productbot/assistant/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Sheets     client.SheetsClient
	Repository repository.CatalogRepository
	States     state.UserStateStore

	Sync   *service.SyncService
	Router *service.Router
	Bot    *bot.Bot

	mirror *mirror.RedisMirror
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	sheets, err := newSheetsClient(ctx, cfg.Sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	container.Sheets = sheets

	var snapshotMirror mirror.SnapshotMirror
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// The mirror is optional, so an unreachable Redis only disables it.
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnf("⚠️ Redis unreachable, snapshot mirror disabled: %v", err)
			_ = rdb.Close()
		} else {
			log.Info("✅ Connected to Redis successfully")
			container.mirror = mirror.NewRedisMirror(rdb, cfg.Redis)
			snapshotMirror = container.mirror
		}
	}

	container.Repository = repository.NewCatalogRepository()
	container.States = state.NewMemoryStateStore()

	container.Sync = service.NewSyncService(
		ingest.NewIngestor(sheets),
		container.Repository,
		snapshotMirror,
		cfg.Tables,
		cfg.Sync.Concurrency,
	)
	container.Router = service.NewRouter(container.Repository, container.States)

	b, err := bot.New(cfg.Telegram, container.Router)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Bot = b

	return container, nil
}

func newSheetsClient(ctx context.Context, cfg config.SheetsConfig) (client.SheetsClient, error) {
	switch cfg.Backend {
	case config.SheetsBackendREST:
		log.Infof("📊 Using Sheets REST backend at %s", cfg.BaseURL)
		return client.NewRESTClient(cfg), nil
	default:
		log.Infof("📊 Using Sheets API backend with credentials from %s", cfg.CredentialsFile)
		return client.NewAPIClient(ctx, cfg, client.APIClientOptions(cfg)...)
	}
}

// Run loads the catalog once, then serves the bot and refreshes the catalog
// until ctx is cancelled.
func (c *Container) Run(ctx context.Context) error {
	if _, err := c.Sync.Bootstrap(ctx); err != nil {
		return fmt.Errorf("initial catalog sync failed: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Sync.Run(ctx, c.Config.SyncInterval())
	})

	g.Go(func() error {
		return c.Bot.Start(ctx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.mirror != nil {
		if err := c.mirror.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
