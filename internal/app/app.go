// Package app wires the advisory handlers to their stores and backends so
// every transport (HTTP, job workers, CLI, Telegram) shares one setup.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agro-advisor/internal/catalog"
	"agro-advisor/internal/common/config"
	"agro-advisor/internal/common/database"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/common/random"
	"agro-advisor/internal/session"

	chatreply "agro-advisor/internal/workers/advisory/chat-reply"
	simulatecrop "agro-advisor/internal/workers/advisory/simulate-crop"
	searchproducts "agro-advisor/internal/workers/catalog/search-products"
	toggleproductselection "agro-advisor/internal/workers/catalog/toggle-product-selection"
	builddashboard "agro-advisor/internal/workers/dashboard/build-dashboard"
	lookuplocation "agro-advisor/internal/workers/location/lookup-location"
	toggleconnectivity "agro-advisor/internal/workers/preferences/toggle-connectivity"
	togglevoice "agro-advisor/internal/workers/preferences/toggle-voice"
)

type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Obs      *observability.Observability
	Sessions *session.Manager
	Catalog  *catalog.Catalog
	Tips     *builddashboard.TipBoard

	Redis         *database.RedisClient
	Elasticsearch *database.ElasticsearchClient

	Chat         *chatreply.Handler
	Simulator    *simulatecrop.Handler
	Search       *searchproducts.Handler
	Selection    *toggleproductselection.Handler
	Location     *lookuplocation.Handler
	Voice        *togglevoice.Handler
	Connectivity *toggleconnectivity.Handler
	Dashboard    *builddashboard.Handler
}

// New connects the configured backends and builds every handler. obs may be
// nil, in which case job metrics go to a no-op recorder.
func New(ctx context.Context, cfg *config.Config, obs *observability.Observability, log logger.Logger) (*App, error) {
	if obs == nil {
		obs = observability.NewNoop()
	}

	a := &App{Config: cfg, Logger: log, Obs: obs}

	c, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	a.Catalog = c

	if cfg.Session.Backend == config.SessionBackendRedis {
		err := RetryWithBackoff(ctx, func() error {
			client, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := client.Ping(ctx); err != nil {
				_ = client.Close()
				return err
			}
			a.Redis = client
			return nil
		}, 5, time.Second, log, "Redis connection")
		if err != nil {
			return nil, err
		}
		log.Info("Redis connected successfully", map[string]interface{}{"address": cfg.Database.Redis.Address})
	}

	var store session.Store = session.NewMemoryStore()
	if a.Redis != nil {
		store = session.NewRedisStore(a.Redis)
	}
	a.Sessions = session.NewManager(store, cfg.Session.TTLDuration(), log)

	var searcher searchproducts.Searcher = searchproducts.NewMemorySearcher(c)
	if cfg.Catalog.Backend == config.CatalogBackendElasticsearch {
		err := RetryWithBackoff(ctx, func() error {
			client, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := client.Ping(ctx); err != nil {
				return err
			}
			a.Elasticsearch = client
			return nil
		}, 5, time.Second, log, "Elasticsearch connection")
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := searchproducts.IndexCatalog(ctx, a.Elasticsearch, cfg.Catalog.Index, c); err != nil {
			a.Close()
			return nil, fmt.Errorf("index catalog: %w", err)
		}
		searcher = searchproducts.NewElasticsearchSearcher(a.Elasticsearch, cfg.Catalog.Index, c)
		log.Info("Catalog indexed into Elasticsearch", map[string]interface{}{"index": cfg.Catalog.Index})
	}

	rng := random.New(cfg.Mock.Seed)
	a.Tips = builddashboard.NewTipBoard(builddashboard.DefaultTips, cfg.Dashboard.TipsPerDay)

	a.Chat = chatreply.NewHandler(chatreply.LoadConfig(cfg), a.Sessions, obs, log)
	a.Simulator = simulatecrop.NewHandler(simulatecrop.LoadConfig(cfg), a.Sessions, rng, obs, log)
	a.Search = searchproducts.NewHandler(searchproducts.LoadConfig(cfg), c, searcher, a.Redis, obs, log)
	a.Selection = toggleproductselection.NewHandler(toggleproductselection.LoadConfig(cfg), c, a.Sessions, obs, log)
	a.Location = lookuplocation.NewHandler(lookuplocation.LoadConfig(cfg), a.Sessions, rng, obs, log)
	a.Voice = togglevoice.NewHandler(togglevoice.LoadConfig(cfg), a.Sessions, obs, log)
	a.Connectivity = toggleconnectivity.NewHandler(toggleconnectivity.LoadConfig(cfg), a.Sessions, obs, log)
	a.Dashboard = builddashboard.NewHandler(builddashboard.LoadConfig(cfg), a.Sessions, a.Tips, obs, log)

	return a, nil
}

// JobHandlers maps every task type to its job handler.
func (a *App) JobHandlers() map[string]worker.JobHandler {
	return map[string]worker.JobHandler{
		chatreply.TaskType:              a.Chat.Handle,
		simulatecrop.TaskType:           a.Simulator.Handle,
		searchproducts.TaskType:         a.Search.Handle,
		toggleproductselection.TaskType: a.Selection.Handle,
		lookuplocation.TaskType:         a.Location.Handle,
		togglevoice.TaskType:            a.Voice.Handle,
		toggleconnectivity.TaskType:     a.Connectivity.Handle,
		builddashboard.TaskType:         a.Dashboard.Handle,
	}
}

// Ready reports whether the configured backends answer.
func (a *App) Ready(ctx context.Context) error {
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if a.Elasticsearch != nil {
		if err := a.Elasticsearch.Ping(ctx); err != nil {
			return fmt.Errorf("elasticsearch: %w", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("error closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
}
