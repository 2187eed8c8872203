package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/calmzone-backend/internal/data/db"
	"github.com/yungbote/calmzone-backend/internal/http"
	"github.com/yungbote/calmzone-backend/internal/jobs/reconcile"
	"github.com/yungbote/calmzone-backend/internal/observability"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	SSEHub   *realtime.SSEHub

	pg           *db.PostgresService
	reconciler   *reconcile.Scheduler
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if isProd(cfg.LogMode) {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel())

	pg, err := db.NewPostgresService(log, cfg.Postgres())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	hub := realtime.NewSSEHub(log)
	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(log, cfg, reposet, clients, hub)
	if err != nil {
		clients.Close()
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	sched, err := reconcile.New(log, cfg.ReconcileCron, serviceset.Board)
	if err != nil {
		clients.Close()
		_ = pg.Close()
		log.Sync()
		return nil, fmt.Errorf("init reconcile job: %w", err)
	}

	handlerset := wireHandlers(log, theDB, serviceset, hub)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clients,
		Services:     serviceset,
		SSEHub:       hub,
		pg:           pg,
		reconciler:   sched,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP and runs the background workers until ctx is cancelled or
// one of them fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	srv := http.NewServer(a.Cfg.Addr(), a.Router)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", srv.Addr())
		return srv.Run(gctx)
	})

	if a.Clients.BoardBus != nil {
		g.Go(func() error {
			if err := a.Clients.BoardBus.StartForwarder(gctx, a.SSEHub.Broadcast); err != nil {
				return fmt.Errorf("board forwarder: %w", err)
			}
			a.Log.Info("board forwarder started")
			<-gctx.Done()
			return nil
		})
	}

	if a.reconciler != nil {
		g.Go(func() error { return a.reconciler.Run(gctx) })
	}

	err := g.Wait()
	a.Log.Info("shutdown complete")
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.pg != nil {
		_ = a.pg.Close()
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func isProd(mode string) bool {
	m := strings.ToLower(strings.TrimSpace(mode))
	return m == "prod" || m == "production"
}
