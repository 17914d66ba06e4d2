package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"dealradar/internal/config"
	"dealradar/internal/domain/service/deal"
	"dealradar/internal/domain/service/plan"
	"dealradar/internal/infrastructure/openai"
	"dealradar/internal/infrastructure/persistence"
	"dealradar/internal/infrastructure/serpapi"
	"dealradar/internal/server"
	"dealradar/pkg/application/connectors"
	"dealradar/pkg/application/modules"
	"dealradar/pkg/httpx"
	"dealradar/pkg/logx"
	"dealradar/pkg/middlewarex"
)

func Run(ctx context.Context, log *slog.Logger) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	// 3. Repositories
	dealRepo := persistence.NewDealRepository(db)

	// 4. Внешние клиенты
	sensitiveDataMasker := logx.NewSensitiveDataMasker()

	serpClient, err := serpapi.NewClient(cfg.SerpAPI, &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(sensitiveDataMasker),
			httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
		),
		Timeout: cfg.SerpAPI.Timeout,
	})
	if err != nil {
		return fmt.Errorf("serpapi client: %w", err)
	}

	llmClient, err := openai.NewClient(cfg.OpenAI)
	if err != nil {
		return fmt.Errorf("openai client: %w", err)
	}

	// 5. Сервисы
	dealService := deal.NewService(serpClient, dealRepo, llmClient)
	planAdvisor := plan.NewAdvisor(llmClient)

	srv := server.NewServer(
		server.NewDealServer(dealService),
		server.NewPlanServer(planAdvisor),
	)

	// 6. HTTP
	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(sensitiveDataMasker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(sensitiveDataMasker, cfg.HTTP.LogFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:gosec
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
