package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/veritasnetwork/veritas-core/internal/api/handlers"
	mw "github.com/veritasnetwork/veritas-core/internal/api/middleware"
	"github.com/veritasnetwork/veritas-core/internal/buildconfig"
	"github.com/veritasnetwork/veritas-core/internal/config"
	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/service"
	"github.com/veritasnetwork/veritas-core/internal/state"
	"github.com/veritasnetwork/veritas-core/internal/store"
)

// App wires the journaled state, the ledger services, and the HTTP surface
// the enclosing runtime exposes. The executor is the single writer; every
// mutating route runs inside one of its transactions.
type App struct {
	Router   *chi.Mux
	Executor *state.Executor
	Registry *service.RegistryService
	Beliefs  *service.BeliefService
	Ledger   *service.LedgerService
	Archiver *service.ArchiverService

	db           *pgxpool.Pool
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp builds the full application. db may be nil, in which case the
// submission archive is disabled.
func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// State: one journal, one collection per entity type, one executor.
	journal := state.NewJournal()
	agents := state.NewMap[domain.Address, domain.Agent](journal)
	beliefs := state.NewMap[domain.BeliefID, domain.Belief](journal)
	nextBeliefID := state.NewValue[domain.BeliefID](journal)
	submissions := state.NewList[domain.Submission](journal)
	exec := state.NewExecutor(journal)

	// Services
	registrySvc := service.NewRegistryService(agents)
	beliefSvc := service.NewBeliefService(beliefs, nextBeliefID)
	ledgerSvc := service.NewLedgerService(submissions)
	aggregatorSvc := service.NewAggregatorService(registrySvc, beliefSvc, ledgerSvc, logger)

	var archiverSvc *service.ArchiverService
	if db != nil {
		archiverSvc = service.NewArchiverService(store.NewArchive(db), logger)
		aggregatorSvc.SetArchiver(archiverSvc)
		logger.Info("submission archive enabled")
	}

	// Handlers
	agentHandler := handlers.NewAgentHandler(registrySvc, exec)
	beliefHandler := handlers.NewBeliefHandler(beliefSvc, ledgerSvc, exec)
	submissionHandler := handlers.NewSubmissionHandler(aggregatorSvc, exec)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Executor:  exec,
		Registry:  registrySvc,
		Beliefs:   beliefSvc,
		Ledger:    ledgerSvc,
		Archiver:  archiverSvc,
		db:        db,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		// Read-only queries: no caller identity needed.
		r.Get("/agents/{address}", agentHandler.GetByAddress)
		r.Get("/beliefs/{id}", beliefHandler.GetByID)
		r.Get("/beliefs/{id}/submissions", beliefHandler.Submissions)

		// Mutating calls carry the host-authenticated sender address.
		r.Group(func(r chi.Router) {
			r.Use(mw.CallerAuth)

			r.Post("/agents", agentHandler.Register)
			r.Post("/agents/stake/add", agentHandler.AddStake)
			r.Post("/agents/stake/withdraw", agentHandler.WithdrawStake)
			r.Post("/beliefs", beliefHandler.Create)
			r.Post("/submissions", submissionHandler.Submit)
		})
	})

	return app
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.db != nil {
			if err := app.db.Ping(r.Context()); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"height":         app.Executor.Height(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure the archive satisfies the sink interface at compile time.
var _ domain.ArchiveSink = (*store.Archive)(nil)
