package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/cache"
	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/db"
	"github.com/2beens/gymtracker/internal/gymstats/diet"
	"github.com/2beens/gymtracker/internal/gymstats/export"
	"github.com/2beens/gymtracker/internal/gymstats/schedule"
	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/gymstats/storage/local"
	"github.com/2beens/gymtracker/internal/gymstats/storage/postgres"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/health"
	"github.com/2beens/gymtracker/internal/kv"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const statsCacheExpireSeconds = 5 * 60

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	dbPool  *pgxpool.Pool
	dbStore *postgres.Store // nil with the local backend
	repo    workouts.Repo
	dietKV  kv.Store

	redisClient    *redis.Client
	authService    *auth.Service
	sessionCleanup *cron.Cron

	workoutsService *workouts.Service
	statsCache      *cache.StatsCache

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool

	// AllowList defaults to auth.DefaultAllowList hashed with the configured cost.
	AllowList *auth.AllowList

	// RedisClient is used as is when set (tests); otherwise one is created
	// from the config.
	RedisClient *redis.Client
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	rdb := params.RedisClient
	if rdb == nil {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymtracker", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		redisClient:  rdb,
		otelShutdown: otelShutdown,
	}

	var extraCollectors []prometheus.Collector
	switch cfg.StorageBackend {
	case config.StorageRemote:
		if err := s.remoteStorageSetup(ctx, params); err != nil {
			return nil, err
		}
		extraCollectors = append(extraCollectors, db.PoolCollector(s.dbPool, cfg.PostgresDBName))
		// diet check-offs are per device state and stay in redis
		s.dietKV = kv.NewRedisStore(rdb)
	default:
		if err := s.localStorageSetup(ctx); err != nil {
			return nil, err
		}
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("gymtracker", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	allowList := params.AllowList
	if allowList == nil {
		allowList, err = auth.NewAllowList(auth.DefaultAllowList, cfg.PasswordHashCost)
		if err != nil {
			return nil, fmt.Errorf("hash allow list: %w", err)
		}
	}

	sessionTTL, err := cfg.SessionTTLDuration()
	if err != nil {
		return nil, fmt.Errorf("session ttl: %w", err)
	}
	s.authService = auth.NewAuthService(allowList, s.repo, sessionTTL, rdb)
	s.sessionCleanup, err = auth.ScheduleCleanup(ctx, s.authService, cfg.SessionCleanupSchedule)
	if err != nil {
		return nil, err
	}

	s.statsCache = cache.NewStatsCache(cfg.StatsCacheSizeMB*1024*1024, statsCacheExpireSeconds)
	s.workoutsService = workouts.NewService(s.repo, s.metricsManager)
	s.workoutsService.OnChange(s.statsCache.Invalidate)

	return s, nil
}

func (s *Server) localStorageSetup(ctx context.Context) error {
	var kvStore kv.Store
	switch s.config.LocalStorageKind {
	case config.LocalKindRedis:
		kvStore = kv.NewRedisStore(s.redisClient)
	default:
		fileStore, err := kv.NewFileStore(s.config.LocalStorageDir)
		if err != nil {
			return fmt.Errorf("new file store: %w", err)
		}
		kvStore = fileStore
	}

	localStore := local.NewStore(kvStore)
	if err := localStore.Init(ctx); err != nil {
		return fmt.Errorf("init local store: %w", err)
	}

	s.repo = localStore
	s.dietKV = kvStore
	log.Debugf("local storage [%s] ready", s.config.LocalStorageKind)
	return nil
}

func (s *Server) remoteStorageSetup(ctx context.Context, params NewServerParams) error {
	poolParams := db.NewDBPoolParams{
		DBHost:         s.config.PostgresHost,
		DBPort:         s.config.PostgresPort,
		DBName:         s.config.PostgresDBName,
		DBUser:         s.config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       s.config.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if s.config.RunMigrations {
		if err := postgres.Migrate(ctx, poolParams.ConnString()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Debugln("db migrations done")
	}

	dbPool, err := db.NewDBPool(ctx, poolParams)
	if err != nil {
		return fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	s.dbPool = dbPool
	s.dbStore = postgres.NewStore(dbPool)
	s.repo = s.dbStore
	return nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService, s.metricsManager)
	authHandler.SetupRoutes(r, middleware.RateLimit(
		reqRateLimiter,
		"login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	scheduleHandler := schedule.NewHandler(s.repo)
	r.HandleFunc("/schedule", scheduleHandler.HandleWeek).Methods("GET", "OPTIONS").Name("schedule-week")
	r.HandleFunc("/schedule/today", scheduleHandler.HandleToday).Methods("GET", "OPTIONS").Name("schedule-today")
	r.HandleFunc("/schedule/day/{day}", scheduleHandler.HandleDay).Methods("GET", "OPTIONS").Name("schedule-day")
	r.HandleFunc("/catalog", scheduleHandler.HandleCatalog).Methods("GET", "OPTIONS").Name("catalog")

	workoutsHandler := workouts.NewHandler(s.workoutsService, s.metricsManager)
	r.HandleFunc("/gymstats/sessions", workoutsHandler.HandleCreateSession).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/gymstats/sessions", workoutsHandler.HandleListSessions).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/gymstats/sessions/{id}", workoutsHandler.HandleGetSession).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/gymstats/sessions/{id}", workoutsHandler.HandleUpdateSession).Methods("PUT", "OPTIONS").Name("update-session")
	r.HandleFunc("/gymstats/sessions/{id}", workoutsHandler.HandleDeleteSession).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/gymstats/sessions/{id}/complete", workoutsHandler.HandleCompleteSession).Methods("POST", "OPTIONS").Name("complete-session")
	r.HandleFunc("/gymstats/exercises", workoutsHandler.HandleLogExercise).Methods("POST", "OPTIONS").Name("log-exercise")
	r.HandleFunc("/gymstats/import", workoutsHandler.HandleImport).Methods("POST", "OPTIONS").Name("import-exercises")
	r.HandleFunc("/gymstats/sets", workoutsHandler.HandleListSets).Methods("GET", "OPTIONS").Name("list-sets")
	r.HandleFunc("/gymstats/sets/{id}", workoutsHandler.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/gymstats/sets/{id}", workoutsHandler.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")
	r.HandleFunc("/gymstats/progress", workoutsHandler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")
	r.HandleFunc("/gymstats/weights", workoutsHandler.HandleSaveWeight).Methods("POST", "OPTIONS").Name("new-weight")
	r.HandleFunc("/gymstats/weights", workoutsHandler.HandleListWeights).Methods("GET", "OPTIONS").Name("list-weights")
	r.HandleFunc("/gymstats/weights/{id}", workoutsHandler.HandleDeleteWeight).Methods("DELETE", "OPTIONS").Name("delete-weight")

	statsHandler := stats.NewHandler(s.workoutsService, s.statsCache, s.metricsManager)
	r.HandleFunc("/gymstats/exercises", statsHandler.HandleExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/gymstats/stats/progress", statsHandler.HandleExerciseProgress).Methods("GET", "OPTIONS").Name("stats-progress")
	r.HandleFunc("/gymstats/stats/{view}", statsHandler.HandleView).Methods("GET", "OPTIONS").Name("stats-view")

	exportHandler := export.NewHandler(s.workoutsService, s.metricsManager)
	r.HandleFunc("/gymstats/export/{kind}", exportHandler.HandleExport).Methods("GET", "OPTIONS").Name("export")

	dietHandler := diet.NewHandler(diet.NewTracker(s.dietKV))
	r.HandleFunc("/diet/plan", dietHandler.HandlePlan).Methods("GET", "OPTIONS").Name("diet-plan")
	r.HandleFunc("/diet/day/{date}", dietHandler.HandleDay).Methods("GET", "OPTIONS").Name("diet-day")
	r.HandleFunc("/diet/day/{date}/water", dietHandler.HandleAddWater).Methods("POST", "OPTIONS").Name("diet-add-water")
	r.HandleFunc("/diet/day/{date}/water", dietHandler.HandleResetWater).Methods("DELETE", "OPTIONS").Name("diet-reset-water")
	r.HandleFunc("/diet/day/{date}/meals/{meal}", dietHandler.HandleToggleMeal).Methods("POST", "OPTIONS").Name("diet-toggle-meal")

	var dbChecker health.DBChecker
	if s.dbStore != nil {
		dbChecker = s.dbStore
	}
	healthHandler := health.NewHandler(s.config.StorageBackend, dbChecker, s.redisClient)
	r.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET", "OPTIONS").Name("health")
	r.HandleFunc("/health/db", healthHandler.HandleDB).Methods("GET", "OPTIONS").Name("health-db")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(s.config.MaxBodyBytes))

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
	log.Debugf("running version: %s", s.versionInfo)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.sessionCleanup != nil {
		s.sessionCleanup.Stop()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeOpenConnections.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeOpenConnections.Add(-1)
	default:
		// do nothing
	}
}
