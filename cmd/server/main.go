package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/handler"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/service"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/activity"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/config"
	infmongo "github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/db/mongo"
	infredis "github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/db/redis"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/queue"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/store"
	"github.com/ElazAzel/Navyk-Saas-sub000/pkg/logger"
)

// systemClock satisfies ports.Clock with the real time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// logNotifier surfaces session notices through the structured log. A
// front-end deployment replaces this with a push channel to the client.
type logNotifier struct {
	clientID string
}

func (n logNotifier) Warn(message string) {
	log := logger.Component("session")
	log.Warn().Str("client_id", n.clientID).Msg(message)
}

func (n logNotifier) SessionEnded(reason string) {
	log := logger.Component("session")
	log.Info().Str("client_id", n.clientID).Str("reason", reason).Msg("session ended")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Mongo (identity store + incident audit trail; optional) ---
	var (
		identity  ports.IdentityService
		users     ports.UserRepository
		incidents ports.IncidentRepository
		health    *handler.HealthDependenciesHandler
	)
	mongoClient, mongoDB, err := infmongo.Connect(ctx, infmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Warn().Err(err).Msg("mongodb unavailable, identity store and audit trail disabled")
	} else {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		users = infmongo.NewUserRepository(mongoDB)
		incidents = infmongo.NewIncidentRepository(mongoDB)
		if cfg.AuthMode == "mongo" {
			identity = service.NewIdentityService(users)
		}
	}

	// --- Redis (session storage + audit dedup; optional) ---
	redisClient, err := infredis.Connect(ctx, infredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory session storage")
		redisClient = nil
	} else {
		defer func() { _ = redisClient.Close() }()
	}
	health = handler.NewHealthDependenciesHandler(mongoDB, redisClient)

	// --- Incident audit pipeline ---
	var audit ports.AuditSink
	if incidents != nil && redisClient != nil {
		auditService := service.NewAuditService(incidents, infredis.NewDedupChecker(redisClient), logger.Component("audit"))
		dispatcher := queue.NewDispatcher(0, auditService, logger.Component("audit"))
		dispatcher.Start(ctx)
		audit = dispatcher
	}

	// --- Sessions ---
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	var verifier ports.CredentialVerifier
	if identity != nil {
		verifier = identity
		log.Info().Msg("credential verification backed by the identity store")
	} else {
		verifier = service.NewMockCredentialVerifier()
		log.Warn().Msg("mock credential mode: any non-empty credentials are accepted")
	}

	hub := activity.NewHub()
	sessionConfig := service.DefaultSessionConfig(cfg.AppName)
	sessionConfig.RefreshWindow = cfg.Session.RefreshWindow
	sessionConfig.InactivityLimit = cfg.Session.InactivityLimit
	sessionConfig.CheckInterval = cfg.Session.CheckInterval
	sessionConfig.RateLimitWindow = cfg.Session.RateLimitWindow
	sessionConfig.RateLimitMax = cfg.Session.RateLimitMax

	sessions := service.NewSessionRegistry(ctx, func(clientID string) *service.SessionManager {
		sc := sessionConfig
		sc.ClientID = clientID

		var kv ports.KeyValueStore
		if redisClient != nil {
			kv = infredis.NewKeyValue(redisClient, clientID)
		} else {
			kv = store.NewMemory()
		}

		m := service.NewSessionManager(sc, service.SessionDeps{
			Tokens:   tokens,
			Verifier: verifier,
			Store:    kv,
			Notifier: logNotifier{clientID: clientID},
			Clock:    systemClock{},
			Audit:    audit,
			Doer:     &http.Client{Timeout: 15 * time.Second},
			Log:      logger.Component("session"),
		})
		m.Observe(hub.Source(clientID))
		return m
	})
	defer sessions.Close()
	sessions.Sweep(cfg.Session.CheckInterval, hub.Drop)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		Sessions:    sessions,
		Permissions: service.NewPermissionService(),
		Identity:    identity,
		Users:       users,
		Incidents:   incidents,
		Activity:    hub,
		Health:      health,
		JWTSecret:   cfg.JWTSecret,
		Log:         logger.Component("api"),
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("security service listening")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
