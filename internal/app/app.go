package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/statuspage/internal/auth"
	"github.com/MrSnakeDoc/statuspage/internal/config"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/mw"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
	"github.com/MrSnakeDoc/statuspage/internal/redis"
	"github.com/MrSnakeDoc/statuspage/internal/sources/seed"
	"github.com/MrSnakeDoc/statuspage/internal/store"
	"github.com/MrSnakeDoc/statuspage/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/statuspage/internal/store/redis"
	"github.com/MrSnakeDoc/statuspage/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

// New loads configuration, opens the store, applies the seed file and
// builds the HTTP server.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	if cfg.DefaultSecret() {
		loggerClient.Warn("STATUSPAGE_JWT_SECRET is not set, tokens are signed with the development secret")
	}
	if cfg.AdminPassHash == "" && cfg.AdminPass == "password" {
		loggerClient.Warn("admin password is the default, set STATUSPAGE_ADMIN_PASS or STATUSPAGE_ADMIN_PASS_HASH")
	}

	gate, err := auth.New(auth.Config{
		Username:     cfg.AdminUser,
		Password:     cfg.AdminPass,
		PasswordHash: cfg.AdminPassHash,
		Secret:       cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build auth gate: %w", err)
	}

	st, redisClient, err := openStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, cfg.SeedFile, st, loggerClient); err != nil {
			closeRedis(redisClient, loggerClient)
			return nil, err
		}
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		APIPrefix:      cfg.APIPrefix,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Store:          st,
		Gate:           gate,
		LoginThrottle: mw.ThrottleConfig{
			Burst:     cfg.LoginBurst,
			PerMinute: cfg.LoginPerMinute,
		},
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.ServiceStore, *goredis.Client, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store, services are lost on restart")
		return memory.NewStore(), nil, nil
	}

	// Fail fast if Redis stays unavailable
	client, err := redis.Connect(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return redisstore.NewStore(client), client, nil
}

func applySeed(ctx context.Context, path string, st store.ServiceStore, log logger.Logger) error {
	f, err := seed.NewLoader(path).Load()
	if err != nil {
		return err
	}
	if _, err := seed.Apply(ctx, st, f, log.With(logger.String("seed_file", path))); err != nil {
		return fmt.Errorf("failed to apply seed: %w", err)
	}
	return nil
}

func closeRedis(client *goredis.Client, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warnf("failed to close redis: %v", err)
		return
	}
	log.Info("✅ Redis closed cleanly")
}

// Run serves until SIGINT/SIGTERM, then shuts down within ShutdownTimeout.
func (a *App) Run() error {
	a.logger.Infof("🚀 Starting statuspage %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info("build info",
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("store", a.cfg.Store),
		logger.String("api_prefix", a.cfg.APIPrefix))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		closeRedis(a.redisClient, a.logger)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	closeRedis(a.redisClient, a.logger)
	_ = a.logger.Sync()

	a.logger.Info("✅ statuspage stopped cleanly")
	return nil
}
