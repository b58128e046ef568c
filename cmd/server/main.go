package main

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/studiohq/portal/modules/auth"
	"github.com/studiohq/portal/pkg/cleanup"
	"github.com/studiohq/portal/pkg/config"
	"github.com/studiohq/portal/pkg/cookie"
	"github.com/studiohq/portal/pkg/csrf"
	"github.com/studiohq/portal/pkg/httpserver"
	"github.com/studiohq/portal/pkg/logger"
	"github.com/studiohq/portal/pkg/mongo"
	"github.com/studiohq/portal/pkg/push"
	"github.com/studiohq/portal/pkg/ratelimit"
	"github.com/studiohq/portal/pkg/redis"
	"github.com/studiohq/portal/pkg/session"
	"github.com/studiohq/portal/pkg/token"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"portal"`

	// CookieSecrets signs session cookies; list newest first, older
	// entries stay valid for rotation
	CookieSecrets []string `env:"COOKIE_SECRETS,required" envSeparator:","`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName))
	logger.SetAsDefault(log)

	// Entropy probe: a broken random source must abort boot, not degrade
	// into guessable tokens
	_ = token.Must()

	var httpCfg httpserver.Config
	var mongoCfg mongo.Config
	var redisCfg redis.Config
	var sessionCfg session.Config
	var csrfCfg csrf.Config
	var limitCfg ratelimit.Config
	var cleanupCfg cleanup.Config
	var authCfg auth.Config
	config.MustLoad(&httpCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&csrfCfg)
	config.MustLoad(&limitCfg)
	config.MustLoad(&cleanupCfg)
	config.MustLoad(&authCfg)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		log.ErrorContext(ctx, "document store connection failed", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
		os.Exit(1)
	}

	sessionStore := session.NewMongoStore(db)
	if err := sessionStore.EnsureIndexes(ctx); err != nil {
		log.ErrorContext(ctx, "session index setup failed", logger.Error(err))
		os.Exit(1)
	}

	csrfStore := csrf.NewMongoStore(db)
	if err := csrfStore.EnsureIndexes(ctx); err != nil {
		log.ErrorContext(ctx, "csrf index setup failed", logger.Error(err))
		os.Exit(1)
	}

	cookies, err := cookie.New(appCfg.CookieSecrets)
	if err != nil {
		log.ErrorContext(ctx, "cookie manager setup failed", logger.Error(err))
		os.Exit(1)
	}

	translator, err := auth.NewDefaultTranslator(authCfg.DefaultLanguage)
	if err != nil {
		log.ErrorContext(ctx, "translator setup failed", logger.Error(err))
		os.Exit(1)
	}

	limitStore := ratelimit.NewRedisStore(redisClient)
	scheduler := cleanup.NewScheduler(sessionStore, csrfStore, limitStore,
		cleanup.WithLogger(log),
	)

	svc := auth.NewService(authCfg, auth.Deps{
		Accounts: auth.NewMongoAccountStore(db),
		Sessions: session.NewManager(sessionStore, cookies,
			session.WithConfig(sessionCfg),
			session.WithLogger(log),
		),
		Bearer: session.NewBearerManager(sessionStore,
			session.WithConfig(sessionCfg),
			session.WithLogger(log),
		),
		Guard: csrf.NewGuard(csrfStore, cookies,
			csrf.WithConfig(csrfCfg),
			csrf.WithLogger(log),
		),
		Limiter: ratelimit.NewLimiter(limitStore,
			ratelimit.WithPolicies(limitCfg.Policies()),
		),
		Registry:   push.NewMongoRegistry(db),
		Cron:       cleanup.Handler(scheduler, cleanupCfg.CronSecret),
		Translator: translator,
		Logger:     log,
	})

	r := chi.NewRouter()
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		mongo.Healthcheck(db.Client()),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/", svc.Handle())

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := server.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}
