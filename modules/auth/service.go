package auth

import (
	"log/slog"
	"net/http"

	"github.com/studiohq/portal/pkg/csrf"
	"github.com/studiohq/portal/pkg/i18n"
	"github.com/studiohq/portal/pkg/push"
	"github.com/studiohq/portal/pkg/ratelimit"
	"github.com/studiohq/portal/pkg/session"
)

// Deps carries the collaborators the HTTP surface wires together.
type Deps struct {
	Accounts   AccountStore
	Sessions   *session.Manager
	Bearer     *session.BearerManager
	Guard      *csrf.Guard
	Limiter    *ratelimit.Limiter
	Registry   push.Registry
	Cron       http.Handler
	Translator *i18n.Translator
	Logger     *slog.Logger
}

// Service exposes the security layer over HTTP: login and logout for both
// transports, session introspection, CSRF issuance, push registration, and
// the cleanup trigger.
type Service struct {
	cfg        Config
	accounts   AccountStore
	sessions   *session.Manager
	bearer     *session.BearerManager
	guard      *csrf.Guard
	limiter    *ratelimit.Limiter
	registry   push.Registry
	cron       http.Handler
	translator *i18n.Translator
	log        *slog.Logger
}

// NewService creates the HTTP surface. All collaborators except the push
// registry and cron handler are required; the registry defaults to the
// disabled stub.
func NewService(cfg Config, deps Deps) *Service {
	if deps.Accounts == nil {
		panic("auth: account store is required")
	}
	if deps.Sessions == nil || deps.Bearer == nil {
		panic("auth: session managers are required")
	}
	if deps.Guard == nil {
		panic("auth: csrf guard is required")
	}
	if deps.Limiter == nil {
		panic("auth: rate limiter is required")
	}
	if deps.Translator == nil {
		panic("auth: translator is required")
	}
	if deps.Registry == nil {
		deps.Registry = push.Disabled{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Service{
		cfg:        cfg,
		accounts:   deps.Accounts,
		sessions:   deps.Sessions,
		bearer:     deps.Bearer,
		guard:      deps.Guard,
		limiter:    deps.Limiter,
		registry:   deps.Registry,
		cron:       deps.Cron,
		translator: deps.Translator,
		log:        deps.Logger,
	}
}

// msg resolves a guard message in the request's language.
func (s *Service) msg(r *http.Request, key string) string {
	lang := s.translator.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
	return s.translator.T(lang, key)
}
