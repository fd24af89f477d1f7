// Package app provides application-level wiring and dependency injection
// for the listing service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"homeboard/internal/api"
	"homeboard/internal/authz"
	"homeboard/internal/config"
	"homeboard/internal/db/repository"
	"homeboard/internal/service"
)

// auditPruneSchedule runs the retention sweep once a day, off-peak.
const auditPruneSchedule = "0 3 * * *"

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler and CLI need.
type Services struct {
	Users *service.UserService
	Homes *service.HomeService
	Audit *service.AuditService
}

// App holds the fully-wired application.
type App struct {
	Services Services
	Guard    *authz.Guard
	Handler  *api.Handler

	cfg    *config.Config
	logger *slog.Logger
	cron   *cron.Cron
}

// New wires all repositories, services, the guard, and the API handler from
// the provided deps.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories. Writes go through the single-connection pool; the
	// search path reads through the concurrent pool.
	userRepo := repository.NewUserRepo(deps.WriteDB, deps.ReadDB)
	homeRepo := repository.NewHomeRepo(deps.WriteDB, deps.ReadDB)
	messageRepo := repository.NewMessageRepo(deps.WriteDB, deps.ReadDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB, deps.ReadDB)

	issuer, err := authz.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create token issuer: %w", err)
	}

	var validator authz.TokenValidator
	if cfg.Auth.OIDCEnabled() {
		validator, err = authz.NewOIDCValidator(ctx, cfg.Auth.IssuerURL, cfg.Auth.Audience, cfg.Auth.AllowedIssuers)
		if err != nil {
			return nil, fmt.Errorf("create oidc validator: %w", err)
		}
		deps.Logger.Info("token validation via oidc", "issuer", cfg.Auth.IssuerURL)
	} else {
		validator, err = authz.NewHS256Validator(cfg.Auth.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("create hs256 validator: %w", err)
		}
	}

	guard := authz.NewGuard(validator, authz.DefaultPolicy())

	userSvc := service.NewUserService(userRepo, auditRepo, issuer, cfg.ProductKeySecret)
	homeSvc := service.NewHomeService(homeRepo, messageRepo, auditRepo)
	auditSvc := service.NewAuditService(auditRepo, deps.Logger.With("component", "audit"))

	handler := api.NewHandler(guard, userSvc, homeSvc, auditSvc, deps.Logger.With("component", "api"))

	return &App{
		Services: Services{Users: userSvc, Homes: homeSvc, Audit: auditSvc},
		Guard:    guard,
		Handler:  handler,
		cfg:      cfg,
		logger:   deps.Logger,
		cron:     cron.New(),
	}, nil
}

// StartPruner schedules the daily audit retention sweep and starts the cron
// runner. Call StopPruner on shutdown.
func (a *App) StartPruner() error {
	retention := a.cfg.AuditRetention
	_, err := a.cron.AddFunc(auditPruneSchedule, func() {
		a.Services.Audit.Prune(context.Background(), retention)
	})
	if err != nil {
		return fmt.Errorf("schedule audit prune: %w", err)
	}
	a.cron.Start()
	a.logger.Info("audit pruner started", "schedule", auditPruneSchedule, "retention", retention)
	return nil
}

// StopPruner stops the cron runner.
func (a *App) StopPruner() {
	a.cron.Stop()
}
