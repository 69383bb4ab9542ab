package commands

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/api"
	"github.com/bilemo/bilemo-api/internal/api/handler"
	"github.com/bilemo/bilemo-api/internal/core/ports"
	"github.com/bilemo/bilemo-api/internal/core/service"
	"github.com/bilemo/bilemo-api/internal/infrastructure/db/mongo"
	"github.com/bilemo/bilemo-api/internal/infrastructure/db/redis"
	"github.com/bilemo/bilemo-api/internal/infrastructure/db/sqlstore"
	"github.com/bilemo/bilemo-api/internal/infrastructure/mail"
	"github.com/bilemo/bilemo-api/pkg/logger"
)

// app holds the wired services and the connections they sit on.
type app struct {
	db      *gorm.DB
	cache   *redis.PageCache
	audit   *mongo.AuditRepository
	clients *service.ClientService
	deps    api.Dependencies
}

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	db, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver: cfg.DB.Driver,
		DSN:    cfg.DB.DSN,
		Logger: logger.Component("gorm"),
	})
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db); err != nil {
			_ = sqlstore.Close(db)
			return nil, err
		}
	}
	return db, nil
}

// newApp connects every configured backend and builds the services. Redis
// and MongoDB are optional: an empty address leaves the feature off.
func newApp(ctx context.Context) (*app, error) {
	db, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	a := &app{db: db}
	store := sqlstore.NewStore(db)
	readiness := []handler.Dependency{{Name: "database", Pinger: store}}

	opts := service.Options{
		Store:      store,
		Tables:     sqlstore.NewTableDetails(db),
		CacheTTL:   cfg.Redis.PageTTL,
		Logger:     logger.Component("service"),
		BcryptCost: cfg.BcryptCost,
	}

	if cfg.Redis.Addr != "" {
		a.cache, err = redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		opts.Cache = a.cache
		readiness = append(readiness, handler.Dependency{Name: "redis", Pinger: a.cache})
	}

	if cfg.Mongo.URI != "" {
		a.audit, err = mongo.OpenAudit(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "bilemo-api",
		})
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		opts.Audit = a.audit
		readiness = append(readiness, handler.Dependency{Name: "mongodb", Pinger: a.audit})
	}

	opts.Notifier = newNotifier()

	a.clients = service.NewClientService(opts, cfg.Pages.Clients)
	a.deps = api.Dependencies{
		Auth:       service.NewAuthService(store.Clients(), cfg.JWTSecret, cfg.TokenTTL),
		Clients:    a.clients,
		Mobiles:    service.NewMobileService(opts, cfg.Pages.Mobiles),
		Users:      service.NewUserService(opts, cfg.Pages.Users),
		JWTSecret:  cfg.JWTSecret,
		LoginRate:  cfg.Login.Rate,
		LoginBurst: cfg.Login.Burst,
		Readiness:  readiness,
		Logger:     logger.Component("http"),
	}
	return a, nil
}

func newNotifier() ports.Notifier {
	l := logger.Component("mail")
	if cfg.Mail.Provider == "sendgrid" {
		return mail.NewSendGridNotifier(cfg.Mail.SendGridAPIKey, cfg.Mail.From, cfg.Mail.FromName, l)
	}
	return mail.NewLogNotifier(l)
}

func (a *app) close(ctx context.Context) {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	if a.audit != nil {
		errs = append(errs, a.audit.Close(ctx))
	}
	if a.db != nil {
		errs = append(errs, sqlstore.Close(a.db))
	}
	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Msg("error while closing connections")
	}
}
