package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"equine-clinic/internal/adapters/auth/hosted"
	"equine-clinic/internal/adapters/auth/jwt"
	"equine-clinic/internal/adapters/blobstore"
	rediscoord "equine-clinic/internal/adapters/coord/redis"
	pg "equine-clinic/internal/adapters/storage/postgres"
	"equine-clinic/internal/config"
	"equine-clinic/internal/domain/clinics"
	"equine-clinic/internal/jobs"
	"equine-clinic/internal/platform/logger"
	"equine-clinic/internal/platform/metrics"
	"equine-clinic/internal/platform/validation"
	"equine-clinic/internal/router"
)

// @title Equine Clinic API
// @version 1.0
// @description Historias clínicas, agenda, eventos, inventario y facturación de una clínica veterinaria equina.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	validation.SetDefaultRegion(cfg.Phone.Region)

	opts := router.Options{
		Log:             log,
		Metrics:         metrics.New(),
		DefaultClinicID: cfg.Auth.DefaultClinicID,
		PresignTTL:      cfg.Blob.PresignTTL,
		MaxUpload:       cfg.Blob.MaxUpload,
		TaxRate:         &cfg.Billing.TaxRate,
	}

	// Si viene DSN usa Postgres; si no, in-memory.
	if cfg.Database.DSN != "" {
		db, err := openDatabase(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.DB = db
	}

	if cfg.Redis.Addr != "" {
		rdb, err := rediscoord.Open(ctx, rediscoord.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		opts.Redis = rdb
	}

	blobs, err := blobstore.Open(ctx, cfg.Blob)
	if err != nil {
		return err
	}
	opts.Blobs = blobs

	if err := configureAuth(&opts, cfg.Auth, log); err != nil {
		return err
	}

	app := router.New(opts)

	if cfg.Seed.OnStart {
		res, err := app.Clinics.Seed(ctx, app.Users, app.Veterinarians, clinics.SeedInput{
			ClinicID:      cfg.Auth.DefaultClinicID,
			ClinicName:    cfg.Seed.ClinicName,
			AdminEmail:    cfg.Seed.AdminEmail,
			AdminPassword: cfg.Seed.AdminPassword,
		})
		if err != nil {
			return err
		}
		log.Info("seed done", map[string]any{
			"clinic_created": res.ClinicCreated,
			"admin_created":  res.AdminCreated,
			"vet_created":    res.VetCreated,
		})
	}

	sched := jobs.NewScheduler(log)
	if err := sched.Add(cfg.Jobs.ReconcileCron, "reconcile_users", jobs.Reconcile(app.Users, log)); err != nil {
		return err
	}
	lowStock := jobs.CheckLowStock(app.Inventory, []string{cfg.Auth.DefaultClinicID}, app.Metrics.LowStockItems, log)
	if err := sched.Add(cfg.Jobs.LowStockCron, "low_stock", lowStock); err != nil {
		return err
	}
	sched.Start()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "dev_auth": cfg.Auth.DevMode()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	sched.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*sql.DB, error) {
	db, err := pg.Open(ctx, pg.Config{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		n, err := pg.Migrate(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("migrations applied", map[string]any{"count": n})
	}
	return db, nil
}

// configureAuth arma verifier/issuer JWT y el proveedor de identidad.
// Sin secreto queda en modo dev: no se asigna nada (interfaces nil, no punteros nil).
func configureAuth(opts *router.Options, cfg config.AuthConfig, log logger.Logger) error {
	if cfg.DevMode() {
		log.Warn("auth in dev mode: X-Debug-User-ID accepted, /auth/login disabled", nil)
		return nil
	}

	mgr, err := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return err
	}
	opts.AuthVerifier = mgr
	opts.TokenIssuer = mgr

	client, err := hosted.NewClient(hosted.Config{
		BaseURL: cfg.HostedURL,
		APIKey:  cfg.HostedAPIKey,
		Timeout: cfg.HostedTimeout,
	})
	switch {
	case errors.Is(err, hosted.ErrNotConfigured):
		log.Info("hosted auth not configured, using local passwords", nil)
	case err != nil:
		return err
	default:
		opts.Identity = client
	}
	return nil
}

