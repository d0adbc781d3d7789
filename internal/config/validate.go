package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if !c.Auth.DevMode() && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 characters"))
	}
	if (c.Auth.HostedURL == "") != (c.Auth.HostedAPIKey == "") {
		errs = append(errs, errors.New("auth.hosted_url and auth.hosted_api_key go together"))
	}

	switch strings.ToLower(c.Blob.Driver) {
	case "memory":
	case "s3":
		if c.Blob.S3Bucket == "" {
			errs = append(errs, errors.New("blob.s3_bucket required for s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("blob.driver must be memory or s3, got %q", c.Blob.Driver))
	}

	if c.Billing.TaxRate < 0 {
		errs = append(errs, errors.New("billing.tax_rate must be >= 0"))
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"jobs.reconcile_cron": c.Jobs.ReconcileCron,
		"jobs.low_stock_cron": c.Jobs.LowStockCron,
	} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if c.Seed.OnStart && len(c.Seed.AdminPassword) < 8 {
		errs = append(errs, errors.New("seed.admin_password must be at least 8 characters when seed.on_start is set"))
	}

	return errors.Join(errs...)
}

// Addr devuelve host:port para http.Server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
