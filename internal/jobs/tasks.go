package jobs

import (
	"context"
	"errors"
	"fmt"

	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/users"
	"equine-clinic/internal/platform/logger"
)

type reconciler interface {
	ReconcileDuplicates(ctx context.Context) ([]users.DuplicateReport, error)
}

// Reconcile envuelve users.ReconcileDuplicates como job.
func Reconcile(r reconciler, log logger.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		reports, err := r.ReconcileDuplicates(ctx)
		if err != nil {
			return err
		}
		var deleted int
		for _, rep := range reports {
			deleted += len(rep.Deleted)
		}
		log.Info("duplicate users reconciled", map[string]any{"groups": len(reports), "deleted": deleted})
		return nil
	}
}

type lowStockSource interface {
	LowStock(ctx context.Context, clinicID string) ([]inventory.Item, error)
}

type gauge interface {
	Set(float64)
}

// CheckLowStock cuenta los ítems bajo mínimo de cada clínica y publica el total.
func CheckLowStock(src lowStockSource, clinicIDs []string, g gauge, log logger.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var (
			total int
			errs  []error
		)
		for _, clinicID := range clinicIDs {
			items, err := src.LowStock(ctx, clinicID)
			if err != nil {
				errs = append(errs, fmt.Errorf("clinic %s: %w", clinicID, err))
				continue
			}
			total += len(items)
			for _, it := range items {
				log.Warn("low stock", map[string]any{
					"clinic_id": clinicID,
					"item_id":   it.ID,
					"item":      it.Name,
					"stock":     it.Stock,
					"minimum":   it.Minimum,
				})
			}
		}
		g.Set(float64(total))
		return errors.Join(errs...)
	}
}
