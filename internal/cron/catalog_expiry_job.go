package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	promotion "github.com/xeroscommerce/pricing-service/internal/promotions"
	"github.com/xeroscommerce/pricing-service/pkg/logger"
)

const expiryWarningWindow = 7 * 24 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogSweeper interface {
	DeactivateExpired(ctx context.Context, before time.Time) (int64, error)
	CountExpiringWithin(ctx context.Context, from, until time.Time) (int64, error)
}

type sweeperFactory func(tx *gorm.DB) catalogSweeper

func defaultSweeper(tx *gorm.DB) catalogSweeper {
	return promotion.NewRepository(tx)
}

// CatalogExpiryJobParams configure the promo catalog sweep.
type CatalogExpiryJobParams struct {
	Logger         *logger.Logger
	DB             txRunner
	SweeperFactory sweeperFactory
}

// NewCatalogExpiryJob builds the cron job that deactivates promo catalogs
// whose window has closed. Expired catalogs are already invisible to the
// promotion lookup; the sweep keeps the table honest and shrinks the window
// scan over time.
func NewCatalogExpiryJob(params CatalogExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	factory := params.SweeperFactory
	if factory == nil {
		factory = defaultSweeper
	}
	return &catalogExpiryJob{
		logg:    params.Logger,
		db:      params.DB,
		factory: factory,
		now:     time.Now,
	}, nil
}

type catalogExpiryJob struct {
	logg    *logger.Logger
	db      txRunner
	factory sweeperFactory
	now     func() time.Time
}

func (j *catalogExpiryJob) Name() string { return "promo-catalog-expiry" }

func (j *catalogExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		sweeper := j.factory(tx)
		var errs []error
		if err := j.deactivateExpired(ctx, sweeper, now); err != nil {
			errs = append(errs, err)
		}
		if err := j.reportUpcomingExpiries(ctx, sweeper, now); err != nil {
			errs = append(errs, err)
		}
		return multierr.Combine(errs...)
	})
}

func (j *catalogExpiryJob) deactivateExpired(ctx context.Context, sweeper catalogSweeper, now time.Time) error {
	count, err := sweeper.DeactivateExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("deactivate expired catalogs: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": count})
	j.logg.Info(logCtx, "promo catalog expiry sweep complete")
	return nil
}

func (j *catalogExpiryJob) reportUpcomingExpiries(ctx context.Context, sweeper catalogSweeper, now time.Time) error {
	count, err := sweeper.CountExpiringWithin(ctx, now, now.Add(expiryWarningWindow))
	if err != nil {
		return fmt.Errorf("count upcoming catalog expiries: %w", err)
	}
	if count > 0 {
		logCtx := j.logg.WithFields(ctx, map[string]any{"count": count})
		j.logg.Info(logCtx, "promo catalogs expiring within seven days")
	}
	return nil
}
