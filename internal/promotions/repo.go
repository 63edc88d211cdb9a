package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xeroscommerce/pricing-service/internal/repo"
	"github.com/xeroscommerce/pricing-service/pkg/db/models"
	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// Candidate is a promo item together with the targeting of its parent catalog.
// The catalog window and activity flag are already enforced by the query, so
// ranking only needs the targeting signals.
type Candidate struct {
	Item              types.PromotionItem
	TargetClientType  *string
	TargetCustomerIDs []int64
}

// CandidateSource loads the promo items eligible for a product at a point in
// time.
type CandidateSource interface {
	ActiveCandidates(ctx context.Context, productID int64, at time.Time) ([]Candidate, error)
}

const candidateQuery = `
SELECT promo_items.id,
       promo_items.catalog_id,
       promo_items.product_id,
       promo_items.promo_price,
       promo_items.allowed_customer_numbers,
       promo_catalogs.target_client_type,
       promo_catalogs.target_customer_ids
FROM promo_items
JOIN promo_catalogs ON promo_catalogs.id = promo_items.catalog_id
WHERE promo_items.product_id = ?
  AND promo_catalogs.is_active = ?
  AND promo_catalogs.start_date <= ?
  AND promo_catalogs.end_date >= ?
`

// Repository reads promo catalogs and their items.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

type candidateRow struct {
	ID                     int64
	CatalogID              int64
	ProductID              int64
	PromoPrice             decimal.Decimal
	AllowedCustomerNumbers pq.StringArray `gorm:"type:text"`
	TargetClientType       *string
	TargetCustomerIDs      pq.Int64Array `gorm:"type:text"`
}

// ActiveCandidates returns every promo item for the product whose catalog is
// active and whose window contains the supplied instant, bounds inclusive.
func (r *Repository) ActiveCandidates(ctx context.Context, productID int64, at time.Time) ([]Candidate, error) {
	var rows []candidateRow
	err := r.DB(ctx).Raw(candidateQuery, productID, true, at, at).Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("load promo candidates for product %d", productID))
	}

	candidates := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, Candidate{
			Item: types.PromotionItem{
				ID:                     row.ID,
				CatalogID:              row.CatalogID,
				ProductID:              row.ProductID,
				PromoPrice:             row.PromoPrice,
				AllowedCustomerNumbers: []string(row.AllowedCustomerNumbers),
			},
			TargetClientType:  row.TargetClientType,
			TargetCustomerIDs: []int64(row.TargetCustomerIDs),
		})
	}
	return candidates, nil
}

// DeactivateExpired flips is_active off for catalogs whose window closed
// before the supplied instant and returns how many rows changed.
func (r *Repository) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.DB(ctx).
		Model(&models.PromoCatalog{}).
		Where("is_active = ? AND end_date < ?", true, before).
		Update("is_active", false)
	if result.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "deactivate expired promo catalogs")
	}
	return result.RowsAffected, nil
}

// CountExpiringWithin returns how many active catalogs close inside
// [from, until].
func (r *Repository) CountExpiringWithin(ctx context.Context, from, until time.Time) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.PromoCatalog{}).
		Where("is_active = ? AND end_date >= ? AND end_date <= ?", true, from, until).
		Count(&count).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count expiring promo catalogs")
	}
	return count, nil
}
