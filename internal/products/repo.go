package product

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xeroscommerce/pricing-service/internal/repo"
	"github.com/xeroscommerce/pricing-service/pkg/db/models"
	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// Reader exposes the snapshot read path consumed by the pricing core.
type Reader interface {
	GetSnapshot(ctx context.Context, id int64) (*types.ProductSnapshot, error)
}

// Repository loads catalog rows and projects them into pricing snapshots.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// GetSnapshot loads the active product and returns its immutable pricing view.
func (r *Repository) GetSnapshot(ctx context.Context, id int64) (*types.ProductSnapshot, error) {
	var row models.Product
	err := r.DB(ctx).First(&row, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("product %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("load product %d", id))
	}
	return snapshotFromModel(&row), nil
}

func snapshotFromModel(row *models.Product) *types.ProductSnapshot {
	snap := &types.ProductSnapshot{
		ID:                  row.ID,
		SKU:                 row.SKU,
		PublicPrice:         row.Price,
		SimpleDiscountPrice: row.DiscountPrice,
		WholesalerPrice:     row.PriceWholesaler,
		BigRetailPrice:      row.PriceBigRetail,
		SmallRetailPrice:    row.PriceSmallRetail,
	}
	if row.BrandSlug != nil {
		snap.BrandIdentifier = *row.BrandSlug
	}
	if row.CategoryName != nil {
		snap.CategoryName = *row.CategoryName
	}
	return snap
}
