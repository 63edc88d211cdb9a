package customer

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
	GetSnapshot(ctx context.Context, id int64) (*types.CustomerSnapshot, error)
}

// Repository loads CRM rows and projects them into pricing snapshots.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// GetSnapshot loads the customer and returns its immutable pricing view.
func (r *Repository) GetSnapshot(ctx context.Context, id int64) (*types.CustomerSnapshot, error) {
	var row models.Customer
	err := r.DB(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("customer %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("load customer %d", id))
	}

	snap := &types.CustomerSnapshot{
		ID:            row.ID,
		ClientType:    row.ClientType,
		IsB2BVerified: row.IsB2BVerified,
	}
	if row.CustomerNumber != nil {
		snap.CustomerNumber = *row.CustomerNumber
	}
	return snap, nil
}
