package models

import (
	"time"

	"github.com/lib/pq"
)

// PromoCatalog is a time-boxed promotional campaign. Targeting is optional on
// both axes: an unset client type and an empty customer-id list mean the
// catalog is open to everyone.
type PromoCatalog struct {
	ID                int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Title             string        `gorm:"column:title;not null"`
	StartDate         time.Time     `gorm:"column:start_date;not null"`
	EndDate           time.Time     `gorm:"column:end_date;not null"`
	IsActive          bool          `gorm:"column:is_active;not null;default:true"`
	TargetClientType  *string       `gorm:"column:target_client_type"`
	TargetCustomerIDs pq.Int64Array `gorm:"column:target_customer_ids;type:bigint[]"`
	Items             []PromoItem   `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
