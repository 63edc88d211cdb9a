package models

import (
	"time"

	"github.com/xeroscommerce/pricing-service/pkg/enums"
)

// Customer is the purchasing party as known to the CRM sync.
type Customer struct {
	ID             int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Email          string           `gorm:"column:email;not null;uniqueIndex"`
	CustomerNumber *string          `gorm:"column:customer_number;uniqueIndex"`
	ClientType     enums.ClientType `gorm:"column:client_type;not null;default:regular"`
	IsB2BVerified  bool             `gorm:"column:is_b2b_verified;not null;default:false"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
