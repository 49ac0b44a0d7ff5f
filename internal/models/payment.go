package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is append-only: entries are added and removed by id, never
// edited in place. WorkID is set when the payment is attributed to a
// specific job; a nil WorkID is a general disbursement to the farmer.
type Payment struct {
	gorm.Model
	FarmerID uint            `gorm:"not null;index" json:"farmer_id"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	WorkID   *uint           `gorm:"index" json:"work_id,omitempty"`
}
