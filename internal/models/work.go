package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Work struct {
	gorm.Model
	FarmerID uint   `gorm:"not null;index" json:"farmer_id"`
	Farmer   Farmer `gorm:"foreignKey:FarmerID" json:"-"`
	WorkType string `gorm:"not null" json:"work_type"`
	// Duration of the job in minutes; the billing rate is per 60 minutes.
	Minutes     int             `gorm:"not null" json:"minutes"`
	RatePer60   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate_per_60"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Notes       string          `gorm:"type:text" json:"notes"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
}

// Outstanding is the unpaid remainder for this job.
func (w Work) Outstanding() decimal.Decimal {
	return w.TotalAmount.Sub(w.AmountPaid)
}
