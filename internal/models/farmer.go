package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Farmer struct {
	gorm.Model
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Payments     []Payment `gorm:"foreignKey:FarmerID" json:"payments,omitempty"`
	Works        []Work    `gorm:"foreignKey:FarmerID" json:"-"`
}

// TotalPaid sums the loaded payment history. Callers that need a fresh
// total without loading payments should use PaymentRepository.SumByFarmer.
func (f Farmer) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range f.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// MarshalJSON guarantees the password hash never leaks and exposes the
// computed total_paid alongside the stored fields.
func (f Farmer) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		ID           uint            `json:"id"`
		CreatedAt    time.Time       `json:"created_at"`
		UpdatedAt    time.Time       `json:"updated_at"`
		Name         string          `json:"name"`
		Phone        string          `json:"phone"`
		ProfileImage *string         `json:"profile_image,omitempty"`
		Payments     []Payment       `json:"payments,omitempty"`
		TotalPaid    decimal.Decimal `json:"total_paid"`
	}{
		ID:           f.ID,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
		Name:         f.Name,
		Phone:        f.Phone,
		ProfileImage: f.ProfileImage,
		Payments:     f.Payments,
		TotalPaid:    f.TotalPaid(),
	})
}
