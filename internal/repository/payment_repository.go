package repository

import (
	"errors"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, payment *models.Payment) error {
	return tx.Create(payment).Error
}

func (r *PaymentRepository) FindByIDForUpdate(tx *gorm.DB, farmerID, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("farmer_id = ?", farmerID).
		First(&payment, paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) DeleteInTx(tx *gorm.DB, payment *models.Payment) error {
	return tx.Delete(payment).Error
}

// FindByFarmer returns the farmer's payments in insertion order, which is
// the chronological order of disbursement.
func (r *PaymentRepository) FindByFarmer(farmerID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("farmer_id = ?", farmerID).
		Order("created_at ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) SumByFarmer(farmerID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&models.Payment{}).
		Where("farmer_id = ?", farmerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
