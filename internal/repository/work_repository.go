package repository

import (
	"errors"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

func (r *WorkRepository) Create(work *models.Work) error {
	return r.db.Create(work).Error
}

func (r *WorkRepository) FindByID(id uint) (*models.Work, error) {
	var work models.Work
	err := r.db.Preload("Farmer").First(&work, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &work, nil
}

func (r *WorkRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Work, error) {
	var work models.Work
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&work, id).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *WorkRepository) Update(work *models.Work) error {
	return r.db.Save(work).Error
}

func (r *WorkRepository) UpdateInTx(tx *gorm.DB, work *models.Work) error {
	return tx.Save(work).Error
}

func (r *WorkRepository) Delete(id uint) error {
	return r.db.Delete(&models.Work{}, id).Error
}

// FindAll lists work records newest first, optionally scoped to one
// farmer. The farmer is preloaded for name/phone display.
func (r *WorkRepository) FindAll(farmerID *uint) ([]models.Work, error) {
	var works []models.Work
	db := r.db.Preload("Farmer").Order("created_at DESC")
	if farmerID != nil {
		db = db.Where("farmer_id = ?", *farmerID)
	}
	err := db.Find(&works).Error
	return works, err
}

func (r *WorkRepository) SumTotalByFarmer(farmerID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&models.Work{}).
		Where("farmer_id = ?", farmerID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
