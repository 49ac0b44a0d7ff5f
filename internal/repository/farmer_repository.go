package repository

import (
	"errors"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FarmerRepository struct {
	db *gorm.DB
}

func NewFarmerRepository(db *gorm.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

func (r *FarmerRepository) Create(farmer *models.Farmer) error {
	return r.db.Create(farmer).Error
}

func (r *FarmerRepository) FindByID(id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.First(&farmer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) FindByIDWithPayments(id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at ASC, payments.id ASC")
		}).
		First(&farmer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) FindByPhone(phone string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.Where("phone = ?", phone).First(&farmer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&farmer, id).Error
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) FindAll() ([]models.Farmer, error) {
	var farmers []models.Farmer
	err := r.db.
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at ASC, payments.id ASC")
		}).
		Order("created_at DESC").
		Find(&farmers).Error
	return farmers, err
}

func (r *FarmerRepository) Update(farmer *models.Farmer) error {
	return r.db.Save(farmer).Error
}

// DeleteCascade removes the farmer together with their payments and work
// records in a single transaction.
func (r *FarmerRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("farmer_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("farmer_id = ?", id).Delete(&models.Work{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Farmer{}, id).Error
	})
}
