package services

import (
	"errors"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidAmount = errors.New("amount must be positive")

type PaymentService struct {
	farmerRepo  *repository.FarmerRepository
	workRepo    *repository.WorkRepository
	paymentRepo *repository.PaymentRepository
	db          *gorm.DB
}

func NewPaymentService(farmerRepo *repository.FarmerRepository, workRepo *repository.WorkRepository, paymentRepo *repository.PaymentRepository, db *gorm.DB) *PaymentService {
	return &PaymentService{
		farmerRepo:  farmerRepo,
		workRepo:    workRepo,
		paymentRepo: paymentRepo,
		db:          db,
	}
}

// AddPayment records a disbursement to a farmer, optionally attributed to
// one work record. The payment row and the work's amount-paid increment
// commit in a single transaction, so a reader never observes one side
// without the other.
func (s *PaymentService) AddPayment(farmerID uint, amount decimal.Decimal, workID *uint) (*models.Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		farmer, err := s.farmerRepo.FindByIDForUpdate(tx, farmerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFarmerNotFound
			}
			return err
		}

		payment = &models.Payment{
			FarmerID: farmer.ID,
			Amount:   amount,
			WorkID:   workID,
		}
		if err := s.paymentRepo.Create(tx, payment); err != nil {
			return err
		}

		if workID == nil {
			return nil
		}

		work, err := s.workRepo.FindByIDForUpdate(tx, *workID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWorkNotFound
			}
			return err
		}

		work.AmountPaid = work.AmountPaid.Add(amount)
		return s.workRepo.UpdateInTx(tx, work)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// RemovePayment deletes a payment by id and reverses the attributed
// work's amount-paid in the same transaction, clamped at zero in case
// the work was edited since. Removing an unknown payment id is a no-op.
func (s *PaymentService) RemovePayment(farmerID, paymentID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		farmer, err := s.farmerRepo.FindByIDForUpdate(tx, farmerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFarmerNotFound
			}
			return err
		}

		payment, err := s.paymentRepo.FindByIDForUpdate(tx, farmer.ID, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return nil
		}

		if payment.WorkID != nil {
			work, err := s.workRepo.FindByIDForUpdate(tx, *payment.WorkID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if work != nil {
				work.AmountPaid = work.AmountPaid.Sub(payment.Amount)
				if work.AmountPaid.IsNegative() {
					work.AmountPaid = decimal.Zero
				}
				if err := s.workRepo.UpdateInTx(tx, work); err != nil {
					return err
				}
			}
		}

		return s.paymentRepo.DeleteInTx(tx, payment)
	})
}

func (s *PaymentService) TotalPaid(farmerID uint) (decimal.Decimal, error) {
	return s.paymentRepo.SumByFarmer(farmerID)
}

func (s *PaymentService) ListPayments(farmerID uint) ([]models.Payment, error) {
	farmer, err := s.farmerRepo.FindByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return s.paymentRepo.FindByFarmer(farmerID)
}
