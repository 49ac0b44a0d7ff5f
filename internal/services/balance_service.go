package services

import (
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

type FarmerBalance struct {
	TotalWork   decimal.Decimal `json:"total_work"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// BalanceService derives balances from the source collections on every
// call. Nothing here is cached or stored, so a crash between the two
// writes of a payment can only produce transient drift, never a wrong
// persisted balance.
type BalanceService struct {
	farmerRepo  *repository.FarmerRepository
	workRepo    *repository.WorkRepository
	paymentRepo *repository.PaymentRepository
}

func NewBalanceService(farmerRepo *repository.FarmerRepository, workRepo *repository.WorkRepository, paymentRepo *repository.PaymentRepository) *BalanceService {
	return &BalanceService{
		farmerRepo:  farmerRepo,
		workRepo:    workRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *BalanceService) FarmerBalance(farmerID uint) (*FarmerBalance, error) {
	farmer, err := s.farmerRepo.FindByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}

	totalWork, err := s.workRepo.SumTotalByFarmer(farmerID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.paymentRepo.SumByFarmer(farmerID)
	if err != nil {
		return nil, err
	}

	return &FarmerBalance{
		TotalWork:   totalWork,
		TotalPaid:   totalPaid,
		Outstanding: totalWork.Sub(totalPaid),
	}, nil
}

func (s *BalanceService) WorkBalance(workID uint) (decimal.Decimal, error) {
	var zero decimal.Decimal

	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		return zero, err
	}
	if work == nil {
		return zero, ErrWorkNotFound
	}
	return work.Outstanding(), nil
}
