package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrWorkNotFound    = errors.New("work not found")
	ErrInvalidMinutes  = errors.New("minutes must be positive")
	ErrInvalidRate     = errors.New("rate must be positive")
	ErrInvalidDuration = errors.New("invalid duration")
)

var sixty = decimal.NewFromInt(60)

type WorkService struct {
	workRepo   *repository.WorkRepository
	farmerRepo *repository.FarmerRepository
}

func NewWorkService(workRepo *repository.WorkRepository, farmerRepo *repository.FarmerRepository) *WorkService {
	return &WorkService{
		workRepo:   workRepo,
		farmerRepo: farmerRepo,
	}
}

// ComputeTotal derives the monetary value of a job: minutes/60 times the
// hourly rate, rounded half-up to 2 decimal places.
func ComputeTotal(minutes int, ratePer60 decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Mul(ratePer60).Round(2)
}

// ParseDuration accepts a raw minute count ("45") or an hours.minutes
// notation ("2.30" = 2h30m). The fractional part is right-padded to two
// digits, so "2.3" means 2h30m, not 2h03m.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDuration
	}

	if !strings.Contains(s, ".") {
		minutes, err := strconv.Atoi(s)
		if err != nil || minutes <= 0 {
			return 0, ErrInvalidDuration
		}
		return minutes, nil
	}

	parts := strings.SplitN(s, ".", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, ErrInvalidDuration
	}

	frac := parts[1]
	if frac == "" {
		frac = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}
	minutes, err := strconv.Atoi(frac)
	if err != nil {
		return 0, ErrInvalidDuration
	}

	total := hours*60 + minutes
	if total <= 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

func (s *WorkService) CreateWork(farmerID uint, workType string, minutes int, ratePer60 decimal.Decimal, notes string) (*models.Work, error) {
	if minutes <= 0 {
		return nil, ErrInvalidMinutes
	}
	if !ratePer60.IsPositive() {
		return nil, ErrInvalidRate
	}

	farmer, err := s.farmerRepo.FindByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}

	work := &models.Work{
		FarmerID:    farmerID,
		WorkType:    workType,
		Minutes:     minutes,
		RatePer60:   ratePer60,
		TotalAmount: ComputeTotal(minutes, ratePer60),
		Notes:       notes,
		AmountPaid:  decimal.Zero,
	}
	if err := s.workRepo.Create(work); err != nil {
		return nil, err
	}

	return s.workRepo.FindByID(work.ID)
}

// UpdateWork recomputes the total from the new duration and rate.
// AmountPaid is bookkeeping owned by the payment ledger and is untouched.
func (s *WorkService) UpdateWork(id uint, workType string, minutes int, ratePer60 decimal.Decimal, notes string) (*models.Work, error) {
	if minutes <= 0 {
		return nil, ErrInvalidMinutes
	}
	if !ratePer60.IsPositive() {
		return nil, ErrInvalidRate
	}

	work, err := s.workRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if work == nil {
		return nil, ErrWorkNotFound
	}

	work.WorkType = workType
	work.Minutes = minutes
	work.RatePer60 = ratePer60
	work.TotalAmount = ComputeTotal(minutes, ratePer60)
	work.Notes = notes

	if err := s.workRepo.Update(work); err != nil {
		return nil, err
	}
	return work, nil
}

// DeleteWork removes the record only. Payments attributed to it keep
// their work reference; the ledger tolerates the dangling id.
func (s *WorkService) DeleteWork(id uint) error {
	work, err := s.workRepo.FindByID(id)
	if err != nil {
		return err
	}
	if work == nil {
		return ErrWorkNotFound
	}
	return s.workRepo.Delete(id)
}

func (s *WorkService) GetWork(id uint) (*models.Work, error) {
	work, err := s.workRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if work == nil {
		return nil, ErrWorkNotFound
	}
	return work, nil
}

func (s *WorkService) ListWork(farmerID *uint) ([]models.Work, error) {
	return s.workRepo.FindAll(farmerID)
}
