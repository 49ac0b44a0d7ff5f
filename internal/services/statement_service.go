package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

var ErrInvalidStatement = errors.New("invalid statement data")

// Statement is a signed snapshot of a farmer's ledger: works, payments
// and balance totals, suitable for handing to the farmer as a receipt.
type Statement struct {
	FarmerID    uint                   `json:"farmer_id"`
	Name        string                 `json:"name"`
	Phone       string                 `json:"phone"`
	Works       []StatementWorkItem    `json:"works"`
	Payments    []StatementPaymentItem `json:"payments"`
	TotalWork   decimal.Decimal        `json:"total_work"`
	TotalPaid   decimal.Decimal        `json:"total_paid"`
	Outstanding decimal.Decimal        `json:"outstanding"`
	ExportedAt  time.Time              `json:"exported_at"`
	Signature   string                 `json:"signature"`
}

type StatementWorkItem struct {
	ID          uint            `json:"id"`
	WorkType    string          `json:"work_type"`
	Minutes     int             `json:"minutes"`
	RatePer60   decimal.Decimal `json:"rate_per_60"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	CreatedAt   time.Time       `json:"created_at"`
}

type StatementPaymentItem struct {
	ID        uint            `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	WorkID    *uint           `json:"work_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type StatementService struct {
	farmerRepo  *repository.FarmerRepository
	workRepo    *repository.WorkRepository
	paymentRepo *repository.PaymentRepository
	signingKey  string
}

func NewStatementService(farmerRepo *repository.FarmerRepository, workRepo *repository.WorkRepository, paymentRepo *repository.PaymentRepository, signingKey string) *StatementService {
	return &StatementService{
		farmerRepo:  farmerRepo,
		workRepo:    workRepo,
		paymentRepo: paymentRepo,
		signingKey:  signingKey,
	}
}

func (s *StatementService) ExportStatement(farmerID uint) (*Statement, error) {
	farmer, err := s.farmerRepo.FindByID(farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}

	works, err := s.workRepo.FindAll(&farmerID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByFarmer(farmerID)
	if err != nil {
		return nil, err
	}

	statement := &Statement{
		FarmerID:   farmer.ID,
		Name:       farmer.Name,
		Phone:      farmer.Phone,
		Works:      make([]StatementWorkItem, len(works)),
		Payments:   make([]StatementPaymentItem, len(payments)),
		TotalWork:  decimal.Zero,
		TotalPaid:  decimal.Zero,
		ExportedAt: time.Now(),
	}

	for i, w := range works {
		statement.Works[i] = StatementWorkItem{
			ID:          w.ID,
			WorkType:    w.WorkType,
			Minutes:     w.Minutes,
			RatePer60:   w.RatePer60,
			TotalAmount: w.TotalAmount,
			AmountPaid:  w.AmountPaid,
			CreatedAt:   w.CreatedAt,
		}
		statement.TotalWork = statement.TotalWork.Add(w.TotalAmount)
	}

	for i, p := range payments {
		statement.Payments[i] = StatementPaymentItem{
			ID:        p.ID,
			Amount:    p.Amount,
			WorkID:    p.WorkID,
			CreatedAt: p.CreatedAt,
		}
		statement.TotalPaid = statement.TotalPaid.Add(p.Amount)
	}

	statement.Outstanding = statement.TotalWork.Sub(statement.TotalPaid)

	signature, err := s.sign(statement)
	if err != nil {
		return nil, err
	}
	statement.Signature = signature

	return statement, nil
}

// VerifyStatement recomputes the HMAC over the statement with the
// signature field blanked and compares in constant time.
func (s *StatementService) VerifyStatement(statement *Statement) (bool, error) {
	if statement.Signature == "" {
		return false, ErrInvalidStatement
	}

	provided := statement.Signature

	unsigned := *statement
	unsigned.Signature = ""

	computed, err := s.sign(&unsigned)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(computed), []byte(provided)), nil
}

func (s *StatementService) sign(statement *Statement) (string, error) {
	unsigned := *statement
	unsigned.Signature = ""

	data, err := json.Marshal(unsigned)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(s.signingKey))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
