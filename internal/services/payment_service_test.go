package services

import (
	"testing"

	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupPaymentTestDB(t *testing.T) (*repository.FarmerRepository, *repository.WorkRepository, *WorkService, *PaymentService) {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	farmerRepo := repository.NewFarmerRepository(db)
	workRepo := repository.NewWorkRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	workService := NewWorkService(workRepo, farmerRepo)
	paymentService := NewPaymentService(farmerRepo, workRepo, paymentRepo, db)

	return farmerRepo, workRepo, workService, paymentService
}

func TestPaymentService_AddPayment_FarmerOnly(t *testing.T) {
	farmerRepo, _, _, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	payment, err := paymentService.AddPayment(farmer.ID, decimal.NewFromInt(500), nil)
	assert.NoError(t, err)
	assert.NotNil(t, payment)
	assert.Nil(t, payment.WorkID)

	total, err := paymentService.TotalPaid(farmer.ID)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(500)), "got %s", total)
}

func TestPaymentService_AddPayment_AttributedToWork(t *testing.T) {
	farmerRepo, workRepo, workService, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	work, err := workService.CreateWork(farmer.ID, "ploughing", 600, decimal.NewFromInt(100), "")
	assert.NoError(t, err)

	_, err = paymentService.AddPayment(farmer.ID, decimal.NewFromInt(500), &work.ID)
	assert.NoError(t, err)

	workAfter, err := workRepo.FindByID(work.ID)
	assert.NoError(t, err)
	assert.True(t, workAfter.AmountPaid.Equal(decimal.NewFromInt(500)), "got %s", workAfter.AmountPaid)

	total, err := paymentService.TotalPaid(farmer.ID)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(500)), "got %s", total)
}

func TestPaymentService_AddPayment_InvalidAmount(t *testing.T) {
	farmerRepo, _, _, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	_, err := paymentService.AddPayment(farmer.ID, decimal.Zero, nil)
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = paymentService.AddPayment(farmer.ID, decimal.NewFromInt(-100), nil)
	assert.Equal(t, ErrInvalidAmount, err)

	total, err := paymentService.TotalPaid(farmer.ID)
	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestPaymentService_AddPayment_FarmerNotFound(t *testing.T) {
	_, _, _, paymentService := setupPaymentTestDB(t)

	_, err := paymentService.AddPayment(9999, decimal.NewFromInt(100), nil)
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestPaymentService_AddPayment_WorkNotFoundRollsBack(t *testing.T) {
	farmerRepo, _, _, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	missing := uint(9999)
	_, err := paymentService.AddPayment(farmer.ID, decimal.NewFromInt(100), &missing)
	assert.Equal(t, ErrWorkNotFound, err)

	// The farmer-side append must have rolled back with the work-side failure.
	total, err := paymentService.TotalPaid(farmer.ID)
	assert.NoError(t, err)
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestPaymentService_RemovePayment_ReversesWorkAmount(t *testing.T) {
	farmerRepo, workRepo, workService, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	work, err := workService.CreateWork(farmer.ID, "ploughing", 600, decimal.NewFromInt(100), "")
	assert.NoError(t, err)

	payment, err := paymentService.AddPayment(farmer.ID, decimal.NewFromInt(400), &work.ID)
	assert.NoError(t, err)

	err = paymentService.RemovePayment(farmer.ID, payment.ID)
	assert.NoError(t, err)

	workAfter, err := workRepo.FindByID(work.ID)
	assert.NoError(t, err)
	assert.True(t, workAfter.AmountPaid.IsZero(), "got %s", workAfter.AmountPaid)

	total, err := paymentService.TotalPaid(farmer.ID)
	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestPaymentService_RemovePayment_ClampsAtZero(t *testing.T) {
	farmerRepo, workRepo, workService, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	work, err := workService.CreateWork(farmer.ID, "ploughing", 600, decimal.NewFromInt(100), "")
	assert.NoError(t, err)

	payment, err := paymentService.AddPayment(farmer.ID, decimal.NewFromInt(400), &work.ID)
	assert.NoError(t, err)

	// Someone manually reset the work's bookkeeping in between.
	work, err = workRepo.FindByID(work.ID)
	assert.NoError(t, err)
	work.AmountPaid = decimal.NewFromInt(100)
	assert.NoError(t, workRepo.Update(work))

	err = paymentService.RemovePayment(farmer.ID, payment.ID)
	assert.NoError(t, err)

	workAfter, err := workRepo.FindByID(work.ID)
	assert.NoError(t, err)
	assert.True(t, workAfter.AmountPaid.IsZero(), "must clamp at zero, got %s", workAfter.AmountPaid)
}

func TestPaymentService_RemovePayment_UnknownIDIsNoOp(t *testing.T) {
	farmerRepo, _, _, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	err := paymentService.RemovePayment(farmer.ID, 9999)
	assert.NoError(t, err)
}

func TestPaymentService_RemovePayment_FarmerNotFound(t *testing.T) {
	_, _, _, paymentService := setupPaymentTestDB(t)

	err := paymentService.RemovePayment(9999, 1)
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestPaymentService_RemovePayment_SurvivesDeletedWork(t *testing.T) {
	farmerRepo, _, workService, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	work, err := workService.CreateWork(farmer.ID, "ploughing", 600, decimal.NewFromInt(100), "")
	assert.NoError(t, err)

	payment, err := paymentService.AddPayment(farmer.ID, decimal.NewFromInt(400), &work.ID)
	assert.NoError(t, err)

	// Deleting the work leaves the payment's reference dangling.
	assert.NoError(t, workService.DeleteWork(work.ID))

	err = paymentService.RemovePayment(farmer.ID, payment.ID)
	assert.NoError(t, err)

	total, err := paymentService.TotalPaid(farmer.ID)
	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestPaymentService_ListPayments_ChronologicalOrder(t *testing.T) {
	farmerRepo, _, _, paymentService := setupPaymentTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	for _, amount := range []int64{100, 200, 300} {
		_, err := paymentService.AddPayment(farmer.ID, decimal.NewFromInt(amount), nil)
		assert.NoError(t, err)
	}

	payments, err := paymentService.ListPayments(farmer.ID)
	assert.NoError(t, err)
	assert.Len(t, payments, 3)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, payments[2].Amount.Equal(decimal.NewFromInt(300)))
}
