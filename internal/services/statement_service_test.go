package services

import (
	"testing"

	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupStatementTestDB(t *testing.T) (*repository.FarmerRepository, *WorkService, *PaymentService, *StatementService) {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	farmerRepo := repository.NewFarmerRepository(db)
	workRepo := repository.NewWorkRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	workService := NewWorkService(workRepo, farmerRepo)
	paymentService := NewPaymentService(farmerRepo, workRepo, paymentRepo, db)
	statementService := NewStatementService(farmerRepo, workRepo, paymentRepo, "statement-key")

	return farmerRepo, workService, paymentService, statementService
}

func TestStatementService_ExportStatement(t *testing.T) {
	farmerRepo, workService, paymentService, statementService := setupStatementTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	work, err := workService.CreateWork(farmer.ID, "ploughing", 600, decimal.NewFromInt(100), "")
	assert.NoError(t, err)
	_, err = paymentService.AddPayment(farmer.ID, decimal.NewFromInt(300), &work.ID)
	assert.NoError(t, err)

	statement, err := statementService.ExportStatement(farmer.ID)
	assert.NoError(t, err)
	assert.Equal(t, farmer.ID, statement.FarmerID)
	assert.Equal(t, "Ravi", statement.Name)
	assert.Len(t, statement.Works, 1)
	assert.Len(t, statement.Payments, 1)
	assert.True(t, statement.TotalWork.Equal(decimal.NewFromInt(1000)))
	assert.True(t, statement.TotalPaid.Equal(decimal.NewFromInt(300)))
	assert.True(t, statement.Outstanding.Equal(decimal.NewFromInt(700)))
	assert.NotEmpty(t, statement.Signature)
}

func TestStatementService_ExportStatement_FarmerNotFound(t *testing.T) {
	_, _, _, statementService := setupStatementTestDB(t)

	_, err := statementService.ExportStatement(9999)
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestStatementService_VerifyStatement(t *testing.T) {
	farmerRepo, workService, _, statementService := setupStatementTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	_, err := workService.CreateWork(farmer.ID, "ploughing", 60, decimal.NewFromInt(100), "")
	assert.NoError(t, err)

	statement, err := statementService.ExportStatement(farmer.ID)
	assert.NoError(t, err)

	ok, err := statementService.VerifyStatement(statement)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestStatementService_VerifyStatement_DetectsTampering(t *testing.T) {
	farmerRepo, workService, _, statementService := setupStatementTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	_, err := workService.CreateWork(farmer.ID, "ploughing", 60, decimal.NewFromInt(100), "")
	assert.NoError(t, err)

	statement, err := statementService.ExportStatement(farmer.ID)
	assert.NoError(t, err)

	statement.TotalPaid = statement.TotalPaid.Add(decimal.NewFromInt(5000))

	ok, err := statementService.VerifyStatement(statement)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStatementService_VerifyStatement_DifferentKeyFails(t *testing.T) {
	farmerRepo, _, _, statementService := setupStatementTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	statement, err := statementService.ExportStatement(farmer.ID)
	assert.NoError(t, err)

	other := NewStatementService(nil, nil, nil, "other-key")
	ok, err := other.VerifyStatement(statement)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStatementService_VerifyStatement_MissingSignature(t *testing.T) {
	_, _, _, statementService := setupStatementTestDB(t)

	_, err := statementService.VerifyStatement(&Statement{})
	assert.Equal(t, ErrInvalidStatement, err)
}
