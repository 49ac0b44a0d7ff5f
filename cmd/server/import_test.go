package main

import (
	"testing"

	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/stretchr/testify/assert"
)

func setupImportTest(t *testing.T) *services.FarmerService {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)
	assert.NoError(t, database.Migrate(db))

	farmerRepo := repository.NewFarmerRepository(db)
	workRepo := repository.NewWorkRepository(db)
	return services.NewFarmerService(farmerRepo, workRepo)
}

func TestImportRows(t *testing.T) {
	farmerService := setupImportTest(t)

	rows := []FarmerImport{
		{Name: "Ravi", Phone: "9876543210", Password: "secret"},
		{Name: "Meena", Phone: "+919812345678", Password: "secret"},
	}

	imported, skipped, err := importRows(farmerService, rows, false)
	assert.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 0, skipped)

	farmers, err := farmerService.ListFarmers()
	assert.NoError(t, err)
	assert.Len(t, farmers, 2)
}

func TestImportRows_SkipsInvalidAndDuplicates(t *testing.T) {
	farmerService := setupImportTest(t)

	rows := []FarmerImport{
		{Name: "Ravi", Phone: "9876543210", Password: "secret"},
		{Name: "Dup", Phone: "9876543210", Password: "secret"},
		{Name: "NoPhone", Phone: "", Password: "secret"},
		{Name: "BadPhone", Phone: "not-a-number", Password: "secret"},
		{Name: "", Phone: "9812345678", Password: "secret"},
	}

	imported, skipped, err := importRows(farmerService, rows, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 4, skipped)
}

func TestImportRows_StrictFailsOnInvalid(t *testing.T) {
	farmerService := setupImportTest(t)

	rows := []FarmerImport{
		{Name: "Ravi", Phone: "9876543210", Password: "secret"},
		{Name: "BadPhone", Phone: "not-a-number", Password: "secret"},
	}

	imported, _, err := importRows(farmerService, rows, true)
	assert.Error(t, err)
	assert.Equal(t, 1, imported)
}

func TestImportRows_StrictFailsOnDuplicate(t *testing.T) {
	farmerService := setupImportTest(t)

	rows := []FarmerImport{
		{Name: "Ravi", Phone: "9876543210", Password: "secret"},
		{Name: "Dup", Phone: "9876543210", Password: "secret"},
	}

	_, _, err := importRows(farmerService, rows, true)
	assert.Error(t, err)
}

func TestPhoneRegex(t *testing.T) {
	valid := []string{"9876543210", "+919812345678", "1234567"}
	for _, p := range valid {
		assert.True(t, phoneRegex.MatchString(p), "phone %q", p)
	}

	invalid := []string{"", "12345", "abc", "+", "98765 43210", "1234567890123456"}
	for _, p := range invalid {
		assert.False(t, phoneRegex.MatchString(p), "phone %q", p)
	}
}
