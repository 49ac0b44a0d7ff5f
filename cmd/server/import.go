package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/agrotrack/tractor-tracker/internal/config"
	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/spf13/cobra"
)

type FarmerImport struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

var (
	importFile string
	strictMode bool
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import farmer accounts from JSON file",
	Long: `Import farmer accounts from a JSON file.

Expected JSON format:
[
  {"name": "Ravi", "phone": "9876543210", "password": "secret"},
  {"name": "Meena", "phone": "+919812345678", "password": "secret"}
]

By default, rows with invalid phone numbers or duplicates are skipped.
Use --strict to fail on any validation error instead.`,
	Example: `  tracker import -f farmers.json
  tracker import --file farmers.json --strict`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any validation error")
	importCmd.MarkFlagRequired("file")
}

func runImport() error {
	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var rows []FarmerImport
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	farmerRepo := repository.NewFarmerRepository(db)
	workRepo := repository.NewWorkRepository(db)
	farmerService := services.NewFarmerService(farmerRepo, workRepo)

	imported, skipped, err := importRows(farmerService, rows, strictMode)
	if err != nil {
		return err
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)
	return nil
}

func importRows(farmerService *services.FarmerService, rows []FarmerImport, strict bool) (imported, skipped int, err error) {
	for _, row := range rows {
		if row.Name == "" || row.Phone == "" || row.Password == "" || !phoneRegex.MatchString(row.Phone) {
			if strict {
				return imported, skipped, fmt.Errorf("invalid row: %+v", row)
			}
			log.Printf("Skipping invalid row: name=%q phone=%q", row.Name, row.Phone)
			skipped++
			continue
		}

		_, err := farmerService.CreateFarmer(row.Name, row.Phone, row.Password, nil)
		if err != nil {
			if strict {
				return imported, skipped, fmt.Errorf("failed to import %q: %w", row.Phone, err)
			}
			log.Printf("Skipping %q: %v", row.Phone, err)
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped, nil
}
