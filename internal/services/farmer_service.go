package services

import (
	"errors"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/repository"
)

var (
	ErrFarmerNotFound = errors.New("farmer not found")
	ErrPhoneExists    = errors.New("farmer with this phone already exists")
	ErrMissingFields  = errors.New("missing required fields")
)

type FarmerService struct {
	farmerRepo *repository.FarmerRepository
	workRepo   *repository.WorkRepository
}

func NewFarmerService(farmerRepo *repository.FarmerRepository, workRepo *repository.WorkRepository) *FarmerService {
	return &FarmerService{
		farmerRepo: farmerRepo,
		workRepo:   workRepo,
	}
}

// CreateFarmer registers a farmer account. Both the admin-driven create
// (with optional profile image) and self-registration funnel through here.
func (s *FarmerService) CreateFarmer(name, phone, password string, profileImage *string) (*models.Farmer, error) {
	if name == "" || phone == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.farmerRepo.FindByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	farmer := &models.Farmer{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		ProfileImage: profileImage,
	}
	if err := s.farmerRepo.Create(farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (s *FarmerService) ListFarmers() ([]models.Farmer, error) {
	return s.farmerRepo.FindAll()
}

func (s *FarmerService) GetFarmer(id uint) (*models.Farmer, error) {
	farmer, err := s.farmerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}

// DeleteFarmer removes the farmer and cascades to their work records and
// payment history.
func (s *FarmerService) DeleteFarmer(id uint) error {
	farmer, err := s.farmerRepo.FindByID(id)
	if err != nil {
		return err
	}
	if farmer == nil {
		return ErrFarmerNotFound
	}
	return s.farmerRepo.DeleteCascade(id)
}

type Dashboard struct {
	Farmer *models.Farmer `json:"farmer"`
	Works  []models.Work  `json:"works"`
}

// Dashboard is the farmer's own view: profile with payment history plus
// their work records, newest first.
func (s *FarmerService) Dashboard(farmerID uint) (*Dashboard, error) {
	farmer, err := s.farmerRepo.FindByIDWithPayments(farmerID)
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

	return &Dashboard{Farmer: farmer, Works: works}, nil
}
