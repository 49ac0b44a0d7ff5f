package services

import (
	"errors"
	"time"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongRole          = errors.New("wrong role")
	ErrAdminNotFound      = errors.New("admin not found")
)

// Role is the principal kind carried in every token. Handlers never
// compare raw strings; they pass one of these constants to the gate.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleFarmer Role = "farmer"
)

// Administrator sessions are short-lived; farmer sessions last a week.
const (
	AdminTokenTTL  = 12 * time.Hour
	FarmerTokenTTL = 7 * 24 * time.Hour
)

type TokenClaims struct {
	PrincipalID uint `json:"id"`
	Role        Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	adminRepo  *repository.AdminRepository
	farmerRepo *repository.FarmerRepository
	jwtSecret  string
}

func NewAuthService(adminRepo *repository.AdminRepository, farmerRepo *repository.FarmerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		farmerRepo: farmerRepo,
		jwtSecret:  jwtSecret,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AdminLogin returns a short-lived admin token. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) AdminLogin(username, password string) (string, error) {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		return "", err
	}
	if admin == nil || !verifyPassword(admin.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(admin.ID, RoleAdmin, AdminTokenTTL)
}

func (s *AuthService) FarmerLogin(phone, password string) (string, *models.Farmer, error) {
	farmer, err := s.farmerRepo.FindByPhone(phone)
	if err != nil {
		return "", nil, err
	}
	if farmer == nil || !verifyPassword(farmer.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(farmer.ID, RoleFarmer, FarmerTokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, farmer, nil
}

func (s *AuthService) IssueToken(principalID uint, role Role, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		PrincipalID: principalID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "tractor-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies signature and expiry. There is no revocation
// list: a leaked token stays valid until it expires.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate validates the token and enforces the required role.
func (s *AuthService) Authenticate(tokenString string, required Role) (*TokenClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != required {
		return nil, ErrWrongRole
	}
	return claims, nil
}

// ChangeAdminPassword verifies the old secret before re-hashing the new
// one; the role gate has already established the caller's identity.
func (s *AuthService) ChangeAdminPassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	if !verifyPassword(admin.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	return s.adminRepo.Update(admin)
}

// ResetFarmerPassword is the forgot-password flow: the administrator's
// own password acts as the elevated-privilege gate.
func (s *AuthService) ResetFarmerPassword(phone, newPassword, adminPassword string) error {
	admin, err := s.adminRepo.FindFirst()
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if !verifyPassword(admin.PasswordHash, adminPassword) {
		return ErrInvalidCredentials
	}

	farmer, err := s.farmerRepo.FindByPhone(phone)
	if err != nil {
		return err
	}
	if farmer == nil {
		return ErrFarmerNotFound
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	farmer.PasswordHash = hash
	return s.farmerRepo.Update(farmer)
}
