package auth

import (
	"errors"
	"strings"

	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a member account and returns it with a signed token.
// The role is always member; admins are promoted out of band.
func (s *Service) Register(dto *RegisterDTO) (*models.AccountModel, string, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.Model(&models.AccountModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	account := models.AccountModel{
		Name:     strings.TrimSpace(dto.Name),
		Email:    email,
		Password: string(hash),
		Role:     models.RoleMember,
		Bio:      dto.Bio,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, "", err
	}

	token, err := jwt.Sign(account.ID)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// Login verifies credentials and returns the account with a signed token.
func (s *Service) Login(email, password string) (*models.AccountModel, string, error) {
	var account models.AccountModel
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := jwt.Sign(account.ID)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// GetByID fetches an account by ID. Returns (nil, nil) when absent.
func (s *Service) GetByID(id string) (*models.AccountModel, error) {
	var account models.AccountModel
	if err := s.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
