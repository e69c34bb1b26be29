package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"linkforge/models"
)

// AccountService registers and authenticates users.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Register validates the input, rejects taken usernames/emails and
// stores the new user with a bcrypt password hash.
func (s *AccountService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	if !strings.Contains(email, "@") || len(email) < 5 {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	var existing models.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Username: username, Email: email}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Two registrations racing past the existence check land here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate looks a user up by username or email and verifies the
// password. Absence and mismatch are indistinguishable to the caller.
func (s *AccountService) Authenticate(identifier, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID fetches a user profile.
func (s *AccountService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
