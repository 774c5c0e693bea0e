package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"residence-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so the
// login endpoint leaks nothing about which one failed.
var ErrInvalidCredentials = errors.New("invalid_credentials")

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErrorf("a valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, validationErrorf("password must be at least 6 characters")
	}

	var existing models.User
	err := s.DB.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil, validationErrorf("email %s is already registered", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = "user"
	}
	user := models.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies an email/password pair, writes a login attempt audit
// row either way, and stamps last_login on success.
func (s *AuthService) Authenticate(email, password, ip string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.recordAttempt(nil, email, false, ip)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordAttempt(&user.ID, email, false, ip)
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("failed to stamp last login: %w", err)
	}
	s.recordAttempt(&user.ID, email, true, ip)
	return &user, nil
}

// recordAttempt is best effort: a failed audit insert never blocks login.
func (s *AuthService) recordAttempt(userID *string, email string, success bool, ip string) {
	attempt := models.LoginAttempt{
		UserID:    userID,
		Email:     email,
		Success:   success,
		Provider:  "email",
		IPAddress: ip,
	}
	s.DB.Create(&attempt)
}

func (s *AuthService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
