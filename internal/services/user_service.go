package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/models"
)

const (
	emailVerificationValidity = 24 * time.Hour
	passwordResetValidity     = time.Hour
)

type userService struct {
	db *gorm.DB
}

// NewUserService creates a user service backed by the given database.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new customer account with a hashed password.
// Phone and address are optional profile fields.
func (s *userService) CreateUser(name, email, password, phone, address string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if count > 0 {
		return nil, apperrors.Duplicate("email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Phone:    phone,
		Address:  address,
		Role:     models.RoleCustomer,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &user, nil
}

// AttemptLogin verifies credentials and maintains the failed-attempt
// counter. The lock check runs before the password comparison so a locked
// account reports the lockout even on a correct password.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, apperrors.ErrAccountLocked
	}

	// Google-only accounts have no password and can never match.
	mismatch := user.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil
	if mismatch {
		user.RegisterFailedLogin(now)
		if err := s.db.Save(&user).Error; err != nil {
			return nil, apperrors.ErrInternalServer.Wrap(err)
		}
		if user.IsLocked(now) {
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	user.RegisterSuccessfulLogin(now)
	if err := s.db.Save(&user).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *userService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if user.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return apperrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}

	user.Password = string(hashed)
	if err := s.db.Save(user).Error; err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}
	return nil
}

// StartPasswordReset issues a single-use reset token for the account. The
// token is returned for the notification event, never in the response.
func (s *userService) StartPasswordReset(email string) (*models.User, string, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}

	token, err := randomToken()
	if err != nil {
		return nil, "", apperrors.ErrInternalServer.Wrap(err)
	}

	expires := time.Now().Add(passwordResetValidity)
	user.PasswordResetToken = token
	user.PasswordResetExpires = &expires
	if err := s.db.Save(user).Error; err != nil {
		return nil, "", apperrors.ErrInternalServer.Wrap(err)
	}
	return user, token, nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
// A successful reset also clears any login lockout.
func (s *userService) ConfirmPasswordReset(token, newPassword string) error {
	var user models.User
	err := s.db.First(&user, "password_reset_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidUserToken
		}
		return apperrors.ErrInternalServer.Wrap(err)
	}
	if user.PasswordResetExpires == nil || user.PasswordResetExpires.Before(time.Now()) {
		return apperrors.ErrInvalidUserToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}

	user.Password = string(hashed)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	user.LoginAttempts = 0
	user.LockUntil = nil
	if err := s.db.Save(&user).Error; err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}
	return nil
}

// StartEmailVerification issues a fresh verification token for the user.
func (s *userService) StartEmailVerification(userID string) (*models.User, string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, "", err
	}
	if user.IsEmailVerified {
		return nil, "", apperrors.ErrAlreadyVerified
	}

	token, err := randomToken()
	if err != nil {
		return nil, "", apperrors.ErrInternalServer.Wrap(err)
	}

	expires := time.Now().Add(emailVerificationValidity)
	user.EmailVerificationToken = token
	user.EmailVerificationExpires = &expires
	if err := s.db.Save(user).Error; err != nil {
		return nil, "", apperrors.ErrInternalServer.Wrap(err)
	}
	return user, token, nil
}

// VerifyEmail consumes a verification token and marks the email verified.
func (s *userService) VerifyEmail(token string) error {
	var user models.User
	err := s.db.First(&user, "email_verification_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidUserToken
		}
		return apperrors.ErrInternalServer.Wrap(err)
	}
	if user.EmailVerificationExpires == nil || user.EmailVerificationExpires.Before(time.Now()) {
		return apperrors.ErrInvalidUserToken
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil
	if err := s.db.Save(&user).Error; err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}
	return nil
}

// FindOrCreateGoogleUser resolves a Google profile to a local account.
// Resolution order: existing Google link, then matching email (the
// account is linked in place), then a fresh account.
func (s *userService) FindOrCreateGoogleUser(profile GoogleProfile) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "google_id = ?", profile.ID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	email := strings.ToLower(profile.Email)
	err = s.db.First(&user, "email = ?", email).Error
	if err == nil {
		user.GoogleID = profile.ID
		user.GoogleEmail = email
		user.IsGoogleLinked = true
		user.IsEmailVerified = true
		if err := s.db.Save(&user).Error; err != nil {
			return nil, apperrors.ErrInternalServer.Wrap(err)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	created := &models.User{
		Name:            profile.Name,
		Email:           email,
		Role:            models.RoleCustomer,
		GoogleID:        profile.ID,
		GoogleEmail:     email,
		IsGoogleLinked:  true,
		IsEmailVerified: true,
	}
	if err := s.db.Create(created).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return created, nil
}

// randomToken returns 32 random bytes hex-encoded (64 characters).
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
