package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/models"
)

type tokenService struct {
	db *gorm.DB
}

// NewTokenService creates a refresh-token service backed by the given
// database.
func NewTokenService(db *gorm.DB) TokenServicer {
	return &tokenService{db: db}
}

// Issue creates an opaque refresh token bound to the user and the client
// that requested it.
func (s *tokenService) Issue(userID, userAgent, ip string) (*models.RefreshToken, error) {
	value, err := randomToken()
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	token := &models.RefreshToken{
		Token:     value,
		UserID:    userID,
		ExpiresAt: time.Now().Add(models.RefreshTokenValidity),
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.db.Create(token).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return token, nil
}

// Validate looks up the token and checks it is neither revoked nor
// expired. The owning user is preloaded for the caller.
func (s *tokenService) Validate(token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	err := s.db.Preload("User").First(&stored, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if !stored.Valid(time.Now()) {
		return nil, apperrors.ErrInvalidToken
	}
	return &stored, nil
}

// Revoke marks the token revoked. Revoking an unknown token is not an
// error so logout stays idempotent.
func (s *tokenService) Revoke(token string) error {
	err := s.db.Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("is_revoked", true).Error
	if err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}
	return nil
}

// DeleteExpired removes tokens past their expiry, returning the count.
func (s *tokenService) DeleteExpired() (int64, error) {
	res := s.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, apperrors.ErrInternalServer.Wrap(res.Error)
	}
	return res.RowsAffected, nil
}
