package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"trashapp/internal/config"
	apperrors "trashapp/internal/errors"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleService struct {
	oauth *oauth2.Config
}

// NewGoogleService builds the OAuth exchanger from application config.
func NewGoogleService(cfg *config.Config) GoogleExchanger {
	return &googleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the Google consent page URL for the given state.
func (s *googleService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode trades the authorization code for an access token and
// fetches the user's profile with it.
func (s *googleService) ExchangeCode(ctx context.Context, code string) (GoogleProfile, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, apperrors.ErrInvalidToken.Wrap(err)
	}

	resp, err := s.oauth.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return GoogleProfile{}, apperrors.ErrInternalServer.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, apperrors.ErrInternalServer.Wrap(
			fmt.Errorf("userinfo returned status %d", resp.StatusCode))
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleProfile{}, apperrors.ErrInternalServer.Wrap(err)
	}
	if info.ID == "" || info.Email == "" {
		return GoogleProfile{}, apperrors.ErrInvalidToken
	}

	return GoogleProfile{ID: info.ID, Email: info.Email, Name: info.Name}, nil
}
