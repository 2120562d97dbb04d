package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/middleware"
	"trashapp/internal/models"
	"trashapp/internal/notify"
	"trashapp/internal/response"
	"trashapp/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	users    services.UserServicer
	tokens   services.TokenServicer
	google   services.GoogleExchanger
	notifier notify.Notifier
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users services.UserServicer, tokens services.TokenServicer, google services.GoogleExchanger, notifier notify.Notifier) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, google: google, notifier: notifier}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Phone    string `json:"phone" binding:"max=20"`
	Address  string `json:"address" binding:"max=255"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries an opaque refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	IsEmailVerified bool   `json:"is_email_verified"`
	IsGoogleLinked  bool   `json:"is_google_linked"`
}

// AuthResponse represents the authentication response with token pair
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            string(user.Role),
		Phone:           user.Phone,
		Address:         user.Address,
		IsEmailVerified: user.IsEmailVerified,
		IsGoogleLinked:  user.IsGoogleLinked,
	}
}

// issueTokenPair mints the JWT access token and a persisted refresh token
// for the user.
func (h *AuthHandler) issueTokenPair(c *gin.Context, user *models.User) (*AuthResponse, error) {
	access, err := middleware.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	refresh, err := h.tokens.Issue(user.ID, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		User:         toUserResponse(user),
	}, nil
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new customer account and issue a token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} response.Envelope "User registered and token pair issued"
// @Failure     409 {object} response.ErrorEnvelope "Email already exists"
// @Failure     422 {object} response.ErrorEnvelope "Validation failed"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.users.CreateUser(req.Name, req.Email, req.Password, req.Phone, req.Address)
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, token, err := h.users.StartEmailVerification(user.ID); err == nil {
		_ = h.notifier.Publish(c.Request.Context(), notify.Event{
			Type:      notify.EventEmailVerification,
			Recipient: user.Email,
			Data:      map[string]string{"token": token},
		})
	}

	resp, err := h.issueTokenPair(c, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp, "User registered successfully")
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and issue a token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} response.Envelope "User authenticated"
// @Failure     401 {object} response.ErrorEnvelope "Invalid credentials"
// @Failure     423 {object} response.ErrorEnvelope "Account locked"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.users.AttemptLogin(req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.issueTokenPair(c, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp, "Login successful")
}

// Logout revokes a refresh token
// @Summary     Logout user
// @Description Revoke the supplied refresh token; idempotent
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RefreshRequest true "Refresh token to revoke"
// @Success     200 {object} response.Envelope "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.tokens.Revoke(req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "Logged out successfully")
}

// Refresh mints a new access token from a valid refresh token
// @Summary     Refresh access token
// @Description Issue a new access token; the refresh token is not rotated
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} response.Envelope "New access token issued"
// @Failure     401 {object} response.ErrorEnvelope "Invalid or expired token"
// @Router      /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	stored, err := h.tokens.Validate(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	access, err := middleware.GenerateAccessToken(&stored.User)
	if err != nil {
		response.Error(c, apperrors.ErrInternalServer.Wrap(err))
		return
	}
	response.Success(c, gin.H{"access_token": access}, "Access token refreshed")
}

// Profile returns the authenticated user's profile
// @Summary     Get profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope "User profile"
// @Failure     401 {object} response.ErrorEnvelope "Unauthenticated"
// @Router      /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserResponse(user), "Profile retrieved successfully")
}

// VerifyEmailRequest carries an email verification token
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail consumes an email verification token
// @Summary     Verify email
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body VerifyEmailRequest true "Verification token"
// @Success     200 {object} response.Envelope "Email verified"
// @Failure     400 {object} response.ErrorEnvelope "Invalid or expired token"
// @Router      /auth/email/verify [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.VerifyEmail(req.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "Email verified successfully")
}

// ResendVerification issues a fresh verification token
// @Summary     Resend email verification
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope "Verification email queued"
// @Failure     400 {object} response.ErrorEnvelope "Already verified"
// @Router      /auth/email/resend [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, token, err := h.users.StartEmailVerification(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.notifier.Publish(c.Request.Context(), notify.Event{
		Type:      notify.EventEmailVerification,
		Recipient: user.Email,
		Data:      map[string]string{"token": token},
	})
	response.Success(c, nil, "Verification email sent")
}

// ResetPasswordRequest starts a password reset
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPassword starts the password reset flow
// @Summary     Request password reset
// @Description Always responds 200 so account existence is not revealed
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ResetPasswordRequest true "Account email"
// @Success     200 {object} response.Envelope "Reset email queued"
// @Router      /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, token, err := h.users.StartPasswordReset(req.Email)
	if err == nil {
		_ = h.notifier.Publish(c.Request.Context(), notify.Event{
			Type:      notify.EventPasswordReset,
			Recipient: user.Email,
			Data:      map[string]string{"token": token},
		})
	}

	// Unknown emails get the same response as known ones.
	response.Success(c, nil, "If the email exists, a reset link has been sent")
}

// ConfirmResetRequest completes a password reset
type ConfirmResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ConfirmReset completes the password reset flow
// @Summary     Confirm password reset
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ConfirmResetRequest true "Reset token and new password"
// @Success     200 {object} response.Envelope "Password reset"
// @Failure     400 {object} response.ErrorEnvelope "Invalid or expired token"
// @Router      /auth/password/reset/confirm [post]
func (h *AuthHandler) ConfirmReset(c *gin.Context) {
	var req ConfirmResetRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.ConfirmPasswordReset(req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "Password reset successfully")
}

// ChangePasswordRequest changes the password of a logged-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// ChangePassword changes the authenticated user's password
// @Summary     Change password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Current and new password"
// @Success     200 {object} response.Envelope "Password changed"
// @Failure     400 {object} response.ErrorEnvelope "Current password incorrect"
// @Router      /auth/password/change [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "Password changed successfully")
}

// GoogleInit returns the Google consent page URL
// @Summary     Start Google OAuth
// @Tags        auth
// @Produce     json
// @Param       state query string false "Opaque client state"
// @Success     200 {object} response.Envelope "Consent URL"
// @Router      /auth/google/init [get]
func (h *AuthHandler) GoogleInit(c *gin.Context) {
	state := c.Query("state")
	response.Success(c, gin.H{"url": h.google.AuthURL(state)}, "Google authorization URL generated")
}

// GoogleTokenRequest carries the OAuth authorization code
type GoogleTokenRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleToken exchanges an authorization code for a token pair
// @Summary     Complete Google OAuth
// @Description Exchange the authorization code, link or create the account, and issue a token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body GoogleTokenRequest true "Authorization code"
// @Success     200 {object} response.Envelope "User authenticated"
// @Failure     401 {object} response.ErrorEnvelope "Code exchange failed"
// @Router      /auth/google/token [post]
func (h *AuthHandler) GoogleToken(c *gin.Context) {
	var req GoogleTokenRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.google.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.users.FindOrCreateGoogleUser(profile)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.issueTokenPair(c, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp, "Google login successful")
}
