package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/middleware"
	"trashapp/internal/models"
	"trashapp/internal/notify"
	"trashapp/internal/services"
	"trashapp/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn             func(name, email, password, phone, address string) (*models.User, error)
	getUserByIDFn            func(id string) (*models.User, error)
	getUserByEmailFn         func(email string) (*models.User, error)
	attemptLoginFn           func(email, password string) (*models.User, error)
	changePasswordFn         func(userID, currentPassword, newPassword string) error
	startPasswordResetFn     func(email string) (*models.User, string, error)
	confirmPasswordResetFn   func(token, newPassword string) error
	startEmailVerificationFn func(userID string) (*models.User, string, error)
	verifyEmailFn            func(token string) error
	findOrCreateGoogleFn     func(profile services.GoogleProfile) (*models.User, error)
}

func (m *mockUserService) CreateUser(name, email, password, phone, address string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(name, email, password, phone, address)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ChangePassword(userID, currentPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, currentPassword, newPassword)
	}
	return nil
}

func (m *mockUserService) StartPasswordReset(email string) (*models.User, string, error) {
	if m.startPasswordResetFn != nil {
		return m.startPasswordResetFn(email)
	}
	return &models.User{}, "token", nil
}

func (m *mockUserService) ConfirmPasswordReset(token, newPassword string) error {
	if m.confirmPasswordResetFn != nil {
		return m.confirmPasswordResetFn(token, newPassword)
	}
	return nil
}

func (m *mockUserService) StartEmailVerification(userID string) (*models.User, string, error) {
	if m.startEmailVerificationFn != nil {
		return m.startEmailVerificationFn(userID)
	}
	return &models.User{}, "token", nil
}

func (m *mockUserService) VerifyEmail(token string) error {
	if m.verifyEmailFn != nil {
		return m.verifyEmailFn(token)
	}
	return nil
}

func (m *mockUserService) FindOrCreateGoogleUser(profile services.GoogleProfile) (*models.User, error) {
	if m.findOrCreateGoogleFn != nil {
		return m.findOrCreateGoogleFn(profile)
	}
	return &models.User{}, nil
}

type mockTokenService struct {
	issueFn    func(userID, userAgent, ip string) (*models.RefreshToken, error)
	validateFn func(token string) (*models.RefreshToken, error)
	revokeFn   func(token string) error
}

func (m *mockTokenService) Issue(userID, userAgent, ip string) (*models.RefreshToken, error) {
	if m.issueFn != nil {
		return m.issueFn(userID, userAgent, ip)
	}
	return &models.RefreshToken{Token: "refresh-token"}, nil
}

func (m *mockTokenService) Validate(token string) (*models.RefreshToken, error) {
	if m.validateFn != nil {
		return m.validateFn(token)
	}
	return &models.RefreshToken{Token: token}, nil
}

func (m *mockTokenService) Revoke(token string) error {
	if m.revokeFn != nil {
		return m.revokeFn(token)
	}
	return nil
}

func (m *mockTokenService) DeleteExpired() (int64, error) { return 0, nil }

type mockGoogle struct {
	exchangeFn func(ctx context.Context, code string) (services.GoogleProfile, error)
}

func (m *mockGoogle) ExchangeCode(ctx context.Context, code string) (services.GoogleProfile, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return services.GoogleProfile{ID: "g-1", Email: "g@example.com", Name: "G User"}, nil
}

func (m *mockGoogle) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

// mockNotifier records published events.
type mockNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (m *mockNotifier) Publish(_ context.Context, event notify.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockNotifier) published() []notify.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Event(nil), m.events...)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func testUser() *models.User {
	return &models.User{
		Base:  models.Base{ID: "0195c9a2-0000-7000-8000-000000000001"},
		Name:  "Test User",
		Email: "test@example.com",
		Role:  models.RoleCustomer,
	}
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func setupAuthRouter(handler *AuthHandler, uid string) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/token/refresh", handler.Refresh)
	r.POST("/auth/logout", handler.Logout)
	r.POST("/auth/email/verify", handler.VerifyEmail)
	r.POST("/auth/password/reset", handler.ResetPassword)
	r.POST("/auth/password/reset/confirm", handler.ConfirmReset)
	r.GET("/auth/google/init", handler.GoogleInit)
	r.POST("/auth/google/token", handler.GoogleToken)

	authed := r.Group("/", injectUserID(uid))
	authed.GET("/auth/profile", handler.Profile)
	authed.POST("/auth/password/change", handler.ChangePassword)
	authed.POST("/auth/email/resend", handler.ResendVerification)
	return r
}

// --- tests ---

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		user := testUser()
		notifier := &mockNotifier{}
		var gotPhone, gotAddress string
		handler := NewAuthHandler(
			&mockUserService{
				createUserFn: func(name, email, password, phone, address string) (*models.User, error) {
					gotPhone, gotAddress = phone, address
					return user, nil
				},
				startEmailVerificationFn: func(userID string) (*models.User, string, error) {
					return user, "verify-token", nil
				},
			},
			&mockTokenService{},
			&mockGoogle{},
			notifier,
		)
		r := setupAuthRouter(handler, user.ID)

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"Test User","email":"test@example.com","password":"password123","phone":"+237670000001","address":"Quartier Bastos"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPhone != "+237670000001" || gotAddress != "Quartier Bastos" {
			t.Errorf("expected phone and address forwarded, got %q %q", gotPhone, gotAddress)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if data["access_token"] == "" || data["refresh_token"] != "refresh-token" {
			t.Error("expected a token pair in the response")
		}
		events := notifier.published()
		if len(events) != 1 || events[0].Type != notify.EventEmailVerification {
			t.Errorf("expected one verification event, got %v", events)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		handler := NewAuthHandler(
			&mockUserService{
				createUserFn: func(name, email, password, phone, address string) (*models.User, error) {
					return nil, apperrors.Duplicate("email")
				},
			},
			&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"Test User","email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "DUPLICATE_ERROR" {
			t.Errorf("unexpected code %s", code)
		}
	})

	t.Run("validation_failure", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockTokenService{}, &mockGoogle{}, &mockNotifier{})
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/register",
			`{"name":"Test User","email":"not-an-email","password":"short"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
			t.Errorf("unexpected code %s", code)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		user := testUser()
		handler := NewAuthHandler(
			&mockUserService{
				attemptLoginFn: func(email, password string) (*models.User, error) {
					return user, nil
				},
			},
			&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		respUser := data["user"].(map[string]interface{})
		if respUser["email"] != "test@example.com" {
			t.Errorf("unexpected user payload: %v", respUser)
		}
	})

	t.Run("invalid_credentials", func(t *testing.T) {
		handler := NewAuthHandler(
			&mockUserService{
				attemptLoginFn: func(email, password string) (*models.User, error) {
					return nil, apperrors.ErrInvalidCredentials
				},
			},
			&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"wrong-password"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("locked_account", func(t *testing.T) {
		handler := NewAuthHandler(
			&mockUserService{
				attemptLoginFn: func(email, password string) (*models.User, error) {
					return nil, apperrors.ErrAccountLocked
				},
			},
			&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusLocked {
			t.Fatalf("expected 423, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "ACCOUNT_LOCKED" {
			t.Errorf("unexpected code %s", code)
		}
	})
}

func TestRefresh(t *testing.T) {
	t.Run("issues_new_access_token_only", func(t *testing.T) {
		user := testUser()
		handler := NewAuthHandler(
			&mockUserService{},
			&mockTokenService{
				validateFn: func(token string) (*models.RefreshToken, error) {
					return &models.RefreshToken{Token: token, UserID: user.ID, User: *user}, nil
				},
			},
			&mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/token/refresh", `{"refresh_token":"abc"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if data["access_token"] == "" {
			t.Error("expected a fresh access token")
		}
		if _, rotated := data["refresh_token"]; rotated {
			t.Error("refresh token must not be rotated")
		}
	})

	t.Run("invalid_token", func(t *testing.T) {
		handler := NewAuthHandler(
			&mockUserService{},
			&mockTokenService{
				validateFn: func(token string) (*models.RefreshToken, error) {
					return nil, apperrors.ErrInvalidToken
				},
			},
			&mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/token/refresh", `{"refresh_token":"bogus"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestLogout(t *testing.T) {
	var revoked string
	handler := NewAuthHandler(
		&mockUserService{},
		&mockTokenService{
			revokeFn: func(token string) error {
				revoked = token
				return nil
			},
		},
		&mockGoogle{}, &mockNotifier{},
	)
	r := setupAuthRouter(handler, "")

	rec := doRequest(r, "POST", "/auth/logout", `{"refresh_token":"abc"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != "abc" {
		t.Errorf("expected token revoked, got %q", revoked)
	}
}

func TestProfile(t *testing.T) {
	user := testUser()
	handler := NewAuthHandler(
		&mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				if id != user.ID {
					t.Errorf("expected lookup by %s, got %s", user.ID, id)
				}
				return user, nil
			},
		},
		&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
	)
	r := setupAuthRouter(handler, user.ID)

	rec := doRequest(r, "GET", "/auth/profile", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := parseJSON(t, rec)["data"].(map[string]interface{})
	if data["email"] != user.Email {
		t.Errorf("unexpected profile: %v", data)
	}
}

func TestResetPasswordNeverRevealsAccounts(t *testing.T) {
	notifier := &mockNotifier{}
	handler := NewAuthHandler(
		&mockUserService{
			startPasswordResetFn: func(email string) (*models.User, string, error) {
				return nil, "", apperrors.ErrUserNotFound
			},
		},
		&mockTokenService{}, &mockGoogle{}, notifier,
	)
	r := setupAuthRouter(handler, "")

	rec := doRequest(r, "POST", "/auth/password/reset", `{"email":"nobody@example.com"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown email, got %d", rec.Code)
	}
	if len(notifier.published()) != 0 {
		t.Error("expected no event for unknown email")
	}
}

func TestChangePassword(t *testing.T) {
	t.Run("wrong_current_password", func(t *testing.T) {
		handler := NewAuthHandler(
			&mockUserService{
				changePasswordFn: func(userID, currentPassword, newPassword string) error {
					return apperrors.ErrWrongPassword
				},
			},
			&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, testUser().ID)

		rec := doRequest(r, "POST", "/auth/password/change",
			`{"current_password":"wrong","new_password":"newpassword123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_PASSWORD" {
			t.Errorf("unexpected code %s", code)
		}
	})
}

func TestGoogleAuth(t *testing.T) {
	t.Run("init_returns_consent_url", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockTokenService{}, &mockGoogle{}, &mockNotifier{})
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "GET", "/auth/google/init?state=xyz", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if !strings.Contains(data["url"].(string), "state=xyz") {
			t.Errorf("expected state in consent URL, got %v", data["url"])
		}
	})

	t.Run("token_exchange_success", func(t *testing.T) {
		user := testUser()
		handler := NewAuthHandler(
			&mockUserService{
				findOrCreateGoogleFn: func(profile services.GoogleProfile) (*models.User, error) {
					if profile.Email != "g@example.com" {
						t.Errorf("unexpected profile: %+v", profile)
					}
					return user, nil
				},
			},
			&mockTokenService{}, &mockGoogle{}, &mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/google/token", `{"code":"auth-code"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("token_exchange_failure", func(t *testing.T) {
		handler := NewAuthHandler(
			&mockUserService{},
			&mockTokenService{},
			&mockGoogle{
				exchangeFn: func(ctx context.Context, code string) (services.GoogleProfile, error) {
					return services.GoogleProfile{}, apperrors.ErrInvalidToken
				},
			},
			&mockNotifier{},
		)
		r := setupAuthRouter(handler, "")

		rec := doRequest(r, "POST", "/auth/google/token", `{"code":"bad-code"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
