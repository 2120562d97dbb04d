package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trashapp/internal/handlers"
	"trashapp/internal/logger"
	"trashapp/internal/middleware"
	"trashapp/internal/models"
	"trashapp/internal/notify"
	"trashapp/internal/services"
	"trashapp/internal/storage"
	"trashapp/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Notifier *recordingNotifier
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// recordingNotifier captures published events so tests can read the
// verification and reset tokens that would otherwise go out by email.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Publish(_ context.Context, event notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

// lastToken returns the token carried by the most recent event of the
// given type.
func (n *recordingNotifier) lastToken(eventType string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.events) - 1; i >= 0; i-- {
		if n.events[i].Type == eventType {
			return n.events[i].Data["token"]
		}
	}
	return ""
}

// stubGoogle resolves every code to a fixed profile.
type stubGoogle struct {
	profile services.GoogleProfile
}

func (s *stubGoogle) ExchangeCode(_ context.Context, _ string) (services.GoogleProfile, error) {
	return s.profile, nil
}

func (s *stubGoogle) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.RefreshToken{},
		&models.RecurringPickupSchedule{},
		&models.Pickup{},
		&models.StatusUpdate{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	notifier := &recordingNotifier{}
	store := &storage.LocalStore{Dir: t.TempDir(), BaseURL: "http://localhost:8080"}

	// Services
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	googleService := &stubGoogle{profile: services.GoogleProfile{
		ID: "google-uid-1", Email: "googler@example.com", Name: "Google User",
	}}
	pickupService := services.NewPickupService(db)
	scheduleService := services.NewScheduleService(db)
	adminService := services.NewAdminService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, tokenService, googleService, notifier)
	pickupHandler := handlers.NewPickupHandler(pickupService, store, notifier)
	recurringHandler := handlers.NewRecurringHandler(scheduleService)
	adminHandler := handlers.NewAdminHandler(adminService, pickupService, notifier)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/token/refresh", authHandler.Refresh)
	auth.POST("/email/verify", authHandler.VerifyEmail)
	auth.POST("/password/reset", authHandler.ResetPassword)
	auth.POST("/password/reset/confirm", authHandler.ConfirmReset)
	auth.GET("/google/init", authHandler.GoogleInit)
	auth.POST("/google/token", authHandler.GoogleToken)

	authProtected := v1.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware())
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/profile", authHandler.Profile)
	authProtected.POST("/email/resend", authHandler.ResendVerification)
	authProtected.POST("/password/change", authHandler.ChangePassword)

	pickups := v1.Group("/customer/pickups")
	pickups.Use(middleware.AuthMiddleware())
	pickups.POST("/request", pickupHandler.Create)
	pickups.GET("/my", pickupHandler.List)
	pickups.GET("/stats", pickupHandler.Stats)
	pickups.GET("/recurring", recurringHandler.List)
	pickups.POST("/recurring/create", recurringHandler.Create)
	pickups.PATCH("/recurring/:id/toggle", recurringHandler.Toggle)
	pickups.GET("/:id", pickupHandler.Get)
	pickups.PUT("/:id", pickupHandler.Update)
	pickups.PATCH("/:id/cancel", pickupHandler.Cancel)
	pickups.POST("/:id/photos", pickupHandler.UploadPhotos)
	pickups.GET("/:id/tracking", pickupHandler.Tracking)
	pickups.POST("/:id/rate", pickupHandler.Rate)
	pickups.POST("/:id/contact-driver", pickupHandler.ContactDriver)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard/stats", adminHandler.DashboardStats)
	admin.GET("/pickups", adminHandler.ListPickups)
	admin.POST("/pickups/:id/assign", adminHandler.AssignDriver)
	admin.POST("/pickups/:id/status", adminHandler.UpdateStatus)
	admin.GET("/drivers", adminHandler.ListDrivers)
	admin.GET("/users", adminHandler.ListUsers)

	return &testApp{DB: db, Router: router, Notifier: notifier}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// data returns the envelope's data object.
func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	d, ok := parseJSON(t, rec)["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %s", rec.Body.String())
	}
	return d
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	d := data(t, rec)
	user := d["user"].(map[string]interface{})
	return d["access_token"].(string), d["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	d := data(t, rec)
	return d["access_token"].(string), d["refresh_token"].(string)
}

// promote changes a user's role directly in the database and logs the
// user back in so the new role lands in the access token.
func (app *testApp) promote(t *testing.T, userID string, role models.Role, email, password string) string {
	t.Helper()
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
	access, _ := app.loginUser(t, email, password)
	return access
}
