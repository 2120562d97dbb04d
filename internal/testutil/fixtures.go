package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"trashapp/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password behind every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a customer with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a customer with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.RoleCustomer)
}

// CreateTestDriver creates a driver account.
func CreateTestDriver(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("driver%d@test.com", nextID())
	return createUser(t, db, email, models.RoleDriver)
}

// CreateTestAdmin creates an admin account.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return createUser(t, db, email, models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Role:     role,
		Phone:    "+237670000000",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPickup creates a pending pickup dated tomorrow.
func CreateTestPickup(t *testing.T, db *gorm.DB, userID string) *models.Pickup {
	t.Helper()
	return CreateTestPickupWithStatus(t, db, userID, models.StatusPending)
}

// CreateTestPickupWithStatus creates a pickup in the given status.
func CreateTestPickupWithStatus(t *testing.T, db *gorm.DB, userID string, status models.PickupStatus) *models.Pickup {
	t.Helper()

	weight := 2.0
	pickup := &models.Pickup{
		UserID:          userID,
		Address:         fmt.Sprintf("%d Test Street, Yaounde", nextID()),
		Status:          status,
		WasteType:       models.WasteGeneral,
		PickupDate:      time.Now().AddDate(0, 0, 1),
		PickupTime:      models.SlotMorning,
		EstimatedWeight: &weight,
	}
	pickup.EstimatedCost = pickup.CalculateEstimatedCost()
	if err := db.Create(pickup).Error; err != nil {
		t.Fatalf("failed to create test pickup: %v", err)
	}
	return pickup
}

// CreateTestSchedule creates an active weekly schedule.
func CreateTestSchedule(t *testing.T, db *gorm.DB, userID string) *models.RecurringPickupSchedule {
	t.Helper()

	day := 1
	schedule := &models.RecurringPickupSchedule{
		UserID:    userID,
		Frequency: models.FrequencyWeekly,
		DayOfWeek: &day,
		TimeSlot:  models.SlotMorning,
		WasteType: models.WasteGeneral,
		Address:   fmt.Sprintf("%d Schedule Street, Yaounde", nextID()),
		IsActive:  true,
	}
	schedule.NextPickupDate = schedule.InitialNextPickupDate(time.Now())
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("failed to create test schedule: %v", err)
	}
	return schedule
}

// CreateTestRefreshToken creates a valid refresh token for the user.
func CreateTestRefreshToken(t *testing.T, db *gorm.DB, userID string) *models.RefreshToken {
	t.Helper()

	token := &models.RefreshToken{
		Token:     fmt.Sprintf("testtoken%055d", nextID()),
		UserID:    userID,
		ExpiresAt: time.Now().Add(models.RefreshTokenValidity),
		UserAgent: "testutil",
		IP:        "127.0.0.1",
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test refresh token: %v", err)
	}
	return token
}
