package services

import (
	"context"
	"time"

	"trashapp/internal/models"
	"trashapp/internal/pagination"
)

// UserServicer defines the contract for identity-related business logic.
type UserServicer interface {
	CreateUser(name, email, password, phone, address string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	StartPasswordReset(email string) (*models.User, string, error)
	ConfirmPasswordReset(token, newPassword string) error
	StartEmailVerification(userID string) (*models.User, string, error)
	VerifyEmail(token string) error
	FindOrCreateGoogleUser(profile GoogleProfile) (*models.User, error)
}

// TokenServicer defines the contract for refresh-token management.
type TokenServicer interface {
	Issue(userID, userAgent, ip string) (*models.RefreshToken, error)
	Validate(token string) (*models.RefreshToken, error)
	Revoke(token string) error
	DeleteExpired() (int64, error)
}

// GoogleProfile is the normalized external profile returned by the
// OAuth exchange.
type GoogleProfile struct {
	ID    string
	Email string
	Name  string
}

// GoogleExchanger turns an authorization code into a GoogleProfile.
type GoogleExchanger interface {
	ExchangeCode(ctx context.Context, code string) (GoogleProfile, error)
	AuthURL(state string) string
}

// Location is an optional point attached to a status update.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Address   string  `json:"address,omitempty"`
}

// CreatePickupInput carries the fields of a new pickup request.
type CreatePickupInput struct {
	Address             string
	Longitude           *float64
	Latitude            *float64
	Notes               string
	WasteType           models.WasteType
	PickupDate          time.Time
	PickupTime          models.TimeSlot
	EstimatedWeight     *float64
	UrgentPickup        bool
	RecurringPickup     bool
	RecurringFrequency  models.Frequency
	SpecialInstructions string
}

// UpdatePickupInput is a partial patch; nil fields are left untouched.
type UpdatePickupInput struct {
	Address             *string
	Longitude           *float64
	Latitude            *float64
	Notes               *string
	WasteType           *models.WasteType
	PickupDate          *time.Time
	PickupTime          *models.TimeSlot
	EstimatedWeight     *float64
	UrgentPickup        *bool
	SpecialInstructions *string
}

// PickupFilter holds optional filter parameters for listing pickups.
type PickupFilter struct {
	Status        *models.PickupStatus
	WasteType     *models.WasteType
	DateFrom      *time.Time
	DateTo        *time.Time
	UrgentOnly    bool
	RecurringOnly bool
}

// PickupStats aggregates a customer's pickup history.
type PickupStats struct {
	TotalPickups  int64                         `json:"total_pickups"`
	ByStatus      map[models.PickupStatus]int64 `json:"by_status"`
	TotalWeight   float64                       `json:"total_weight"`
	TotalCost     int64                         `json:"total_cost"`
	AverageRating float64                       `json:"average_rating"`
}

// TrackingInfo describes the latest known position of a pickup.
type TrackingInfo struct {
	PickupID        string               `json:"pickup_id"`
	Status          models.PickupStatus  `json:"status"`
	CurrentLocation *Location            `json:"current_location"`
	StatusUpdates   []models.StatusUpdate `json:"status_updates"`
}

// DriverContact is the assigned driver's contact card.
type DriverContact struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// PickupServicer defines the contract for the pickup lifecycle.
type PickupServicer interface {
	Create(userID string, input CreatePickupInput) (*models.Pickup, error)
	GetUserPickups(userID string, page pagination.PageRequest, filter PickupFilter) ([]models.Pickup, int64, error)
	GetByID(userID, pickupID string) (*models.Pickup, error)
	Update(userID, pickupID string, patch UpdatePickupInput) (*models.Pickup, error)
	Cancel(userID, pickupID string) (*models.Pickup, error)
	AddStatusUpdate(pickupID string, status models.PickupStatus, message string, loc *Location, photos []string) (*models.Pickup, error)
	Rate(userID, pickupID string, rating int, feedback string) (*models.Pickup, error)
	AddPhotos(userID, pickupID string, urls []string) (*models.Pickup, error)
	Stats(userID string) (*PickupStats, error)
	Tracking(userID, pickupID string) (*TrackingInfo, error)
	GetDriverContact(userID, pickupID string) (*DriverContact, error)
}

// CreateScheduleInput carries the fields of a new recurring schedule.
type CreateScheduleInput struct {
	Frequency           models.Frequency
	DayOfWeek           *int
	DayOfMonth          *int
	TimeSlot            models.TimeSlot
	WasteType           models.WasteType
	Address             string
	Longitude           *float64
	Latitude            *float64
	Notes               string
	SpecialInstructions string
}

// ScheduleServicer defines the contract for recurring schedules.
type ScheduleServicer interface {
	Create(userID string, input CreateScheduleInput) (*models.RecurringPickupSchedule, error)
	GetUserSchedules(userID string, page pagination.PageRequest) ([]models.RecurringPickupSchedule, int64, error)
	ToggleActive(userID, scheduleID string) (*models.RecurringPickupSchedule, error)
	GenerateNextPickup(scheduleID string) (*models.Pickup, error)
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalPickups     int64 `json:"total_pickups"`
	ActivePickups    int64 `json:"active_pickups"`
	CompletedPickups int64 `json:"completed_pickups"`
	TotalDrivers     int64 `json:"total_drivers"`
	TotalUsers       int64 `json:"total_users"`
	Revenue          int64 `json:"revenue"`
}

// AdminServicer defines the contract for admin listings.
type AdminServicer interface {
	GetDashboardStats() (*DashboardStats, error)
	ListPickups(page pagination.PageRequest, filter PickupFilter) ([]models.Pickup, int64, error)
	ListDrivers(page pagination.PageRequest) ([]models.User, int64, error)
	ListUsers(page pagination.PageRequest) ([]models.User, int64, error)
	AssignDriver(pickupID, driverID string) (*models.Pickup, error)
}
