package handlers

import (
	"github.com/gin-gonic/gin"

	"trashapp/internal/models"
	"trashapp/internal/notify"
	"trashapp/internal/pagination"
	"trashapp/internal/response"
	"trashapp/internal/services"
)

// AdminHandler handles admin-only listings and pickup management
type AdminHandler struct {
	admin    services.AdminServicer
	pickups  services.PickupServicer
	notifier notify.Notifier
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin services.AdminServicer, pickups services.PickupServicer, notifier notify.Notifier) *AdminHandler {
	return &AdminHandler{admin: admin, pickups: pickups, notifier: notifier}
}

// DashboardStats returns platform-wide aggregates
// @Summary     Dashboard statistics
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope "Aggregated platform stats"
// @Failure     403 {object} response.ErrorEnvelope "Not an admin"
// @Router      /admin/dashboard/stats [get]
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.admin.GetDashboardStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats, "Dashboard stats retrieved successfully")
}

// ListPickups lists all pickups across customers
// @Summary     List all pickups
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (1-100)"
// @Param       search query string false "Free-text search"
// @Param       status query string false "Filter by status"
// @Param       waste_type query string false "Filter by waste type"
// @Success     200 {object} response.Envelope "Pickups with pagination metadata"
// @Router      /admin/pickups [get]
func (h *AdminHandler) ListPickups(c *gin.Context) {
	page, err := pagination.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter, err := parsePickupFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pickups, total, err := h.admin.ListPickups(page, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := pagination.NewMetadata(total, page.Page, page.PageSize)
	response.SuccessPaginated(c, pickups, "Pickups retrieved successfully", meta)
}

// ListDrivers lists driver accounts
// @Summary     List drivers
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (1-100)"
// @Param       search query string false "Search name, email, phone"
// @Success     200 {object} response.Envelope "Drivers with pagination metadata"
// @Router      /admin/drivers [get]
func (h *AdminHandler) ListDrivers(c *gin.Context) {
	page, err := pagination.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	drivers, total, err := h.admin.ListDrivers(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := pagination.NewMetadata(total, page.Page, page.PageSize)
	response.SuccessPaginated(c, drivers, "Drivers retrieved successfully", meta)
}

// ListUsers lists customer accounts
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (1-100)"
// @Param       search query string false "Search name, email, phone"
// @Success     200 {object} response.Envelope "Users with pagination metadata"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := pagination.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	users, total, err := h.admin.ListUsers(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := pagination.NewMetadata(total, page.Page, page.PageSize)
	response.SuccessPaginated(c, users, "Users retrieved successfully", meta)
}

// AssignDriverRequest names the driver for a pending pickup
type AssignDriverRequest struct {
	DriverID string `json:"driver_id" binding:"required,uuid"`
}

// AssignDriver attaches a driver to a pending pickup
// @Summary     Assign a driver
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Param       request body AssignDriverRequest true "Driver to assign"
// @Success     200 {object} response.Envelope "Updated pickup"
// @Failure     400 {object} response.ErrorEnvelope "Pickup not pending"
// @Failure     404 {object} response.ErrorEnvelope "Pickup or driver not found"
// @Router      /admin/pickups/{id}/assign [post]
func (h *AdminHandler) AssignDriver(c *gin.Context) {
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req AssignDriverRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	pickup, err := h.admin.AssignDriver(pickupID, req.DriverID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pickup, "Driver assigned successfully")
}

// UpdateStatusRequest appends a lifecycle transition
type UpdateStatusRequest struct {
	Status    string   `json:"status" binding:"required,pickup_status"`
	Message   string   `json:"message" binding:"max=500"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Address   string   `json:"address" binding:"max=255"`
	Photos    []string `json:"photos" binding:"omitempty,max=5"`
}

// UpdateStatus appends a status update to a pickup
// @Summary     Update pickup status
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Param       request body UpdateStatusRequest true "New status with optional location and photos"
// @Success     200 {object} response.Envelope "Updated pickup"
// @Failure     400 {object} response.ErrorEnvelope "Transition not allowed"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /admin/pickups/{id}/status [post]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	var loc *services.Location
	if req.Longitude != nil && req.Latitude != nil {
		loc = &services.Location{
			Longitude: *req.Longitude,
			Latitude:  *req.Latitude,
			Address:   req.Address,
		}
	}

	pickup, err := h.pickups.AddStatusUpdate(pickupID, models.PickupStatus(req.Status), req.Message, loc, req.Photos)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.notifier.Publish(c.Request.Context(), notify.Event{
		Type:      notify.EventPickupStatusChanged,
		Recipient: pickup.UserID,
		Data: map[string]string{
			"pickup_id": pickup.ID,
			"status":    string(pickup.Status),
		},
	})
	response.Success(c, pickup, "Pickup status updated successfully")
}
