package handlers

import (
	"github.com/gin-gonic/gin"

	"trashapp/internal/models"
	"trashapp/internal/pagination"
	"trashapp/internal/response"
	"trashapp/internal/services"
)

// RecurringHandler handles recurring pickup schedules
type RecurringHandler struct {
	schedules services.ScheduleServicer
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(schedules services.ScheduleServicer) *RecurringHandler {
	return &RecurringHandler{schedules: schedules}
}

// CreateScheduleRequest represents a new recurring schedule payload
type CreateScheduleRequest struct {
	Frequency           string   `json:"frequency" binding:"required,frequency"`
	DayOfWeek           *int     `json:"day_of_week" binding:"omitempty,gte=0,lte=6"`
	DayOfMonth          *int     `json:"day_of_month" binding:"omitempty,gte=1,lte=31"`
	TimeSlot            string   `json:"time_slot" binding:"required,pickup_time"`
	WasteType           string   `json:"waste_type" binding:"required,waste_type"`
	Address             string   `json:"address" binding:"required,max=255"`
	Longitude           *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Latitude            *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Notes               string   `json:"notes" binding:"max=500"`
	SpecialInstructions string   `json:"special_instructions" binding:"max=500"`
}

// Create registers a recurring schedule
// @Summary     Create a recurring schedule
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateScheduleRequest true "Schedule data"
// @Success     201 {object} response.Envelope "Schedule with its first pickup date"
// @Failure     400 {object} response.ErrorEnvelope "Missing day anchor for the frequency"
// @Failure     422 {object} response.ErrorEnvelope "Validation failed"
// @Router      /customer/pickups/recurring/create [post]
func (h *RecurringHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req CreateScheduleRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := h.schedules.Create(userID, services.CreateScheduleInput{
		Frequency:           models.Frequency(req.Frequency),
		DayOfWeek:           req.DayOfWeek,
		DayOfMonth:          req.DayOfMonth,
		TimeSlot:            models.TimeSlot(req.TimeSlot),
		WasteType:           models.WasteType(req.WasteType),
		Address:             req.Address,
		Longitude:           req.Longitude,
		Latitude:            req.Latitude,
		Notes:               req.Notes,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule, "Recurring schedule created successfully")
}

// List returns the user's schedules
// @Summary     List my recurring schedules
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (1-100)"
// @Success     200 {object} response.Envelope "Schedules with pagination metadata"
// @Router      /customer/pickups/recurring [get]
func (h *RecurringHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := pagination.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedules, total, err := h.schedules.GetUserSchedules(userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := pagination.NewMetadata(total, page.Page, page.PageSize)
	response.SuccessPaginated(c, schedules, "Schedules retrieved successfully", meta)
}

// Toggle flips a schedule between active and paused
// @Summary     Toggle a recurring schedule
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Schedule ID"
// @Success     200 {object} response.Envelope "Updated schedule"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/recurring/{id}/toggle [patch]
func (h *RecurringHandler) Toggle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := h.schedules.ToggleActive(userID, scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Schedule paused"
	if schedule.IsActive {
		message = "Schedule activated"
	}
	response.Success(c, schedule, message)
}
