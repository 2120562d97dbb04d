package handlers

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/models"
	"trashapp/internal/notify"
	"trashapp/internal/pagination"
	"trashapp/internal/response"
	"trashapp/internal/services"
	"trashapp/internal/storage"
)

// Photo upload limits.
const (
	maxPhotoCount = 5
	maxPhotoSize  = 5 << 20
)

// PickupHandler handles customer pickup requests
type PickupHandler struct {
	pickups  services.PickupServicer
	store    storage.Store
	notifier notify.Notifier
}

// NewPickupHandler creates a new PickupHandler
func NewPickupHandler(pickups services.PickupServicer, store storage.Store, notifier notify.Notifier) *PickupHandler {
	return &PickupHandler{pickups: pickups, store: store, notifier: notifier}
}

// CreatePickupRequest represents a new pickup request payload
type CreatePickupRequest struct {
	Address             string   `json:"address" binding:"required,max=255"`
	Longitude           *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Latitude            *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Notes               string   `json:"notes" binding:"max=500"`
	WasteType           string   `json:"waste_type" binding:"required,waste_type"`
	PickupDate          string   `json:"pickup_date" binding:"required"`
	PickupTime          string   `json:"pickup_time" binding:"omitempty,pickup_time"`
	EstimatedWeight     *float64 `json:"estimated_weight" binding:"omitempty,gt=0"`
	UrgentPickup        bool     `json:"urgent_pickup"`
	RecurringPickup     bool     `json:"recurring_pickup"`
	RecurringFrequency  string   `json:"recurring_frequency" binding:"omitempty,frequency"`
	SpecialInstructions string   `json:"special_instructions" binding:"max=500"`
}

// UpdatePickupRequest is a partial pickup patch payload
type UpdatePickupRequest struct {
	Address             *string  `json:"address" binding:"omitempty,max=255"`
	Longitude           *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Latitude            *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Notes               *string  `json:"notes" binding:"omitempty,max=500"`
	WasteType           *string  `json:"waste_type" binding:"omitempty,waste_type"`
	PickupDate          *string  `json:"pickup_date"`
	PickupTime          *string  `json:"pickup_time" binding:"omitempty,pickup_time"`
	EstimatedWeight     *float64 `json:"estimated_weight" binding:"omitempty,gt=0"`
	UrgentPickup        *bool    `json:"urgent_pickup"`
	SpecialInstructions *string  `json:"special_instructions" binding:"omitempty,max=500"`
}

// RatePickupRequest carries a completed pickup's rating
type RatePickupRequest struct {
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Feedback string `json:"feedback" binding:"max=500"`
}

// ContactDriverRequest carries the message relayed to the driver
type ContactDriverRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

// parseDate accepts both plain dates and RFC 3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.ErrValidation.WithDetails(map[string]string{
			"pickup_date": "must be a date in YYYY-MM-DD format",
		})
	}
	return t, nil
}

// parsePickupFilter reads the optional list filters from the query.
// date_range is a from,to pair of dates; either side may be empty.
func parsePickupFilter(c *gin.Context) (services.PickupFilter, error) {
	var filter services.PickupFilter

	if raw := c.Query("status"); raw != "" {
		status := models.PickupStatus(raw)
		switch status {
		case models.StatusPending, models.StatusAssigned, models.StatusInProgress,
			models.StatusCompleted, models.StatusCancelled:
			filter.Status = &status
		default:
			return filter, apperrors.ErrValidation.WithDetails(map[string]string{
				"status": "status has an invalid value",
			})
		}
	}

	if raw := c.Query("waste_type"); raw != "" {
		wt := models.WasteType(raw)
		switch wt {
		case models.WasteGeneral, models.WasteRecyclable, models.WasteHazardous:
			filter.WasteType = &wt
		default:
			return filter, apperrors.ErrValidation.WithDetails(map[string]string{
				"waste_type": "waste_type has an invalid value",
			})
		}
	}

	if raw := c.Query("date_range"); raw != "" {
		parts := strings.SplitN(raw, ",", 2)
		if from := strings.TrimSpace(parts[0]); from != "" {
			t, err := parseDate(from)
			if err != nil {
				return filter, apperrors.ErrValidation.WithDetails(map[string]string{
					"date_range": "dates must be in YYYY-MM-DD format",
				})
			}
			filter.DateFrom = &t
		}
		if len(parts) == 2 {
			if to := strings.TrimSpace(parts[1]); to != "" {
				t, err := parseDate(to)
				if err != nil {
					return filter, apperrors.ErrValidation.WithDetails(map[string]string{
						"date_range": "dates must be in YYYY-MM-DD format",
					})
				}
				filter.DateTo = &t
			}
		}
	}

	filter.UrgentOnly = c.Query("urgent_only") == "true"
	filter.RecurringOnly = c.Query("recurring_only") == "true"
	return filter, nil
}

// Create handles a new pickup request
// @Summary     Request a pickup
// @Tags        pickups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePickupRequest true "Pickup request data"
// @Success     201 {object} response.Envelope "Pickup created"
// @Failure     400 {object} response.ErrorEnvelope "Pickup date in the past"
// @Failure     422 {object} response.ErrorEnvelope "Validation failed"
// @Router      /customer/pickups/request [post]
func (h *PickupHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req CreatePickupRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	date, err := parseDate(req.PickupDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	pickup, err := h.pickups.Create(userID, services.CreatePickupInput{
		Address:             req.Address,
		Longitude:           req.Longitude,
		Latitude:            req.Latitude,
		Notes:               req.Notes,
		WasteType:           models.WasteType(req.WasteType),
		PickupDate:          date,
		PickupTime:          models.TimeSlot(req.PickupTime),
		EstimatedWeight:     req.EstimatedWeight,
		UrgentPickup:        req.UrgentPickup,
		RecurringPickup:     req.RecurringPickup,
		RecurringFrequency:  models.Frequency(req.RecurringFrequency),
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pickup, "Pickup requested successfully")
}

// List returns the user's pickups
// @Summary     List my pickups
// @Tags        pickups
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (1-100)"
// @Param       search query string false "Free-text search over address, notes, special instructions"
// @Param       status query string false "Filter by status"
// @Param       waste_type query string false "Filter by waste type"
// @Param       date_range query string false "from,to date pair"
// @Param       urgent_only query bool false "Urgent pickups only"
// @Param       recurring_only query bool false "Recurring pickups only"
// @Success     200 {object} response.Envelope "Pickups with pagination metadata"
// @Router      /customer/pickups/my [get]
func (h *PickupHandler) List(c *gin.Context) {
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
	filter, err := parsePickupFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pickups, total, err := h.pickups.GetUserPickups(userID, page, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := pagination.NewMetadata(total, page.Page, page.PageSize)
	response.SuccessPaginated(c, pickups, "Pickups retrieved successfully", meta)
}

// Get returns a single pickup with its status history
// @Summary     Get a pickup
// @Tags        pickups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Success     200 {object} response.Envelope "Pickup"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/{id} [get]
func (h *PickupHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	pickup, err := h.pickups.GetByID(userID, pickupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pickup, "Pickup retrieved successfully")
}

// Update applies a partial patch to a pending pickup
// @Summary     Update a pickup
// @Tags        pickups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Param       request body UpdatePickupRequest true "Fields to update"
// @Success     200 {object} response.Envelope "Updated pickup"
// @Failure     400 {object} response.ErrorEnvelope "Status does not allow updates"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/{id} [put]
func (h *PickupHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req UpdatePickupRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	patch := services.UpdatePickupInput{
		Address:             req.Address,
		Longitude:           req.Longitude,
		Latitude:            req.Latitude,
		Notes:               req.Notes,
		EstimatedWeight:     req.EstimatedWeight,
		UrgentPickup:        req.UrgentPickup,
		SpecialInstructions: req.SpecialInstructions,
	}
	if req.WasteType != nil {
		wt := models.WasteType(*req.WasteType)
		patch.WasteType = &wt
	}
	if req.PickupTime != nil {
		slot := models.TimeSlot(*req.PickupTime)
		patch.PickupTime = &slot
	}
	if req.PickupDate != nil {
		date, err := parseDate(*req.PickupDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		patch.PickupDate = &date
	}

	pickup, err := h.pickups.Update(userID, pickupID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pickup, "Pickup updated successfully")
}

// Cancel cancels a non-terminal pickup
// @Summary     Cancel a pickup
// @Tags        pickups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Success     200 {object} response.Envelope "Cancelled pickup"
// @Failure     400 {object} response.ErrorEnvelope "Already completed or cancelled"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/{id}/cancel [patch]
func (h *PickupHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	pickup, err := h.pickups.Cancel(userID, pickupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pickup, "Pickup cancelled successfully")
}

// validatePhoto rejects non-image or oversized uploads.
func validatePhoto(file *multipart.FileHeader) error {
	if file.Size > maxPhotoSize {
		return apperrors.ErrValidation.WithDetails(map[string]string{
			"photos": file.Filename + " exceeds the 5MB limit",
		})
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return apperrors.ErrValidation.WithDetails(map[string]string{
			"photos": file.Filename + " is not an image",
		})
	}
	return nil
}

// UploadPhotos attaches uploaded photos to a pickup
// @Summary     Upload pickup photos
// @Tags        pickups
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Param       photos formData file true "Up to 5 images, 5MB each"
// @Success     200 {object} response.Envelope "Updated pickup"
// @Failure     400 {object} response.ErrorEnvelope "No photos uploaded"
// @Failure     422 {object} response.ErrorEnvelope "Too many, too large, or non-image files"
// @Router      /customer/pickups/{id}/photos [post]
func (h *PickupHandler) UploadPhotos(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, apperrors.ErrNoPhotos)
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		response.Error(c, apperrors.ErrNoPhotos)
		return
	}
	if len(files) > maxPhotoCount {
		response.Error(c, apperrors.ErrValidation.WithDetails(map[string]string{
			"photos": "at most 5 photos per upload",
		}))
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if err := validatePhoto(file); err != nil {
			response.Error(c, err)
			return
		}
		src, err := file.Open()
		if err != nil {
			response.Error(c, apperrors.ErrInternalServer.Wrap(err))
			return
		}
		url, err := h.store.Save(c.Request.Context(), file.Filename, src)
		_ = src.Close()
		if err != nil {
			response.Error(c, apperrors.ErrInternalServer.Wrap(err))
			return
		}
		urls = append(urls, url)
	}

	pickup, err := h.pickups.AddPhotos(userID, pickupID, urls)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pickup, "Photos uploaded successfully")
}

// Tracking returns the pickup's status history and latest location
// @Summary     Track a pickup
// @Tags        pickups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Success     200 {object} response.Envelope "Tracking info"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/{id}/tracking [get]
func (h *PickupHandler) Tracking(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.pickups.Tracking(userID, pickupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info, "Tracking info retrieved successfully")
}

// Rate rates a completed pickup
// @Summary     Rate a pickup
// @Tags        pickups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Param       request body RatePickupRequest true "Rating and optional feedback"
// @Success     200 {object} response.Envelope "Rated pickup"
// @Failure     400 {object} response.ErrorEnvelope "Not completed or rating out of range"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/{id}/rate [post]
func (h *PickupHandler) Rate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req RatePickupRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	pickup, err := h.pickups.Rate(userID, pickupID, req.Rating, req.Feedback)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pickup, "Pickup rated successfully")
}

// ContactDriver relays a message to the assigned driver
// @Summary     Contact the assigned driver
// @Tags        pickups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pickup ID"
// @Param       request body ContactDriverRequest true "Message for the driver"
// @Success     200 {object} response.Envelope "Message queued"
// @Failure     400 {object} response.ErrorEnvelope "No driver assigned"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /customer/pickups/{id}/contact-driver [post]
func (h *PickupHandler) ContactDriver(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pickupID, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req ContactDriverRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	contact, err := h.pickups.GetDriverContact(userID, pickupID)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.notifier.Publish(c.Request.Context(), notify.Event{
		Type:      notify.EventDriverContact,
		Recipient: contact.Phone,
		Data: map[string]string{
			"pickup_id": pickupID,
			"message":   req.Message,
		},
	})
	response.Success(c, contact, "Message sent to driver")
}

// Stats aggregates the user's pickup history
// @Summary     My pickup statistics
// @Tags        pickups
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope "Aggregated stats"
// @Router      /customer/pickups/stats [get]
func (h *PickupHandler) Stats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.pickups.Stats(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats, "Stats retrieved successfully")
}
