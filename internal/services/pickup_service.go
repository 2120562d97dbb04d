package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/models"
	"trashapp/internal/pagination"
)

// allowedTransitions maps each status to the statuses reachable from it.
var allowedTransitions = map[models.PickupStatus][]models.PickupStatus{
	models.StatusPending:    {models.StatusAssigned, models.StatusCancelled},
	models.StatusAssigned:   {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
}

func transitionAllowed(from, to models.PickupStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type pickupService struct {
	db *gorm.DB
}

// NewPickupService creates a pickup service backed by the given database.
func NewPickupService(db *gorm.DB) PickupServicer {
	return &pickupService{db: db}
}

// Create validates the request date and stores a new pending pickup with
// its estimated cost.
func (s *pickupService) Create(userID string, input CreatePickupInput) (*models.Pickup, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if input.PickupDate.Before(today) {
		return nil, apperrors.ErrInvalidDate
	}

	pickup := &models.Pickup{
		UserID:              userID,
		Address:             input.Address,
		Longitude:           input.Longitude,
		Latitude:            input.Latitude,
		Notes:               input.Notes,
		Status:              models.StatusPending,
		WasteType:           input.WasteType,
		PickupDate:          input.PickupDate,
		PickupTime:          input.PickupTime,
		EstimatedWeight:     input.EstimatedWeight,
		UrgentPickup:        input.UrgentPickup,
		RecurringPickup:     input.RecurringPickup,
		RecurringFrequency:  input.RecurringFrequency,
		SpecialInstructions: input.SpecialInstructions,
	}
	if pickup.PickupTime == "" {
		pickup.PickupTime = models.SlotMorning
	}
	pickup.EstimatedCost = pickup.CalculateEstimatedCost()

	if err := s.db.Create(pickup).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickup, nil
}

// applyFilter narrows a pickup query to the given filter.
func applyFilter(q *gorm.DB, filter PickupFilter) *gorm.DB {
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.WasteType != nil {
		q = q.Where("waste_type = ?", *filter.WasteType)
	}
	if filter.DateFrom != nil {
		q = q.Where("pickup_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("pickup_date <= ?", *filter.DateTo)
	}
	if filter.UrgentOnly {
		q = q.Where("urgent_pickup = ?", true)
	}
	if filter.RecurringOnly {
		q = q.Where("recurring_pickup = ?", true)
	}
	return q
}

// GetUserPickups lists the user's pickups, newest first, with filters,
// free-text search and pagination.
func (s *pickupService) GetUserPickups(userID string, page pagination.PageRequest, filter PickupFilter) ([]models.Pickup, int64, error) {
	q := applyFilter(s.db.Model(&models.Pickup{}).Where("user_id = ?", userID), filter).
		Scopes(pagination.Search(page.Search, "address", "notes", "special_instructions"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}

	var pickups []models.Pickup
	err := q.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&pickups).Error
	if err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickups, total, nil
}

// GetByID fetches a pickup owned by the user, with its status history.
func (s *pickupService) GetByID(userID, pickupID string) (*models.Pickup, error) {
	var pickup models.Pickup
	err := s.db.
		Preload("StatusUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&pickup, "id = ? AND user_id = ?", pickupID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPickupNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &pickup, nil
}

// Update applies a partial patch to a pickup and re-derives the
// estimated cost. Completed and cancelled pickups are no longer
// editable.
func (s *pickupService) Update(userID, pickupID string, patch UpdatePickupInput) (*models.Pickup, error) {
	pickup, err := s.GetByID(userID, pickupID)
	if err != nil {
		return nil, err
	}
	if pickup.Status.Terminal() {
		return nil, apperrors.ErrInvalidStatus.WithMessage("Pickup is already completed or cancelled")
	}

	if patch.PickupDate != nil {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if patch.PickupDate.Before(today) {
			return nil, apperrors.ErrInvalidDate
		}
		pickup.PickupDate = *patch.PickupDate
	}
	if patch.Address != nil {
		pickup.Address = *patch.Address
	}
	if patch.Longitude != nil {
		pickup.Longitude = patch.Longitude
	}
	if patch.Latitude != nil {
		pickup.Latitude = patch.Latitude
	}
	if patch.Notes != nil {
		pickup.Notes = *patch.Notes
	}
	if patch.WasteType != nil {
		pickup.WasteType = *patch.WasteType
	}
	if patch.PickupTime != nil {
		pickup.PickupTime = *patch.PickupTime
	}
	if patch.EstimatedWeight != nil {
		pickup.EstimatedWeight = patch.EstimatedWeight
	}
	if patch.UrgentPickup != nil {
		pickup.UrgentPickup = *patch.UrgentPickup
	}
	if patch.SpecialInstructions != nil {
		pickup.SpecialInstructions = *patch.SpecialInstructions
	}
	pickup.EstimatedCost = pickup.CalculateEstimatedCost()

	if err := s.db.Save(pickup).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickup, nil
}

// Cancel moves a non-terminal pickup to cancelled and records the
// transition in its history.
func (s *pickupService) Cancel(userID, pickupID string) (*models.Pickup, error) {
	pickup, err := s.GetByID(userID, pickupID)
	if err != nil {
		return nil, err
	}
	if pickup.Status.Terminal() {
		return nil, apperrors.ErrInvalidStatus.WithMessage("Pickup is already completed or cancelled")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		pickup.Status = models.StatusCancelled
		if err := tx.Save(pickup).Error; err != nil {
			return err
		}
		update := &models.StatusUpdate{
			PickupID: pickup.ID,
			Status:   models.StatusCancelled,
			Message:  "Cancelled by customer",
		}
		return tx.Create(update).Error
	})
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickup, nil
}

// AddStatusUpdate records a lifecycle transition with an optional
// location and photos. The transition must be reachable from the current
// status.
func (s *pickupService) AddStatusUpdate(pickupID string, status models.PickupStatus, message string, loc *Location, photos []string) (*models.Pickup, error) {
	var pickup models.Pickup
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPickupNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if !transitionAllowed(pickup.Status, status) {
		return nil, apperrors.ErrInvalidStatus.WithDetails(map[string]string{
			"from": string(pickup.Status),
			"to":   string(status),
		})
	}

	update := &models.StatusUpdate{
		PickupID: pickup.ID,
		Status:   status,
		Message:  message,
		Photos:   photos,
	}
	if loc != nil {
		update.Longitude = &loc.Longitude
		update.Latitude = &loc.Latitude
		update.Address = loc.Address
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pickup.Status = status
		if err := tx.Save(&pickup).Error; err != nil {
			return err
		}
		return tx.Create(update).Error
	})
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &pickup, nil
}

// Rate stores the customer's rating and feedback for a completed pickup.
func (s *pickupService) Rate(userID, pickupID string, rating int, feedback string) (*models.Pickup, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	pickup, err := s.GetByID(userID, pickupID)
	if err != nil {
		return nil, err
	}
	if pickup.Status != models.StatusCompleted {
		return nil, apperrors.ErrInvalidStatus.WithMessage("Only completed pickups can be rated")
	}

	pickup.Rating = &rating
	pickup.Feedback = feedback
	if err := s.db.Save(pickup).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickup, nil
}

// AddPhotos appends uploaded photo URLs to a pickup owned by the user.
func (s *pickupService) AddPhotos(userID, pickupID string, urls []string) (*models.Pickup, error) {
	if len(urls) == 0 {
		return nil, apperrors.ErrNoPhotos
	}

	pickup, err := s.GetByID(userID, pickupID)
	if err != nil {
		return nil, err
	}
	if pickup.Status.Terminal() {
		return nil, apperrors.ErrInvalidStatus.WithMessage("Pickup is already completed or cancelled")
	}

	pickup.Photos = append(pickup.Photos, urls...)
	if err := s.db.Save(pickup).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickup, nil
}

// Stats aggregates the user's pickup history.
func (s *pickupService) Stats(userID string) (*PickupStats, error) {
	stats := &PickupStats{ByStatus: make(map[models.PickupStatus]int64)}

	type statusCount struct {
		Status models.PickupStatus
		Count  int64
	}
	var counts []statusCount
	err := s.db.Model(&models.Pickup{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] = c.Count
		stats.TotalPickups += c.Count
	}

	type totals struct {
		Weight float64
		Cost   int64
		Rating float64
	}
	var t totals
	err = s.db.Model(&models.Pickup{}).
		Select(
			"COALESCE(SUM(actual_weight), 0) AS weight, "+
				"COALESCE(SUM(actual_cost), 0) AS cost, "+
				"COALESCE(AVG(rating), 0) AS rating").
		Where("user_id = ?", userID).
		Scan(&t).Error
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	stats.TotalWeight = t.Weight
	stats.TotalCost = t.Cost
	stats.AverageRating = t.Rating

	return stats, nil
}

// Tracking returns the status history and the most recent reported
// location for a pickup owned by the user.
func (s *pickupService) Tracking(userID, pickupID string) (*TrackingInfo, error) {
	pickup, err := s.GetByID(userID, pickupID)
	if err != nil {
		return nil, err
	}

	info := &TrackingInfo{
		PickupID:      pickup.ID,
		Status:        pickup.Status,
		StatusUpdates: pickup.StatusUpdates,
	}
	for i := len(pickup.StatusUpdates) - 1; i >= 0; i-- {
		u := pickup.StatusUpdates[i]
		if u.Longitude != nil && u.Latitude != nil {
			info.CurrentLocation = &Location{
				Longitude: *u.Longitude,
				Latitude:  *u.Latitude,
				Address:   u.Address,
			}
			break
		}
	}
	return info, nil
}

// GetDriverContact returns the assigned driver's contact card.
func (s *pickupService) GetDriverContact(userID, pickupID string) (*DriverContact, error) {
	var pickup models.Pickup
	err := s.db.Preload("AssignedDriver").
		First(&pickup, "id = ? AND user_id = ?", pickupID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPickupNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if pickup.AssignedDriverID == nil || pickup.AssignedDriver == nil {
		return nil, apperrors.ErrNoDriver
	}

	return &DriverContact{
		DriverID: pickup.AssignedDriver.ID,
		Name:     pickup.AssignedDriver.Name,
		Phone:    pickup.AssignedDriver.Phone,
	}, nil
}
