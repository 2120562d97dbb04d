package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/models"
	"trashapp/internal/pagination"
)

type scheduleService struct {
	db *gorm.DB
}

// NewScheduleService creates a recurring-schedule service backed by the
// given database.
func NewScheduleService(db *gorm.DB) ScheduleServicer {
	return &scheduleService{db: db}
}

// Create validates the frequency anchor and stores an active schedule
// with its first occurrence computed.
func (s *scheduleService) Create(userID string, input CreateScheduleInput) (*models.RecurringPickupSchedule, error) {
	if input.Frequency.NeedsDayOfWeek() {
		if input.DayOfWeek == nil {
			return nil, apperrors.ErrMissingDayOfWeek
		}
		if *input.DayOfWeek < 0 || *input.DayOfWeek > 6 {
			return nil, apperrors.ErrValidation.WithDetails(map[string]string{
				"day_of_week": "must be between 0 and 6",
			})
		}
	} else {
		if input.DayOfMonth == nil {
			return nil, apperrors.ErrMissingDayOfMonth
		}
		if *input.DayOfMonth < 1 || *input.DayOfMonth > 31 {
			return nil, apperrors.ErrValidation.WithDetails(map[string]string{
				"day_of_month": "must be between 1 and 31",
			})
		}
	}

	schedule := &models.RecurringPickupSchedule{
		UserID:              userID,
		Frequency:           input.Frequency,
		DayOfWeek:           input.DayOfWeek,
		DayOfMonth:          input.DayOfMonth,
		TimeSlot:            input.TimeSlot,
		WasteType:           input.WasteType,
		Address:             input.Address,
		Longitude:           input.Longitude,
		Latitude:            input.Latitude,
		IsActive:            true,
		Notes:               input.Notes,
		SpecialInstructions: input.SpecialInstructions,
	}
	schedule.NextPickupDate = schedule.InitialNextPickupDate(time.Now())

	if err := s.db.Create(schedule).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return schedule, nil
}

// GetUserSchedules lists the user's schedules, newest first.
func (s *scheduleService) GetUserSchedules(userID string, page pagination.PageRequest) ([]models.RecurringPickupSchedule, int64, error) {
	q := s.db.Model(&models.RecurringPickupSchedule{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}

	var schedules []models.RecurringPickupSchedule
	err := q.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&schedules).Error
	if err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}
	return schedules, total, nil
}

// ToggleActive flips the schedule between paused and active.
func (s *scheduleService) ToggleActive(userID, scheduleID string) (*models.RecurringPickupSchedule, error) {
	var schedule models.RecurringPickupSchedule
	err := s.db.First(&schedule, "id = ? AND user_id = ?", scheduleID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	schedule.IsActive = !schedule.IsActive
	if err := s.db.Save(&schedule).Error; err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &schedule, nil
}

// GenerateNextPickup materializes the schedule's next occurrence as a
// pending pickup and advances the schedule. Inactive schedules generate
// nothing.
func (s *scheduleService) GenerateNextPickup(scheduleID string) (*models.Pickup, error) {
	var schedule models.RecurringPickupSchedule
	err := s.db.First(&schedule, "id = ?", scheduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if !schedule.IsActive {
		return nil, apperrors.ErrInvalidStatus.WithMessage("Schedule is paused")
	}

	pickup := &models.Pickup{
		UserID:              schedule.UserID,
		Address:             schedule.Address,
		Longitude:           schedule.Longitude,
		Latitude:            schedule.Latitude,
		Notes:               schedule.Notes,
		Status:              models.StatusPending,
		WasteType:           schedule.WasteType,
		PickupDate:          schedule.NextPickupDate,
		PickupTime:          schedule.TimeSlot,
		RecurringPickup:     true,
		RecurringFrequency:  schedule.Frequency,
		RecurringScheduleID: &schedule.ID,
		SpecialInstructions: schedule.SpecialInstructions,
	}
	pickup.EstimatedCost = pickup.CalculateEstimatedCost()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pickup).Error; err != nil {
			return err
		}
		schedule.NextPickupDate = schedule.Advance()
		return tx.Save(&schedule).Error
	})
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickup, nil
}
