package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/models"
	"trashapp/internal/pagination"
)

type adminService struct {
	db *gorm.DB
}

// NewAdminService creates an admin service backed by the given database.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// GetDashboardStats aggregates platform-wide counts for the admin
// dashboard.
func (s *adminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	queries := []struct {
		dest  *int64
		build func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalPickups, func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.Pickup{})
		}},
		{&stats.ActivePickups, func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.Pickup{}).Where("status IN ?", []models.PickupStatus{
				models.StatusPending, models.StatusAssigned, models.StatusInProgress,
			})
		}},
		{&stats.CompletedPickups, func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.Pickup{}).Where("status = ?", models.StatusCompleted)
		}},
		{&stats.TotalDrivers, func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.User{}).Where("role = ?", models.RoleDriver)
		}},
		{&stats.TotalUsers, func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.User{}).Where("role = ?", models.RoleCustomer)
		}},
	}
	for _, query := range queries {
		if err := query.build(s.db).Count(query.dest).Error; err != nil {
			return nil, apperrors.ErrInternalServer.Wrap(err)
		}
	}

	err := s.db.Model(&models.Pickup{}).
		Select("COALESCE(SUM(COALESCE(actual_cost, estimated_cost)), 0)").
		Where("status = ?", models.StatusCompleted).
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	return stats, nil
}

// ListPickups lists all pickups across customers, newest first.
func (s *adminService) ListPickups(page pagination.PageRequest, filter PickupFilter) ([]models.Pickup, int64, error) {
	q := applyFilter(s.db.Model(&models.Pickup{}), filter).
		Scopes(pagination.Search(page.Search, "address", "notes", "special_instructions"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}

	var pickups []models.Pickup
	err := q.Preload("User").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&pickups).Error
	if err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}
	return pickups, total, nil
}

func (s *adminService) listUsersByRole(role models.Role, page pagination.PageRequest) ([]models.User, int64, error) {
	q := s.db.Model(&models.User{}).
		Where("role = ?", role).
		Scopes(pagination.Search(page.Search, "name", "email", "phone"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}

	var users []models.User
	err := q.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&users).Error
	if err != nil {
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}
	return users, total, nil
}

// ListDrivers lists driver accounts.
func (s *adminService) ListDrivers(page pagination.PageRequest) ([]models.User, int64, error) {
	return s.listUsersByRole(models.RoleDriver, page)
}

// ListUsers lists customer accounts. Admin accounts are never exposed
// through listings.
func (s *adminService) ListUsers(page pagination.PageRequest) ([]models.User, int64, error) {
	return s.listUsersByRole(models.RoleCustomer, page)
}

// AssignDriver attaches a driver to a pending pickup and moves it to
// assigned.
func (s *adminService) AssignDriver(pickupID, driverID string) (*models.Pickup, error) {
	var driver models.User
	err := s.db.First(&driver, "id = ? AND role = ?", driverID, models.RoleDriver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound.WithMessage("Driver not found")
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	var pickup models.Pickup
	if err := s.db.First(&pickup, "id = ?", pickupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPickupNotFound
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if pickup.Status != models.StatusPending {
		return nil, apperrors.ErrInvalidStatus.WithDetails(map[string]string{
			"from": string(pickup.Status),
			"to":   string(models.StatusAssigned),
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		pickup.AssignedDriverID = &driver.ID
		pickup.Status = models.StatusAssigned
		if err := tx.Save(&pickup).Error; err != nil {
			return err
		}
		update := &models.StatusUpdate{
			PickupID: pickup.ID,
			Status:   models.StatusAssigned,
			Message:  "Driver assigned",
		}
		return tx.Create(update).Error
	})
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return &pickup, nil
}
