// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("waste_type", validateWasteType)
		_ = v.RegisterValidation("pickup_time", validatePickupTime)
		_ = v.RegisterValidation("pickup_status", validatePickupStatus)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateWasteType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "general", "recyclable", "hazardous":
		return true
	}
	return false
}

func validatePickupTime(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "morning", "afternoon", "evening":
		return true
	}
	return false
}

func validatePickupStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "assigned", "in_progress", "completed", "cancelled":
		return true
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "biweekly", "monthly":
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "customer", "driver", "admin":
		return true
	}
	return false
}
