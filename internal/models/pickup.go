package models

import (
	"math"
	"time"
)

// PickupStatus is the lifecycle state of a pickup request.
type PickupStatus string

// Pickup lifecycle states. The forward path is
// pending → assigned → in_progress → completed; cancelled is reachable
// from any non-terminal state. completed and cancelled are terminal.
const (
	StatusPending    PickupStatus = "pending"
	StatusAssigned   PickupStatus = "assigned"
	StatusInProgress PickupStatus = "in_progress"
	StatusCompleted  PickupStatus = "completed"
	StatusCancelled  PickupStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s PickupStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// WasteType classifies what is being collected.
type WasteType string

// Waste types.
const (
	WasteGeneral    WasteType = "general"
	WasteRecyclable WasteType = "recyclable"
	WasteHazardous  WasteType = "hazardous"
)

// TimeSlot is the requested time-of-day window.
type TimeSlot string

// Time slots.
const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// Base collection rates per kg, in FCFA.
var baseCosts = map[WasteType]float64{
	WasteGeneral:    1000,
	WasteRecyclable: 800,
	WasteHazardous:  2000,
}

// urgentSurcharge is the multiplier applied to urgent pickups.
const urgentSurcharge = 1.5

// Pickup is a single waste-collection request tied to one customer.
type Pickup struct {
	Base
	UserID    string   `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User     `gorm:"foreignKey:UserID" json:"-"`
	Address   string   `gorm:"not null" json:"address"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`

	Status     PickupStatus `gorm:"index;default:pending" json:"status"`
	WasteType  WasteType    `gorm:"index;not null" json:"waste_type"`
	PickupDate time.Time    `gorm:"index;not null" json:"pickup_date"`
	PickupTime TimeSlot     `gorm:"default:morning" json:"pickup_time"`

	EstimatedWeight *float64 `json:"estimated_weight,omitempty"`
	ActualWeight    *float64 `json:"actual_weight,omitempty"`
	UrgentPickup    bool     `gorm:"default:false" json:"urgent_pickup"`

	RecurringPickup     bool      `gorm:"default:false" json:"recurring_pickup"`
	RecurringFrequency  Frequency `json:"recurring_frequency,omitempty"`
	RecurringScheduleID *string   `gorm:"type:uuid;index" json:"recurring_schedule_id,omitempty"`

	Photos              []string `gorm:"serializer:json" json:"photos"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`

	AssignedDriverID *string `gorm:"type:uuid;index" json:"assigned_driver_id,omitempty"`
	AssignedDriver   *User   `gorm:"foreignKey:AssignedDriverID" json:"-"`

	EstimatedCost   int64  `json:"estimated_cost"`
	ActualCost      *int64 `json:"actual_cost,omitempty"`
	CompletionNotes string `json:"completion_notes,omitempty"`

	Rating   *int   `json:"rating,omitempty"`
	Feedback string `json:"feedback,omitempty"`

	StatusUpdates []StatusUpdate `gorm:"foreignKey:PickupID" json:"status_updates,omitempty"`
}

// CalculateEstimatedCost derives the collection cost from waste type,
// estimated weight (1 kg assumed when absent), and the urgent surcharge.
// The result is rounded to the nearest whole FCFA.
func (p *Pickup) CalculateEstimatedCost() int64 {
	base, ok := baseCosts[p.WasteType]
	if !ok {
		base = baseCosts[WasteGeneral]
	}

	weight := 1.0
	if p.EstimatedWeight != nil {
		weight = *p.EstimatedWeight
	}

	cost := base * weight
	if p.UrgentPickup {
		cost *= urgentSurcharge
	}

	return int64(math.Round(cost))
}

// StatusUpdate is an immutable entry in a pickup's lifecycle history.
// CreatedAt is the transition timestamp; the parent pickup's status
// always mirrors the most recently appended entry.
type StatusUpdate struct {
	Base
	PickupID  string       `gorm:"type:uuid;index;not null" json:"pickup_id"`
	Status    PickupStatus `gorm:"not null" json:"status"`
	Message   string       `json:"message"`
	Longitude *float64     `json:"longitude,omitempty"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Address   string       `json:"address,omitempty"`
	Photos    []string     `gorm:"serializer:json" json:"photos,omitempty"`
}
