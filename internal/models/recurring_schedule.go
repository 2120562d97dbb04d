package models

import "time"

// Frequency is the cadence of a recurring schedule.
type Frequency string

// Schedule frequencies.
const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// NeedsDayOfWeek reports whether the frequency is anchored to a weekday.
func (f Frequency) NeedsDayOfWeek() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly
}

// RecurringPickupSchedule is a template that generates future pickups on
// a cadence. DayOfWeek (0=Sunday..6) is meaningful for weekly/biweekly
// schedules, DayOfMonth (1-31) for monthly ones; exactly one of the two
// applies per frequency.
type RecurringPickupSchedule struct {
	Base
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Frequency  Frequency `gorm:"not null" json:"frequency"`
	DayOfWeek  *int      `json:"day_of_week,omitempty"`
	DayOfMonth *int      `json:"day_of_month,omitempty"`

	TimeSlot  TimeSlot  `gorm:"not null" json:"time_slot"`
	WasteType WasteType `gorm:"not null" json:"waste_type"`
	Address   string    `gorm:"not null" json:"address"`
	Longitude *float64  `json:"longitude,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`

	IsActive       bool      `gorm:"index;default:true" json:"is_active"`
	NextPickupDate time.Time `gorm:"index;not null" json:"next_pickup_date"`

	Notes               string `json:"notes,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// InitialNextPickupDate computes the first occurrence of the schedule
// relative to now. Weekly and biweekly schedules land on the next
// calendar occurrence of DayOfWeek on or after today; monthly schedules
// land on DayOfMonth of the current month, rolled into the following
// month once that day has started.
func (s *RecurringPickupSchedule) InitialNextPickupDate(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if s.Frequency.NeedsDayOfWeek() {
		target := 0
		if s.DayOfWeek != nil {
			target = *s.DayOfWeek
		}
		// offset is always in [0, 6], so today's weekday maps to today.
		offset := (target - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, offset)
	}

	day := 1
	if s.DayOfMonth != nil {
		day = *s.DayOfMonth
	}
	candidate := dateClamped(now.Year(), now.Month(), day, now.Location())
	if !candidate.After(today) {
		candidate = dateClamped(now.Year(), now.Month()+1, day, now.Location())
	}
	return candidate
}

// Advance returns the occurrence that follows NextPickupDate: one week
// for weekly, two for biweekly, one month (day clamped to month length)
// for monthly. Invoked by an external trigger each time a scheduled
// pickup is generated; the schedule never advances itself.
func (s *RecurringPickupSchedule) Advance() time.Time {
	d := s.NextPickupDate
	switch s.Frequency {
	case FrequencyWeekly:
		return d.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return d.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return dateClamped(d.Year(), d.Month()+1, d.Day(), d.Location())
	}
	return d
}

// dateClamped builds a date in the given month, clamping day to the
// month's length instead of letting time.Date normalize the overflow.
func dateClamped(year int, month time.Month, day int, loc *time.Location) time.Time {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	lastDay := firstOfNext.AddDate(0, 0, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
