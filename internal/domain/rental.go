package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// RentalStatuses lists every accepted status in display order.
var RentalStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusActive,
	RentalStatusCompleted,
	RentalStatusCancelled,
}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusActive, RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// Blocking reports whether a rental in this status still reserves its car
// for the booked dates. Completed and cancelled rentals release the slot.
func (s RentalStatus) Blocking() bool {
	return s == RentalStatusPending || s == RentalStatusActive
}

type Rental struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	CarID      int64           `json:"car_id"`
	StartDate  Date            `json:"start_date"`
	EndDate    Date            `json:"end_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     RentalStatus    `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Overlaps compares the two booking periods as half-open ranges, so a
// rental ending on the day another one starts does not overlap it.
func (r *Rental) Overlaps(other *Rental) bool {
	return r.StartDate.Before(other.EndDate) && other.StartDate.Before(r.EndDate)
}

// ConflictsWith reports whether r cannot coexist with other: same car,
// different rental, both blocking and overlapping periods.
func (r *Rental) ConflictsWith(other *Rental) bool {
	if r.ID != 0 && r.ID == other.ID {
		return false
	}
	if r.CarID != other.CarID {
		return false
	}
	if !r.Status.Blocking() || !other.Status.Blocking() {
		return false
	}
	return r.Overlaps(other)
}
