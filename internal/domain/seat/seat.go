package seat

import "time"

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusMaintenance Status = "MAINTENANCE"
	StatusBooked      Status = "BOOKED"
	StatusLocked      Status = "LOCKED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusBooked, StatusLocked:
		return true
	}
	return false
}

type MaintenanceReason string

const (
	ReasonCleaning   MaintenanceReason = "Cleaning"
	ReasonRepair     MaintenanceReason = "Repair"
	ReasonInspection MaintenanceReason = "Inspection"
	ReasonOther      MaintenanceReason = "Other"
)

func (r MaintenanceReason) Valid() bool {
	switch r {
	case ReasonCleaning, ReasonRepair, ReasonInspection, ReasonOther:
		return true
	}
	return false
}

type Seat struct {
	ID                 int64              `json:"id" gorm:"primaryKey"`
	HallID             int64              `json:"hall_id" gorm:"not null;uniqueIndex:idx_seats_hall_number,priority:1"`
	SeatNumber         string             `json:"seat_number" gorm:"size:32;not null;uniqueIndex:idx_seats_hall_number,priority:2"`
	X                  int                `json:"x" gorm:"not null"`
	Y                  int                `json:"y" gorm:"not null"`
	Status             Status             `json:"status" gorm:"size:16;not null"`
	CustomPrice        *float64           `json:"custom_price,omitempty"`
	IsLadiesOnly       bool               `json:"is_ladies_only" gorm:"not null"`
	MaintenanceReason  *MaintenanceReason `json:"maintenance_reason,omitempty" gorm:"size:16"`
	MaintenanceStarted *time.Time         `json:"maintenance_started,omitempty"`
	MaintenanceUntil   *time.Time         `json:"maintenance_until,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (Seat) TableName() string {
	return "seats"
}

// SeatSpec is one seat of a layout submitted for replacement.
type SeatSpec struct {
	SeatNumber        string            `json:"seat_number" validate:"required,max=32"`
	X                 int               `json:"x" validate:"gte=0"`
	Y                 int               `json:"y" validate:"gte=0"`
	Status            Status            `json:"status,omitempty"`
	CustomPrice       *float64          `json:"custom_price,omitempty" validate:"omitempty,gt=0"`
	IsLadiesOnly      bool              `json:"is_ladies_only"`
	MaintenanceReason MaintenanceReason `json:"maintenance_reason,omitempty"`
}

// Layout is the full seat set of one hall.
type Layout struct {
	HallID    int64  `json:"hall_id"`
	Seats     []Seat `json:"seats"`
	SeatCount int    `json:"seat_count"`
}
