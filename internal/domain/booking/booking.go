package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ConfirmedStatuses are the terminal-confirmed states counted by reports.
var ConfirmedStatuses = []Status{StatusConfirmed, StatusCompleted}

func (s Status) Confirmed() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// Booking is a row of the bookings table. Rows are written by the booking
// workflow; this service only reads them.
type Booking struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	HallID     int64     `json:"hall_id" gorm:"not null;index:idx_bookings_hall_start,priority:1"`
	SeatID     int64     `json:"seat_id" gorm:"not null;index"`
	UserID     int64     `json:"user_id" gorm:"not null"`
	StartTime  time.Time `json:"start_time" gorm:"not null;index:idx_bookings_hall_start,priority:2"`
	EndTime    time.Time `json:"end_time" gorm:"not null"`
	TotalPrice float64   `json:"total_price" gorm:"not null"`
	Status     Status    `json:"status" gorm:"size:20;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Interval is the part of a booking the reports look at.
type Interval struct {
	SeatID    int64     `json:"seat_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    Status    `json:"status"`
}

// Hours is the booked duration in fractional hours, or 0 when end is not
// after start.
func (i Interval) Hours() float64 {
	d := i.EndTime.Sub(i.StartTime)
	if d <= 0 {
		return 0
	}
	return d.Hours()
}
