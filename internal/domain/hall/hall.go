package hall

import "time"

// Hall is a rentable study hall. SeatCount mirrors the number of rows in
// seats for the hall and is rewritten whenever the layout changes.
type Hall struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	OwnerID   int64     `json:"owner_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	SeatCount int       `json:"seat_count" gorm:"not null;default:0"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hall) TableName() string {
	return "halls"
}
