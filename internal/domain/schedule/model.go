package schedule

import "time"

// HallSchedule stores a hall's whole week as one JSON column.
type HallSchedule struct {
	ID        int64        `json:"id" gorm:"primaryKey"`
	HallID    int64        `json:"hall_id" gorm:"uniqueIndex;not null"`
	Days      WeekSchedule `json:"days" gorm:"serializer:json;type:text;not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (HallSchedule) TableName() string {
	return "hall_schedules"
}

// View is what the API returns. IsDefault marks the unsaved fallback.
type View struct {
	HallID    int64        `json:"hall_id"`
	Days      WeekSchedule `json:"days"`
	IsDefault bool         `json:"is_default"`
}
