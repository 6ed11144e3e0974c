package vacation

import "time"

type Vacation struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           string    `gorm:"column:user_id;type:varchar(64);not null;index"`
	VacationTypeID   int64     `gorm:"column:vacation_type_id;not null"`
	VacationStatusID int64     `gorm:"column:vacation_status_id;not null"`
	StartDate        time.Time `gorm:"column:start_date;not null"`
	EndDate          time.Time `gorm:"column:end_date;not null"`
	Comment          string    `gorm:"column:comment"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is written by the service, never by gorm's clock.
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Vacation) TableName() string {
	return "vacations"
}
