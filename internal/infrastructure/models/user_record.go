package models

import "time"

type UserRecord struct {
	Address     string `gorm:"type:varchar(64);primaryKey"`
	DisplayName string `gorm:"type:varchar(100);not null;default:'Unnamed'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserRecord) TableName() string {
	return "user_records"
}
