package models

import (
	"time"

	"gorm.io/gorm"
)

type Gathering struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Date        time.Time      `gorm:"not null" json:"date"`
	Location    string         `gorm:"type:varchar(255);not null" json:"location"`
	Quota       *int           `json:"quota"` // nil = unlimited
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Registrations []Registration `gorm:"foreignKey:GatheringID" json:"registrations,omitempty"`
}
