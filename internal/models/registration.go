package models

import (
	"time"

	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// ValidRegistrationStatus reports whether s is one of the known statuses.
func ValidRegistrationStatus(s RegistrationStatus) bool {
	switch s {
	case RegistrationStatusConfirmed, RegistrationStatusPending, RegistrationStatusCancelled:
		return true
	}
	return false
}

// Registration links one member to one gathering. The composite unique
// index guarantees at most one row per (gathering, member) pair; a
// cancelled registration is revived in place on re-admission rather
// than inserted again, so the index stays strict.
type Registration struct {
	ID               uint64             `gorm:"primarykey" json:"id"`
	GatheringID      uint64             `gorm:"not null;uniqueIndex:uidx_registrations_gathering_member" json:"gathering_id"`
	MemberID         uint64             `gorm:"not null;uniqueIndex:uidx_registrations_gathering_member" json:"member_id"`
	Status           RegistrationStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	ConfirmationCode string             `gorm:"type:varchar(36);not null" json:"confirmation_code"`
	RegisteredAt     time.Time          `json:"registered_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	Gathering Gathering `gorm:"foreignKey:GatheringID" json:"gathering,omitempty"`
	Member    Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
