package models

import (
	"time"

	"gorm.io/gorm"
)

type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "admin"
	MemberRoleModerator MemberRole = "moderator"
	MemberRoleMember    MemberRole = "member"
)

type Member struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Email     string         `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone"`
	GroupID   *uint64        `gorm:"index" json:"group_id"`
	Role      MemberRole     `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time      `json:"joined_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations. GroupID stays nullable so deleting a group detaches
	// members instead of deleting them.
	Group         *Group         `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Registrations []Registration `gorm:"foreignKey:MemberID" json:"-"`
}
