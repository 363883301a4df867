package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantRole string

const (
	RoleOrganizer   ParticipantRole = "organizer"
	RoleSecretary   ParticipantRole = "secretary"
	RoleParticipant ParticipantRole = "participant"
)

func (r ParticipantRole) Valid() bool {
	switch r {
	case RoleOrganizer, RoleSecretary, RoleParticipant:
		return true
	}
	return false
}

type ResponseStatus string

const (
	ResponseAccepted    ResponseStatus = "accepted"
	ResponseDeclined    ResponseStatus = "declined"
	ResponseTentative   ResponseStatus = "tentative"
	ResponseNeedsAction ResponseStatus = "needsAction"
)

func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseAccepted, ResponseDeclined, ResponseTentative, ResponseNeedsAction:
		return true
	}
	return false
}

// MeetingParticipant nối meeting với user, mỗi user chỉ xuất hiện một lần
// trong một cuộc họp (unique index meeting_id + user_id).
type MeetingParticipant struct {
	ID             string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MeetingID      string          `gorm:"column:meeting_id;type:uuid;not null;uniqueIndex:uniq_meeting_user" json:"meeting_id"`
	UserID         string          `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_meeting_user" json:"user_id"`
	Role           ParticipantRole `gorm:"column:role;size:20;default:'participant'" json:"role"`
	ResponseStatus ResponseStatus  `gorm:"column:response_status;size:20;default:'needsAction'" json:"response_status"`
	Notified       bool            `gorm:"column:notified;default:false" json:"notified"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}

func (p *MeetingParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
