package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MeetingStatus là trạng thái cuộc họp. Chỉ scheduled và ongoing được tính
// khi kiểm tra trùng lịch phòng.
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingOngoing   MeetingStatus = "ongoing"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

// ActiveMeetingStatuses dùng cho các query kiểm tra trùng lịch.
var ActiveMeetingStatuses = []MeetingStatus{MeetingScheduled, MeetingOngoing}

func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingScheduled, MeetingOngoing, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// Active: cuộc họp còn chiếm phòng hay không
func (s MeetingStatus) Active() bool {
	return s == MeetingScheduled || s == MeetingOngoing
}

// CanTransitionTo kiểm tra chuyển trạng thái hợp lệ:
// scheduled -> ongoing -> completed, scheduled -> cancelled.
// completed và cancelled là trạng thái cuối.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case MeetingScheduled:
		return next == MeetingOngoing || next == MeetingCompleted || next == MeetingCancelled
	case MeetingOngoing:
		return next == MeetingCompleted
	}
	return false
}

type Meeting struct {
	ID          string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"column:title;size:255;not null" json:"title"`
	Description *string       `gorm:"column:description;type:text" json:"description"`
	RoomID      string        `gorm:"column:room_id;type:uuid;not null;index:idx_meetings_room_time" json:"room_id"`
	OrganizerID string        `gorm:"column:organizer_id;type:uuid;not null" json:"organizer_id"`
	SecretaryID *string       `gorm:"column:secretary_id;type:uuid" json:"secretary_id"`
	StartTime   time.Time     `gorm:"column:start_time;not null;index:idx_meetings_room_time" json:"start_time"`
	EndTime     time.Time     `gorm:"column:end_time;not null;index:idx_meetings_room_time" json:"end_time"`
	Status      MeetingStatus `gorm:"column:status;size:20;default:'scheduled'" json:"status"`

	GoogleCalendarEventID *string        `gorm:"column:google_calendar_event_id;size:255" json:"google_calendar_event_id,omitempty"`
	MinutesFileURL        *string        `gorm:"column:minutes_file_url;size:500" json:"minutes_file_url,omitempty"`
	DocumentsURLs         datatypes.JSON `gorm:"column:documents_urls" json:"documents_urls,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Room         *Room                `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Organizer    *User                `gorm:"foreignKey:OrganizerID;references:ID" json:"organizer,omitempty"`
	Secretary    *User                `gorm:"foreignKey:SecretaryID;references:ID" json:"secretary,omitempty"`
	Participants []MeetingParticipant `gorm:"foreignKey:MeetingID" json:"participants,omitempty"`
}

func (Meeting) TableName() string {
	return "meetings"
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Overlaps kiểm tra cuộc họp có đụng khoảng [start, end] đang xin đặt không.
// Quy tắc biên đóng (giữ nguyên hành vi gốc): chạm biên cũng tính là trùng,
// ví dụ cuộc họp kết thúc 11:00 vẫn chặn yêu cầu bắt đầu 11:00.
func (m *Meeting) Overlaps(start, end time.Time) bool {
	// start của m nằm trong [start, end]
	if !m.StartTime.Before(start) && !m.StartTime.After(end) {
		return true
	}
	// end của m nằm trong [start, end]
	if !m.EndTime.Before(start) && !m.EndTime.After(end) {
		return true
	}
	// m bao trùm toàn bộ [start, end]
	if !m.StartTime.After(start) && !m.EndTime.Before(end) {
		return true
	}
	return false
}
