package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	ID          string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;size:100;uniqueIndex;not null" json:"name"`
	Capacity    int            `gorm:"column:capacity;not null" json:"capacity"`
	Location    *string        `gorm:"column:location;size:255" json:"location"`
	Description *string        `gorm:"column:description;type:text" json:"description"`
	Equipment   datatypes.JSON `gorm:"column:equipment" json:"equipment"` // danh sách thiết bị: ["projector", "whiteboard", ...]
	IsActive    bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Meetings []Meeting `gorm:"foreignKey:RoomID" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
