package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"column:name;size:100;not null" json:"name"`
	Email    string `gorm:"column:email;size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;size:255" json:"-"` // chỉ lưu hash, rỗng nếu chỉ đăng nhập Google
	Role     string `gorm:"column:role;size:20;default:'user'" json:"role"` // admin | user
	Avatar   string `gorm:"column:avatar;size:500" json:"avatar"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"is_active"`

	// Liên kết tài khoản Google (token không trả về JSON)
	GoogleID           *string `gorm:"column:google_id;size:100;index" json:"-"`
	GoogleAccessToken  *string `gorm:"column:google_access_token;type:text" json:"-"`
	GoogleRefreshToken *string `gorm:"column:google_refresh_token;type:text" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasGoogleTokens: user đã liên kết Google Calendar hay chưa
func (u *User) HasGoogleTokens() bool {
	return u.GoogleAccessToken != nil && *u.GoogleAccessToken != "" &&
		u.GoogleRefreshToken != nil && *u.GoogleRefreshToken != ""
}
