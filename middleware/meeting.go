package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/meeting-room-server/config"
	"github.com/vnkhanh/meeting-room-server/models"
)

// loadMeeting nạp meeting theo param :id, trả nil nếu đã abort.
func loadMeeting(c *gin.Context) *models.Meeting {
	id := c.Param("id")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return nil
	}

	var m models.Meeting
	if err := config.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy cuộc họp"})
			return nil
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể đọc cuộc họp"})
		return nil
	}
	return &m
}

// CheckMeetingEditor: nạp meeting vào context & chỉ cho organizer hoặc thư ký đi tiếp.
func CheckMeetingEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		m := loadMeeting(c)
		if m == nil {
			return
		}

		isOrganizer := m.OrganizerID == u.ID
		isSecretary := m.SecretaryID != nil && *m.SecretaryID == u.ID
		if !isOrganizer && !isSecretary {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Bạn không có quyền cập nhật cuộc họp này"})
			return
		}

		c.Set(CtxMeeting, *m)
		c.Next()
	}
}

// CheckMeetingOrganizer: chỉ người tạo cuộc họp được đi tiếp (dùng cho hủy họp).
func CheckMeetingOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		m := loadMeeting(c)
		if m == nil {
			return
		}

		if m.OrganizerID != u.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Chỉ người tạo mới có thể xóa cuộc họp"})
			return
		}

		c.Set(CtxMeeting, *m)
		c.Next()
	}
}

// CheckMeetingSecretary: chỉ thư ký được đi tiếp (upload biên bản).
func CheckMeetingSecretary() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		m := loadMeeting(c)
		if m == nil {
			return
		}

		if m.SecretaryID == nil || *m.SecretaryID != u.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Chỉ thư ký mới có thể upload biên bản"})
			return
		}

		c.Set(CtxMeeting, *m)
		c.Next()
	}
}
