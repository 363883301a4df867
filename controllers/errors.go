package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/meeting-room-server/services"
)

// respondServiceError map lỗi nghiệp vụ của scheduler sang HTTP status.
// Conflict trả 400 kèm danh sách cuộc họp đang chiếm phòng.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var cErr *services.ConflictError

	switch {
	case errors.As(err, &cErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":             false,
			"message":             "Phòng họp đã được đặt trong khung giờ này",
			"conflictingMeetings": cErr.Conflicts,
		})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": vErr.Message})
	case errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy phòng họp"})
	case errors.Is(err, services.ErrMeetingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy cuộc họp"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy người dùng"})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Bạn không có quyền thực hiện thao tác này"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi hệ thống"})
	}
}
