package services

import (
	"errors"
	"fmt"

	"github.com/vnkhanh/meeting-room-server/models"
)

// Lỗi nghiệp vụ của scheduler. Controller map các lỗi này ra HTTP status:
// not-found -> 404, permission -> 403, validation/conflict -> 400.
var (
	ErrRoomNotFound     = errors.New("không tìm thấy phòng họp")
	ErrMeetingNotFound  = errors.New("không tìm thấy cuộc họp")
	ErrUserNotFound     = errors.New("không tìm thấy người dùng")
	ErrPermissionDenied = errors.New("không có quyền thực hiện thao tác này")
)

// ValidationError: dữ liệu đầu vào sai (khoảng thời gian ngược, phòng ngưng
// hoạt động, thiếu trường bắt buộc...). Không bao giờ retry tự động.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError mang theo danh sách cuộc họp đang chiếm phòng để client
// hiển thị và đề xuất giờ khác.
type ConflictError struct {
	Conflicts []models.Meeting
}

func (e *ConflictError) Error() string {
	return "phòng họp đã được đặt trong khung giờ này"
}
