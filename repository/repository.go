package repository

import (
	"errors"
	"time"

	"github.com/vnkhanh/meeting-room-server/models"
)

// ErrNotFound: bản ghi không tồn tại. Các implementation phải map lỗi
// not-found của storage về sentinel này để tầng service so sánh bằng errors.Is.
var ErrNotFound = errors.New("repository: record not found")

// MeetingFilter gom các điều kiện lọc danh sách cuộc họp.
type MeetingFilter struct {
	RoomID        string
	Status        models.MeetingStatus
	StartFrom     *time.Time
	StartTo       *time.Time
	ParticipantID string // chỉ lấy cuộc họp user này tham gia
}

// MeetingRepository trừu tượng hóa storage cho meeting + participant,
// cho phép service test bằng bản in-memory.
type MeetingRepository interface {
	FindByID(id string) (*models.Meeting, error)
	// FindByIDFull preload room, organizer, secretary, participants (kèm user).
	FindByIDFull(id string) (*models.Meeting, error)
	// FindConflicting trả về các cuộc họp active (scheduled/ongoing) của phòng
	// đụng khoảng [start, end] theo quy tắc biên đóng, bỏ qua excludeID nếu khác rỗng.
	FindConflicting(roomID string, start, end time.Time, excludeID string) ([]models.Meeting, error)
	// CountFutureActive đếm cuộc họp active có start_time >= now của phòng.
	CountFutureActive(roomID string, now time.Time) (int64, error)
	List(f MeetingFilter) ([]models.Meeting, error)
	// Create ghi meeting + toàn bộ participant trong một transaction.
	Create(m *models.Meeting, participants []models.MeetingParticipant) error
	Update(m *models.Meeting) error
	// ReplaceParticipants xóa toàn bộ hàng role=participant của cuộc họp và
	// tạo lại theo rows (organizer/secretary giữ nguyên), trong một transaction.
	ReplaceParticipants(meetingID string, rows []models.MeetingParticipant) error
	// Delete xóa cứng meeting cùng participant của nó.
	Delete(id string) error
}

type RoomRepository interface {
	FindByID(id string) (*models.Room, error)
	FindByName(name string) (*models.Room, error)
	List(isActive *bool) ([]models.Room, error)
	Create(r *models.Room) error
	Save(r *models.Room) error
	Delete(id string) error
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByIDs(ids []string) ([]models.User, error)
	ListActive() ([]models.User, error)
	Create(u *models.User) error
	Save(u *models.User) error
}
