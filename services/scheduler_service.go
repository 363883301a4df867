package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/repository"
)

// CalendarSync đồng bộ cuộc họp lên lịch ngoài (Google Calendar). Mọi lỗi
// từ collaborator này chỉ được log, không bao giờ làm hỏng booking.
type CalendarSync interface {
	CreateEvent(organizer *models.User, m *models.Meeting, room *models.Room, attendees []models.User) (eventID string, err error)
	UpdateEvent(organizer *models.User, m *models.Meeting, room *models.Room, attendees []models.User) error
	DeleteEvent(organizer *models.User, eventID string) error
}

// Mailer gửi email thông báo cho người tham gia (best-effort).
type Mailer interface {
	SendMeetingInvitation(to string, data MeetingMailData) error
	SendMeetingUpdate(to string, data MeetingMailData) error
	SendMeetingCancellation(to string, data MeetingMailData) error
	SendMinutesNotification(to string, data MeetingMailData, minutesURL string) error
}

// SchedulerService là trung tâm nghiệp vụ đặt phòng: quyết định phòng trống,
// tạo/sửa/hủy cuộc họp và chặn xóa phòng còn lịch.
//
// Kiểm tra trống + ghi booking được serialize theo từng phòng bằng khóa
// roomLocks, đóng race check-then-act giữa hai request đặt trùng giờ.
type SchedulerService struct {
	meetings repository.MeetingRepository
	rooms    repository.RoomRepository
	users    repository.UserRepository

	calendar CalendarSync // có thể nil khi chưa cấu hình Google
	mailer   Mailer       // có thể nil khi chưa cấu hình SMTP

	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewSchedulerService(
	meetings repository.MeetingRepository,
	rooms repository.RoomRepository,
	users repository.UserRepository,
	calendar CalendarSync,
	mailer Mailer,
) *SchedulerService {
	return &SchedulerService{
		meetings:  meetings,
		rooms:     rooms,
		users:     users,
		calendar:  calendar,
		mailer:    mailer,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

// lockRoom lấy (hoặc tạo) mutex của phòng và giữ nó; caller defer unlock.
func (s *SchedulerService) lockRoom(roomID string) func() {
	s.mu.Lock()
	l, ok := s.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[roomID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Availability là kết quả kiểm tra phòng trống.
type Availability struct {
	IsAvailable bool             `json:"isAvailable"`
	Conflicts   []models.Meeting `json:"conflictingMeetings"`
}

// CheckAvailability quét các cuộc họp active của phòng đụng khoảng
// [start, end] (biên đóng — chạm biên cũng tính trùng), bỏ qua excludeID
// khi đang dời chính cuộc họp đó. Thuần đọc, không side effect, gọi lại
// với cùng tham số cho cùng kết quả.
func (s *SchedulerService) CheckAvailability(roomID string, start, end time.Time, excludeID string) (*Availability, error) {
	if roomID == "" {
		return nil, validationf("thiếu thông tin phòng họp")
	}
	if !end.After(start) {
		return nil, validationf("thời gian kết thúc phải sau thời gian bắt đầu")
	}
	if _, err := s.rooms.FindByID(roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	conflicts, err := s.meetings.FindConflicting(roomID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	return &Availability{
		IsAvailable: len(conflicts) == 0,
		Conflicts:   conflicts,
	}, nil
}

type CreateMeetingInput struct {
	Title          string
	Description    *string
	RoomID         string
	OrganizerID    string
	SecretaryID    *string
	StartTime      time.Time
	EndTime        time.Time
	ParticipantIDs []string
}

// CreateMeeting kiểm tra phòng trống rồi ghi cuộc họp với status=scheduled.
// Organizer luôn có mặt trong danh sách tham gia (accepted), thư ký và các
// participant còn lại ở needsAction; id trùng organizer/thư ký bị loại.
// Đồng bộ calendar + gửi mail chạy nền sau khi ghi thành công.
func (s *SchedulerService) CreateMeeting(in CreateMeetingInput) (*models.Meeting, error) {
	if in.Title == "" {
		return nil, validationf("thiếu tiêu đề cuộc họp")
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, validationf("thời gian kết thúc phải sau thời gian bắt đầu")
	}

	room, err := s.rooms.FindByID(in.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, validationf("phòng họp %s đã ngưng hoạt động", room.Name)
	}

	organizer, err := s.users.FindByID(in.OrganizerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.SecretaryID != nil && *in.SecretaryID != "" {
		if _, err := s.users.FindByID(*in.SecretaryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	// Giữ khóa phòng suốt đoạn kiểm tra + ghi
	unlock := s.lockRoom(in.RoomID)
	defer unlock()

	conflicts, err := s.meetings.FindConflicting(in.RoomID, in.StartTime, in.EndTime, "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	secretaryID := in.SecretaryID
	if secretaryID != nil && *secretaryID == "" {
		secretaryID = nil
	}

	meeting := &models.Meeting{
		Title:       in.Title,
		Description: in.Description,
		RoomID:      in.RoomID,
		OrganizerID: in.OrganizerID,
		SecretaryID: secretaryID,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      models.MeetingScheduled,
	}
	participants := buildParticipants(in.OrganizerID, secretaryID, in.ParticipantIDs)

	if err := s.meetings.Create(meeting, participants); err != nil {
		return nil, err
	}

	go s.afterMeetingCreated(meeting.ID, room, organizer)

	return s.meetings.FindByIDFull(meeting.ID)
}

// buildParticipants dựng các hàng participant cho một cuộc họp mới,
// loại trùng với organizer/thư ký và trong chính danh sách.
func buildParticipants(organizerID string, secretaryID *string, participantIDs []string) []models.MeetingParticipant {
	rows := []models.MeetingParticipant{
		{UserID: organizerID, Role: models.RoleOrganizer, ResponseStatus: models.ResponseAccepted},
	}
	seen := map[string]bool{organizerID: true}

	if secretaryID != nil && !seen[*secretaryID] {
		rows = append(rows, models.MeetingParticipant{
			UserID:         *secretaryID,
			Role:           models.RoleSecretary,
			ResponseStatus: models.ResponseNeedsAction,
		})
		seen[*secretaryID] = true
	}
	for _, id := range participantIDs {
		if id == "" || seen[id] {
			continue
		}
		rows = append(rows, models.MeetingParticipant{
			UserID:         id,
			Role:           models.RoleParticipant,
			ResponseStatus: models.ResponseNeedsAction,
		})
		seen[id] = true
	}
	return rows
}

type UpdateMeetingInput struct {
	Title          *string
	Description    *string
	RoomID         *string
	SecretaryID    *string // con trỏ tới chuỗi rỗng = bỏ thư ký
	StartTime      *time.Time
	EndTime        *time.Time
	Status         *models.MeetingStatus
	ParticipantIDs []string // nil = giữ nguyên, slice rỗng = xóa hết participant
}

// UpdateMeeting áp dụng partial update. Nếu phòng hoặc giờ thay đổi thì
// kiểm tra lại phòng trống với excludeID = chính cuộc họp này.
// Chỉ organizer hoặc thư ký được sửa.
func (s *SchedulerService) UpdateMeeting(meetingID, actorID string, in UpdateMeetingInput) (*models.Meeting, error) {
	m, err := s.meetings.FindByID(meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	isOrganizer := m.OrganizerID == actorID
	isSecretary := m.SecretaryID != nil && *m.SecretaryID == actorID
	if !isOrganizer && !isSecretary {
		return nil, ErrPermissionDenied
	}

	newRoomID := m.RoomID
	if in.RoomID != nil && *in.RoomID != "" {
		newRoomID = *in.RoomID
	}
	newStart := m.StartTime
	if in.StartTime != nil {
		newStart = *in.StartTime
	}
	newEnd := m.EndTime
	if in.EndTime != nil {
		newEnd = *in.EndTime
	}
	if !newEnd.After(newStart) {
		return nil, validationf("thời gian kết thúc phải sau thời gian bắt đầu")
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, validationf("trạng thái %q không hợp lệ", string(*in.Status))
		}
		if !m.Status.CanTransitionTo(*in.Status) {
			return nil, validationf("không thể chuyển trạng thái từ %s sang %s", m.Status, *in.Status)
		}
	}

	timeOrRoomChanged := newRoomID != m.RoomID ||
		!newStart.Equal(m.StartTime) ||
		!newEnd.Equal(m.EndTime)

	if timeOrRoomChanged {
		room, err := s.rooms.FindByID(newRoomID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		if !room.IsActive {
			return nil, validationf("phòng họp %s đã ngưng hoạt động", room.Name)
		}

		unlock := s.lockRoom(newRoomID)
		conflicts, err := s.meetings.FindConflicting(newRoomID, newStart, newEnd, m.ID)
		if err != nil {
			unlock()
			return nil, err
		}
		if len(conflicts) > 0 {
			unlock()
			return nil, &ConflictError{Conflicts: conflicts}
		}
		defer unlock()
	}

	if in.Title != nil && *in.Title != "" {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if in.SecretaryID != nil {
		if *in.SecretaryID == "" {
			m.SecretaryID = nil
		} else {
			if _, err := s.users.FindByID(*in.SecretaryID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, ErrUserNotFound
				}
				return nil, err
			}
			m.SecretaryID = in.SecretaryID
		}
	}
	m.RoomID = newRoomID
	m.StartTime = newStart
	m.EndTime = newEnd
	if in.Status != nil {
		m.Status = *in.Status
	}

	if err := s.meetings.Update(m); err != nil {
		return nil, err
	}

	if in.ParticipantIDs != nil {
		rows := make([]models.MeetingParticipant, 0, len(in.ParticipantIDs))
		seen := map[string]bool{m.OrganizerID: true}
		if m.SecretaryID != nil {
			seen[*m.SecretaryID] = true
		}
		for _, id := range in.ParticipantIDs {
			if id == "" || seen[id] {
				continue
			}
			rows = append(rows, models.MeetingParticipant{
				UserID:         id,
				Role:           models.RoleParticipant,
				ResponseStatus: models.ResponseNeedsAction,
			})
			seen[id] = true
		}
		if err := s.meetings.ReplaceParticipants(m.ID, rows); err != nil {
			return nil, err
		}
	}

	go s.afterMeetingUpdated(m.ID)

	return s.meetings.FindByIDFull(m.ID)
}

// CancelMeeting hủy cuộc họp: chỉ organizer được hủy. Cuộc họp bị xóa hẳn
// nên khung giờ cũ lập tức trống trở lại cho phòng.
func (s *SchedulerService) CancelMeeting(meetingID, actorID string) error {
	m, err := s.meetings.FindByIDFull(meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}
	if m.OrganizerID != actorID {
		return ErrPermissionDenied
	}

	if err := s.meetings.Delete(m.ID); err != nil {
		return err
	}

	go s.afterMeetingCancelled(m)

	return nil
}

// EnsureRoomDeletable chặn xóa phòng còn cuộc họp active trong tương lai
// (start_time >= now, status scheduled/ongoing).
func (s *SchedulerService) EnsureRoomDeletable(roomID string, now time.Time) error {
	count, err := s.meetings.CountFutureActive(roomID, now)
	if err != nil {
		return err
	}
	if count > 0 {
		return validationf("không thể xóa phòng họp có lịch hẹn trong tương lai")
	}
	return nil
}

// AttachMinutes gắn URL biên bản vào cuộc họp; chỉ thư ký được upload.
func (s *SchedulerService) AttachMinutes(meetingID, actorID, fileURL string) (*models.Meeting, error) {
	m, err := s.meetings.FindByID(meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	if m.SecretaryID == nil || *m.SecretaryID != actorID {
		return nil, ErrPermissionDenied
	}

	m.MinutesFileURL = &fileURL
	if err := s.meetings.Update(m); err != nil {
		return nil, err
	}

	go s.afterMinutesUploaded(m.ID, fileURL)

	return s.meetings.FindByIDFull(m.ID)
}

// ---- side effect chạy nền sau khi booking đã ghi xong ----

// attendeeUsers load user của toàn bộ participant trong cuộc họp.
func (s *SchedulerService) attendeeUsers(m *models.Meeting) []models.User {
	ids := make([]string, 0, len(m.Participants))
	for _, p := range m.Participants {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.FindByIDs(ids)
	if err != nil {
		log.Printf("[scheduler] không load được danh sách người tham gia meeting %s: %v", m.ID, err)
		return nil
	}
	return users
}

func (s *SchedulerService) mailData(m *models.Meeting, roomName, organizerName, secretaryName string) MeetingMailData {
	desc := ""
	if m.Description != nil {
		desc = *m.Description
	}
	return MeetingMailData{
		Title:         m.Title,
		Description:   desc,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		RoomName:      roomName,
		OrganizerName: organizerName,
		SecretaryName: secretaryName,
	}
}

func (s *SchedulerService) afterMeetingCreated(meetingID string, room *models.Room, organizer *models.User) {
	m, err := s.meetings.FindByIDFull(meetingID)
	if err != nil {
		log.Printf("[scheduler] không load được meeting %s sau khi tạo: %v", meetingID, err)
		return
	}
	attendees := s.attendeeUsers(m)

	if s.calendar != nil && organizer.HasGoogleTokens() {
		eventID, err := s.calendar.CreateEvent(organizer, m, room, attendees)
		if err != nil {
			log.Printf("[scheduler] tạo event Google Calendar thất bại cho meeting %s: %v", m.ID, err)
		} else {
			m.GoogleCalendarEventID = &eventID
			if err := s.meetings.Update(m); err != nil {
				log.Printf("[scheduler] không lưu được event id cho meeting %s: %v", m.ID, err)
			}
		}
	}

	if s.mailer != nil {
		secretaryName := ""
		if m.Secretary != nil {
			secretaryName = m.Secretary.Name
		}
		data := s.mailData(m, room.Name, organizer.Name, secretaryName)
		for _, u := range attendees {
			if u.ID == organizer.ID {
				continue
			}
			if err := s.mailer.SendMeetingInvitation(u.Email, data); err != nil {
				log.Printf("[scheduler] gửi mail mời họp tới %s thất bại: %v", u.Email, err)
			}
		}
	}
}

func (s *SchedulerService) afterMeetingUpdated(meetingID string) {
	m, err := s.meetings.FindByIDFull(meetingID)
	if err != nil {
		log.Printf("[scheduler] không load được meeting %s sau khi cập nhật: %v", meetingID, err)
		return
	}
	if m.Organizer == nil || m.Room == nil {
		return
	}
	attendees := s.attendeeUsers(m)

	if s.calendar != nil && m.GoogleCalendarEventID != nil && m.Organizer.HasGoogleTokens() {
		if err := s.calendar.UpdateEvent(m.Organizer, m, m.Room, attendees); err != nil {
			log.Printf("[scheduler] cập nhật event Google Calendar thất bại cho meeting %s: %v", m.ID, err)
		}
	}

	if s.mailer != nil {
		secretaryName := ""
		if m.Secretary != nil {
			secretaryName = m.Secretary.Name
		}
		data := s.mailData(m, m.Room.Name, m.Organizer.Name, secretaryName)
		for _, u := range attendees {
			if u.ID == m.OrganizerID {
				continue
			}
			if err := s.mailer.SendMeetingUpdate(u.Email, data); err != nil {
				log.Printf("[scheduler] gửi mail cập nhật tới %s thất bại: %v", u.Email, err)
			}
		}
	}
}

// afterMeetingCancelled nhận bản ghi đã load đầy đủ TRƯỚC khi xóa.
func (s *SchedulerService) afterMeetingCancelled(m *models.Meeting) {
	if m.Organizer == nil {
		return
	}

	if s.calendar != nil && m.GoogleCalendarEventID != nil && m.Organizer.HasGoogleTokens() {
		if err := s.calendar.DeleteEvent(m.Organizer, *m.GoogleCalendarEventID); err != nil {
			log.Printf("[scheduler] xóa event Google Calendar thất bại cho meeting %s: %v", m.ID, err)
		}
	}

	if s.mailer != nil {
		data := MeetingMailData{
			Title:       m.Title,
			CancelledBy: m.Organizer.Name,
		}
		for _, p := range m.Participants {
			if p.User == nil || p.UserID == m.OrganizerID {
				continue
			}
			if err := s.mailer.SendMeetingCancellation(p.User.Email, data); err != nil {
				log.Printf("[scheduler] gửi mail hủy họp tới %s thất bại: %v", p.User.Email, err)
			}
		}
	}
}

func (s *SchedulerService) afterMinutesUploaded(meetingID, fileURL string) {
	if s.mailer == nil {
		return
	}
	m, err := s.meetings.FindByIDFull(meetingID)
	if err != nil || m.Room == nil || m.Organizer == nil {
		return
	}
	secretaryName := ""
	if m.Secretary != nil {
		secretaryName = m.Secretary.Name
	}
	data := s.mailData(m, m.Room.Name, m.Organizer.Name, secretaryName)
	for _, p := range m.Participants {
		if p.User == nil {
			continue
		}
		if err := s.mailer.SendMinutesNotification(p.User.Email, data, fileURL); err != nil {
			log.Printf("[scheduler] gửi mail biên bản tới %s thất bại: %v", p.User.Email, err)
		}
	}
}
