package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/meeting-room-server/models"
)

type gormMeetingRepo struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &gormMeetingRepo{db: db}
}

func (r *gormMeetingRepo) FindByID(id string) (*models.Meeting, error) {
	var m models.Meeting
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormMeetingRepo) FindByIDFull(id string) (*models.Meeting, error) {
	var m models.Meeting
	err := r.db.
		Preload("Room").
		Preload("Organizer").
		Preload("Secretary").
		Preload("Participants").
		Preload("Participants.User").
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindConflicting giữ đúng quy tắc biên đóng của hệ thống cũ:
// BETWEEN trên start_time hoặc end_time (bao gồm hai đầu), hoặc cuộc họp
// bao trùm toàn bộ khoảng xin đặt.
func (r *gormMeetingRepo) FindConflicting(roomID string, start, end time.Time, excludeID string) ([]models.Meeting, error) {
	q := r.db.
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveMeetingStatuses).
		Where(
			"((start_time BETWEEN ? AND ?) OR (end_time BETWEEN ? AND ?) OR (start_time <= ? AND end_time >= ?))",
			start, end, start, end, start, end,
		)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Meeting
	if err := q.Order("start_time asc").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *gormMeetingRepo) CountFutureActive(roomID string, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Meeting{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveMeetingStatuses).
		Where("start_time >= ?", now).
		Count(&count).Error
	return count, err
}

func (r *gormMeetingRepo) List(f MeetingFilter) ([]models.Meeting, error) {
	q := r.db.Model(&models.Meeting{}).
		Preload("Room").
		Preload("Organizer").
		Preload("Secretary").
		Preload("Participants").
		Preload("Participants.User")

	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartFrom != nil && f.StartTo != nil {
		q = q.Where("start_time BETWEEN ? AND ?", f.StartFrom, f.StartTo)
	}
	if f.ParticipantID != "" {
		q = q.Where(
			"id IN (?)",
			r.db.Model(&models.MeetingParticipant{}).
				Select("meeting_id").
				Where("user_id = ?", f.ParticipantID),
		)
	}

	var meetings []models.Meeting
	if err := q.Order("start_time asc").Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *gormMeetingRepo) Create(m *models.Meeting, participants []models.MeetingParticipant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for i := range participants {
			participants[i].MeetingID = m.ID
		}
		if len(participants) > 0 {
			if err := tx.Create(&participants).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormMeetingRepo) Update(m *models.Meeting) error {
	return r.db.Save(m).Error
}

func (r *gormMeetingRepo) ReplaceParticipants(meetingID string, rows []models.MeetingParticipant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("meeting_id = ? AND role = ?", meetingID, models.RoleParticipant).
			Delete(&models.MeetingParticipant{}).Error
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].MeetingID = meetingID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormMeetingRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&models.MeetingParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meeting{}, "id = ?", id).Error
	})
}
