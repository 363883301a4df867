package services_test

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/repository"
)

// memStore là storage in-memory dùng chung cho các fake repository,
// an toàn khi gọi song song (side effect của scheduler chạy goroutine).
type memStore struct {
	mu           sync.Mutex
	rooms        map[string]models.Room
	users        map[string]models.User
	meetings     map[string]models.Meeting
	participants map[string][]models.MeetingParticipant // theo meetingID
}

func newMemStore() *memStore {
	return &memStore{
		rooms:        make(map[string]models.Room),
		users:        make(map[string]models.User),
		meetings:     make(map[string]models.Meeting),
		participants: make(map[string][]models.MeetingParticipant),
	}
}

func (s *memStore) addRoom(r models.Room) models.Room {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
	return r
}

func (s *memStore) addUser(u models.User) models.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Email == "" {
		u.Email = u.ID + "@example.com"
	}
	u.IsActive = true
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return u
}

// addMeeting chèn thẳng vào store, dùng để dựng fixture (kể cả trạng thái
// cancelled/completed mà service không bao giờ tự tạo).
func (s *memStore) addMeeting(m models.Meeting) models.Meeting {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = models.MeetingScheduled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[m.ID] = m
	return m
}

type memMeetingRepo struct{ s *memStore }
type memRoomRepo struct{ s *memStore }
type memUserRepo struct{ s *memStore }

func newRepos(s *memStore) (repository.MeetingRepository, repository.RoomRepository, repository.UserRepository) {
	return &memMeetingRepo{s}, &memRoomRepo{s}, &memUserRepo{s}
}

func (r *memMeetingRepo) FindByID(id string) (*models.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *memMeetingRepo) FindByIDFull(id string) (*models.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if room, ok := r.s.rooms[m.RoomID]; ok {
		m.Room = &room
	}
	if org, ok := r.s.users[m.OrganizerID]; ok {
		m.Organizer = &org
	}
	if m.SecretaryID != nil {
		if sec, ok := r.s.users[*m.SecretaryID]; ok {
			m.Secretary = &sec
		}
	}
	rows := append([]models.MeetingParticipant(nil), r.s.participants[id]...)
	for i := range rows {
		if u, ok := r.s.users[rows[i].UserID]; ok {
			rows[i].User = &u
		}
	}
	m.Participants = rows
	return &m, nil
}

func (r *memMeetingRepo) FindConflicting(roomID string, start, end time.Time, excludeID string) ([]models.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Meeting
	for _, m := range r.s.meetings {
		if m.RoomID != roomID || m.ID == excludeID || !m.Status.Active() {
			continue
		}
		if m.Overlaps(start, end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMeetingRepo) CountFutureActive(roomID string, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, m := range r.s.meetings {
		if m.RoomID == roomID && m.Status.Active() && !m.StartTime.Before(now) {
			count++
		}
	}
	return count, nil
}

func (r *memMeetingRepo) List(f repository.MeetingFilter) ([]models.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Meeting
	for _, m := range r.s.meetings {
		if f.RoomID != "" && m.RoomID != f.RoomID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.StartFrom != nil && m.StartTime.Before(*f.StartFrom) {
			continue
		}
		if f.StartTo != nil && m.StartTime.After(*f.StartTo) {
			continue
		}
		if f.ParticipantID != "" {
			found := false
			for _, p := range r.s.participants[m.ID] {
				if p.UserID == f.ParticipantID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMeetingRepo) Create(m *models.Meeting, participants []models.MeetingParticipant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.s.meetings[m.ID] = *m
	rows := make([]models.MeetingParticipant, len(participants))
	for i, p := range participants {
		p.MeetingID = m.ID
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		rows[i] = p
	}
	r.s.participants[m.ID] = rows
	return nil
}

func (r *memMeetingRepo) Update(m *models.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.meetings[m.ID]; !ok {
		return repository.ErrNotFound
	}
	saved := *m
	saved.Room, saved.Organizer, saved.Secretary, saved.Participants = nil, nil, nil, nil
	r.s.meetings[m.ID] = saved
	return nil
}

func (r *memMeetingRepo) ReplaceParticipants(meetingID string, rows []models.MeetingParticipant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []models.MeetingParticipant
	for _, p := range r.s.participants[meetingID] {
		if p.Role != models.RoleParticipant {
			kept = append(kept, p)
		}
	}
	for _, p := range rows {
		p.MeetingID = meetingID
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		kept = append(kept, p)
	}
	r.s.participants[meetingID] = kept
	return nil
}

func (r *memMeetingRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.meetings, id)
	delete(r.s.participants, id)
	return nil
}

func (r *memRoomRepo) FindByID(id string) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

func (r *memRoomRepo) FindByName(name string) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if room.Name == name {
			return &room, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRoomRepo) List(isActive *bool) ([]models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Room
	for _, room := range r.s.rooms {
		if isActive != nil && room.IsActive != *isActive {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

func (r *memRoomRepo) Create(room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) Save(room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rooms, id)
	return nil
}

func (r *memUserRepo) FindByID(id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) FindByEmail(email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByIDs(ids []string) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListActive() ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.User
	for _, u := range r.s.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Create(u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Save(u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}
