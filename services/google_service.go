package services

import (
	"context"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/vnkhanh/meeting-room-server/models"
)

const calendarTimeZone = "Asia/Ho_Chi_Minh"

// GoogleService bao toàn bộ tương tác với Google: OAuth đăng nhập và
// đồng bộ event lên Google Calendar của organizer.
type GoogleService struct {
	conf *oauth2.Config
}

func NewGoogleService() *GoogleService {
	return &GoogleService{
		conf: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/calendar",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthURL trả về URL consent; access_type=offline + prompt=consent để luôn
// nhận refresh token.
func (g *GoogleService) AuthURL() string {
	return g.conf.AuthCodeURL(
		"state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (g *GoogleService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.conf.Exchange(ctx, code)
}

func (g *GoogleService) UserInfo(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	svc, err := goauth2.NewService(ctx, option.WithTokenSource(g.conf.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}
	return svc.Userinfo.Get().Do()
}

// tokenFor dựng lại token từ cặp access/refresh đã lưu của user.
// Expiry đặt ở quá khứ để TokenSource chủ động refresh trước khi gọi API.
func (g *GoogleService) tokenFor(u *models.User) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  *u.GoogleAccessToken,
		RefreshToken: *u.GoogleRefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}
}

func (g *GoogleService) calendarClient(ctx context.Context, u *models.User) (*calendar.Service, error) {
	return calendar.NewService(ctx, option.WithTokenSource(g.conf.TokenSource(ctx, g.tokenFor(u))))
}

func buildCalendarEvent(m *models.Meeting, room *models.Room, attendees []models.User) *calendar.Event {
	desc := ""
	if m.Description != nil {
		desc = *m.Description
	}
	evAttendees := make([]*calendar.EventAttendee, 0, len(attendees))
	for _, u := range attendees {
		evAttendees = append(evAttendees, &calendar.EventAttendee{Email: u.Email})
	}
	return &calendar.Event{
		Summary:     m.Title,
		Description: desc,
		Location:    room.Name,
		Start: &calendar.EventDateTime{
			DateTime: m.StartTime.Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: m.EndTime.Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
		Attendees: evAttendees,
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func (g *GoogleService) CreateEvent(organizer *models.User, m *models.Meeting, room *models.Room, attendees []models.User) (string, error) {
	ctx := context.Background()
	svc, err := g.calendarClient(ctx, organizer)
	if err != nil {
		return "", err
	}
	ev, err := svc.Events.
		Insert("primary", buildCalendarEvent(m, room, attendees)).
		SendUpdates("all").
		Do()
	if err != nil {
		return "", err
	}
	return ev.Id, nil
}

func (g *GoogleService) UpdateEvent(organizer *models.User, m *models.Meeting, room *models.Room, attendees []models.User) error {
	if m.GoogleCalendarEventID == nil {
		return nil
	}
	ctx := context.Background()
	svc, err := g.calendarClient(ctx, organizer)
	if err != nil {
		return err
	}
	_, err = svc.Events.
		Update("primary", *m.GoogleCalendarEventID, buildCalendarEvent(m, room, attendees)).
		SendUpdates("all").
		Do()
	return err
}

func (g *GoogleService) DeleteEvent(organizer *models.User, eventID string) error {
	ctx := context.Background()
	svc, err := g.calendarClient(ctx, organizer)
	if err != nil {
		return err
	}
	return svc.Events.Delete("primary", eventID).SendUpdates("all").Do()
}
