package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// MeetingMailData là dữ liệu đổ vào template email thông báo cuộc họp.
type MeetingMailData struct {
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	RoomName      string
	OrganizerName string
	SecretaryName string
	CancelledBy   string
}

// EmailService gửi mail qua SMTP. Nếu chưa cấu hình SMTP thì chỉ log nội
// dung (mock) để môi trường dev không cần mail server.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

func (e *EmailService) send(to, subject, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")

	if smtpHost == "" || smtpPort == "" || smtpUser == "" || smtpPass == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", to, subject)
		return nil
	}

	from := fmt.Sprintf("Meeting Room System <%s>", smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	return smtp.SendMail(addr, auth, smtpUser, []string{to}, []byte(b.String()))
}

func formatTimeRange(start, end time.Time) (string, string) {
	return start.Format("02/01/2006 15:04"), end.Format("15:04")
}

func (e *EmailService) SendMeetingInvitation(to string, data MeetingMailData) error {
	startStr, endStr := formatTimeRange(data.StartTime, data.EndTime)

	secretaryRow := ""
	if data.SecretaryName != "" {
		secretaryRow = fmt.Sprintf(`<p><strong>📝 Thư ký:</strong> %s</p>`, data.SecretaryName)
	}
	descRow := ""
	if data.Description != "" {
		descRow = fmt.Sprintf(`<p><strong>📋 Nội dung:</strong><br/>%s</p>`, data.Description)
	}

	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1976d2;">Lời Mời Tham Dự Cuộc Họp</h2>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px;">
    <h3>%s</h3>
    <p><strong>📅 Thời gian:</strong> %s - %s</p>
    <p><strong>📍 Phòng họp:</strong> %s</p>
    <p><strong>👤 Chủ trì:</strong> %s</p>
    %s
    %s
  </div>
  <p style="margin-top: 20px; color: #666;">
    Cuộc họp này đã được thêm vào Google Calendar của bạn.
  </p>
</div>`,
		data.Title, startStr, endStr, data.RoomName, data.OrganizerName, secretaryRow, descRow)

	return e.send(to, fmt.Sprintf("Lời mời họp: %s", data.Title), body)
}

func (e *EmailService) SendMeetingUpdate(to string, data MeetingMailData) error {
	startStr, endStr := formatTimeRange(data.StartTime, data.EndTime)

	descRow := ""
	if data.Description != "" {
		descRow = fmt.Sprintf(`<p><strong>📋 Nội dung:</strong><br/>%s</p>`, data.Description)
	}

	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f57c00;">Thông Báo Cập Nhật Cuộc Họp</h2>
  <div style="background-color: #fff3e0; padding: 20px; border-radius: 8px;">
    <h3>%s</h3>
    <p><strong>📅 Thời gian:</strong> %s - %s</p>
    <p><strong>📍 Phòng họp:</strong> %s</p>
    <p><strong>👤 Chủ trì:</strong> %s</p>
    %s
  </div>
  <p style="margin-top: 20px; color: #666;">
    Thông tin cuộc họp đã được cập nhật trong Google Calendar của bạn.
  </p>
</div>`,
		data.Title, startStr, endStr, data.RoomName, data.OrganizerName, descRow)

	return e.send(to, fmt.Sprintf("Cập nhật cuộc họp: %s", data.Title), body)
}

func (e *EmailService) SendMeetingCancellation(to string, data MeetingMailData) error {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #d32f2f;">Thông Báo Hủy Cuộc Họp</h2>
  <div style="background-color: #ffebee; padding: 20px; border-radius: 8px;">
    <h3>%s</h3>
    <p>Cuộc họp đã bị hủy.</p>
    <p><strong>👤 Người hủy:</strong> %s</p>
  </div>
</div>`,
		data.Title, data.CancelledBy)

	return e.send(to, fmt.Sprintf("Hủy cuộc họp: %s", data.Title), body)
}

func (e *EmailService) SendMinutesNotification(to string, data MeetingMailData, minutesURL string) error {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #388e3c;">Biên Bản Cuộc Họp</h2>
  <div style="background-color: #e8f5e9; padding: 20px; border-radius: 8px;">
    <h3>%s</h3>
    <p>Biên bản cuộc họp đã được thư ký tải lên.</p>
    <p><a href="%s" style="display:inline-block;padding:10px 18px;background:#388e3c;color:#fff;text-decoration:none;border-radius:6px;">Xem biên bản</a></p>
  </div>
</div>`,
		data.Title, minutesURL)

	return e.send(to, fmt.Sprintf("Biên bản cuộc họp: %s", data.Title), body)
}
