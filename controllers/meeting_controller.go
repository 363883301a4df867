package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/meeting-room-server/middleware"
	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/repository"
	"github.com/vnkhanh/meeting-room-server/services"
	"github.com/vnkhanh/meeting-room-server/utils"
)

type MeetingController struct {
	scheduler *services.SchedulerService
	meetings  repository.MeetingRepository
}

func NewMeetingController(scheduler *services.SchedulerService, meetings repository.MeetingRepository) *MeetingController {
	return &MeetingController{scheduler: scheduler, meetings: meetings}
}

type CreateMeetingReq struct {
	Title          string    `json:"title" binding:"required"`
	Description    *string   `json:"description"`
	RoomID         string    `json:"roomId" binding:"required"`
	SecretaryID    *string   `json:"secretaryId"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	EndTime        time.Time `json:"endTime" binding:"required"`
	ParticipantIDs []string  `json:"participantIds"`
}

func (ctl *MeetingController) CreateMeeting(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req CreateMeetingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu không hợp lệ", "error": err.Error()})
		return
	}

	meeting, err := ctl.scheduler.CreateMeeting(services.CreateMeetingInput{
		Title:          req.Title,
		Description:    req.Description,
		RoomID:         req.RoomID,
		OrganizerID:    u.ID,
		SecretaryID:    req.SecretaryID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "meeting": meeting})
}

// ListMeetings hỗ trợ filter: startDate/endDate (RFC3339), roomId, status,
// myMeetings=true (chỉ cuộc họp user đang đăng nhập tham gia).
func (ctl *MeetingController) ListMeetings(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var f repository.MeetingFilter
	f.RoomID = c.Query("roomId")

	if s := c.Query("status"); s != "" {
		status := models.MeetingStatus(s)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Trạng thái không hợp lệ"})
			return
		}
		f.Status = status
	}

	if fromStr, toStr := c.Query("startDate"), c.Query("endDate"); fromStr != "" && toStr != "" {
		from, err1 := time.Parse(time.RFC3339, fromStr)
		to, err2 := time.Parse(time.RFC3339, toStr)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Khoảng ngày không hợp lệ"})
			return
		}
		f.StartFrom = &from
		f.StartTo = &to
	}

	if c.Query("myMeetings") == "true" {
		f.ParticipantID = u.ID
	}

	meetings, err := ctl.meetings.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi lấy danh sách cuộc họp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(meetings), "meetings": meetings})
}

func (ctl *MeetingController) GetMeeting(c *gin.Context) {
	meeting, err := ctl.meetings.FindByIDFull(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy cuộc họp"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meeting": meeting})
}

type UpdateMeetingReq struct {
	Title          *string               `json:"title"`
	Description    *string               `json:"description"`
	RoomID         *string               `json:"roomId"`
	SecretaryID    *string               `json:"secretaryId"`
	StartTime      *time.Time            `json:"startTime"`
	EndTime        *time.Time            `json:"endTime"`
	Status         *models.MeetingStatus `json:"status"`
	ParticipantIDs []string              `json:"participantIds"`
}

func (ctl *MeetingController) UpdateMeeting(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req UpdateMeetingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu không hợp lệ", "error": err.Error()})
		return
	}

	meeting, err := ctl.scheduler.UpdateMeeting(c.Param("id"), u.ID, services.UpdateMeetingInput{
		Title:          req.Title,
		Description:    req.Description,
		RoomID:         req.RoomID,
		SecretaryID:    req.SecretaryID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         req.Status,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meeting": meeting})
}

func (ctl *MeetingController) DeleteMeeting(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	if err := ctl.scheduler.CancelMeeting(c.Param("id"), u.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đã xóa cuộc họp"})
}

// UploadMinutes: POST /api/meetings/:id/minutes (multipart, field "file").
// Middleware đã chặn mọi người trừ thư ký; service kiểm tra lại lần nữa.
func (ctl *MeetingController) UploadMinutes(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	m := c.MustGet(middleware.CtxMeeting).(models.Meeting)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Không nhận được file"})
		return
	}

	fileURL, err := utils.UploadMinutesFile(fileHeader, m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi upload biên bản"})
		return
	}

	meeting, err := ctl.scheduler.AttachMinutes(m.ID, u.ID, fileURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meeting": meeting})
}
