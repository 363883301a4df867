package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/meeting-room-server/config"
	"github.com/vnkhanh/meeting-room-server/models"
)

type ExportRequest struct {
	RoomID    *string `json:"room_id,omitempty"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// POST /api/meetings/export — xuất danh sách cuộc họp ra CSV, chạy nền.
func CreateMeetingExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payload không hợp lệ"})
		return
	}

	if req.RoomID != nil {
		var room models.Room
		if err := config.DB.First(&room, "id = ?", *req.RoomID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy phòng họp"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi DB"})
			return
		}
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
			fromPtr = &t
		}
	}
	if req.RangeTo != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
			toPtr = &t
		}
	}

	jobID := uuid.New().String()
	job := models.ExportJob{
		JobID:     jobID,
		RoomID:    req.RoomID,
		Format:    "csv",
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    "queued",
	}
	config.DB.Create(&job)

	go processExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"job_id":  jobID,
		"status":  "queued",
	})
}

// GET /api/exports/:job_id
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Job không tìm thấy"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi DB"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job_id":  job.JobID,
		"status":  job.Status,
		"error":   job.ErrorMsg,
	})
}

// xử lý job xuất dữ liệu
func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)

	filename := fmt.Sprintf("meetings_%s.csv", job.JobID)
	outPath := path.Join(outDir, filename)

	f, err := os.Create(outPath)
	if err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"meeting_id", "title", "room", "organizer", "start_time", "end_time", "status", "participants"}
	w.Write(header)

	q := config.DB.
		Preload("Room").
		Preload("Organizer").
		Preload("Participants").
		Preload("Participants.User").
		Model(&models.Meeting{})
	if job.RoomID != nil {
		q = q.Where("room_id = ?", *job.RoomID)
	}
	if job.RangeFrom != nil {
		q = q.Where("start_time >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("start_time <= ?", job.RangeTo)
	}

	var meetings []models.Meeting
	if err := q.Order("start_time asc").Find(&meetings).Error; err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}

	for _, m := range meetings {
		roomName := ""
		if m.Room != nil {
			roomName = m.Room.Name
		}
		organizerName := ""
		if m.Organizer != nil {
			organizerName = m.Organizer.Name
		}
		participants := ""
		for _, p := range m.Participants {
			if p.User != nil {
				participants += fmt.Sprintf("[%s:%s] ", p.User.Email, p.Role)
			}
		}
		row := []string{
			m.ID,
			m.Title,
			roomName,
			organizerName,
			m.StartTime.Format(time.RFC3339),
			m.EndTime.Format(time.RFC3339),
			string(m.Status),
			participants,
		}
		w.Write(row)
	}

	fp := outPath
	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": fp})
}
