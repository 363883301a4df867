package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/repository"
	"github.com/vnkhanh/meeting-room-server/services"
)

type RoomController struct {
	rooms     repository.RoomRepository
	scheduler *services.SchedulerService
}

func NewRoomController(rooms repository.RoomRepository, scheduler *services.SchedulerService) *RoomController {
	return &RoomController{rooms: rooms, scheduler: scheduler}
}

type CreateRoomReq struct {
	Name        string         `json:"name" binding:"required"`
	Capacity    int            `json:"capacity" binding:"required,min=1"`
	Location    *string        `json:"location"`
	Description *string        `json:"description"`
	Equipment   datatypes.JSON `json:"equipment"`
}

func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu không hợp lệ", "error": err.Error()})
		return
	}

	if _, err := ctl.rooms.FindByName(req.Name); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phòng họp đã tồn tại"})
		return
	}

	room := models.Room{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Description: req.Description,
		Equipment:   req.Equipment,
		IsActive:    true,
	}
	if err := ctl.rooms.Create(&room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi tạo phòng họp"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "room": room})
}

func (ctl *RoomController) ListRooms(c *gin.Context) {
	var isActive *bool
	if v := c.Query("isActive"); v != "" {
		b := v == "true"
		isActive = &b
	}

	rooms, err := ctl.rooms.List(isActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi lấy danh sách phòng họp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(rooms), "rooms": rooms})
}

func (ctl *RoomController) GetRoom(c *gin.Context) {
	room, err := ctl.rooms.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy phòng họp"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi lấy thông tin phòng họp"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}

type UpdateRoomReq struct {
	Name        *string         `json:"name"`
	Capacity    *int            `json:"capacity"`
	Location    *string         `json:"location"`
	Description *string         `json:"description"`
	Equipment   *datatypes.JSON `json:"equipment"`
	IsActive    *bool           `json:"isActive"`
}

func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	room, err := ctl.rooms.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy phòng họp"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật phòng họp"})
		return
	}

	var req UpdateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu không hợp lệ"})
		return
	}

	// update từng field nếu có
	if req.Name != nil && *req.Name != "" && *req.Name != room.Name {
		if _, err := ctl.rooms.FindByName(*req.Name); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tên phòng họp đã tồn tại"})
			return
		}
		room.Name = *req.Name
	}
	if req.Capacity != nil && *req.Capacity > 0 {
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = req.Location
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Equipment != nil {
		room.Equipment = *req.Equipment
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := ctl.rooms.Save(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật phòng họp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}

// DeleteRoom xóa phòng, bị chặn nếu phòng còn cuộc họp active trong tương lai.
func (ctl *RoomController) DeleteRoom(c *gin.Context) {
	room, err := ctl.rooms.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy phòng họp"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi xóa phòng họp"})
		return
	}

	if err := ctl.scheduler.EnsureRoomDeletable(room.ID, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctl.rooms.Delete(room.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi xóa phòng họp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đã xóa phòng họp"})
}

// CheckAvailability: GET /api/rooms/check-availability
// query: roomId, startTime, endTime (RFC3339), excludeMeetingId (tùy chọn)
func (ctl *RoomController) CheckAvailability(c *gin.Context) {
	roomID := c.Query("roomId")
	startStr := c.Query("startTime")
	endStr := c.Query("endTime")
	excludeID := c.Query("excludeMeetingId")

	if roomID == "" || startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu thông tin kiểm tra"})
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "startTime không hợp lệ"})
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "endTime không hợp lệ"})
		return
	}

	result, err := ctl.scheduler.CheckAvailability(roomID, start, end, excludeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"isAvailable":         result.IsAvailable,
		"conflictingMeetings": result.Conflicts,
	})
}
