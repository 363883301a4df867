package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/meeting-room-server/middleware"
	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/repository"
	"github.com/vnkhanh/meeting-room-server/services"
	"github.com/vnkhanh/meeting-room-server/utils"
)

type AuthController struct {
	users  repository.UserRepository
	google *services.GoogleService
}

func NewAuthController(users repository.UserRepository, google *services.GoogleService) *AuthController {
	return &AuthController{users: users, google: google}
}

type RegisterReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := ctl.users.FindByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email đã được đăng ký"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể mã hóa mật khẩu"})
		return
	}

	u := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     "user",
		IsActive: true,
	}
	if err := ctl.users.Create(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể tạo tài khoản"})
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không tạo được token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":     u.ID,
			"email":  u.Email,
			"name":   u.Name,
			"role":   u.Role,
			"avatar": u.Avatar,
		},
	})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vui lòng nhập email và mật khẩu"})
		return
	}

	u, err := ctl.users.FindByEmail(req.Email)
	if err != nil || u.Password == "" || !utils.CheckPassword(u.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email hoặc mật khẩu không đúng"})
		return
	}

	if !u.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Tài khoản đã bị vô hiệu hóa"})
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không tạo được token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":     u.ID,
			"email":  u.Email,
			"name":   u.Name,
			"role":   u.Role,
			"avatar": u.Avatar,
		},
	})
}

// GoogleAuthURL trả về URL consent để frontend redirect người dùng sang Google.
func (ctl *AuthController) GoogleAuthURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     ctl.google.AuthURL(),
	})
}

// GoogleCallback đổi code lấy token, lấy userinfo, upsert user rồi redirect
// về frontend kèm JWT.
func (ctl *AuthController) GoogleCallback(c *gin.Context) {
	frontendURL := os.Getenv("FRONTEND_URL")
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
		return
	}

	tokens, err := ctl.google.Exchange(c.Request.Context(), code)
	if err != nil {
		c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
		return
	}

	info, err := ctl.google.UserInfo(c.Request.Context(), tokens)
	if err != nil {
		c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
		return
	}

	u, err := ctl.users.FindByEmail(info.Email)
	switch {
	case err == nil:
		// Tài khoản đã có: cập nhật liên kết Google
		u.GoogleID = &info.Id
		u.GoogleAccessToken = &tokens.AccessToken
		if tokens.RefreshToken != "" {
			u.GoogleRefreshToken = &tokens.RefreshToken
		}
		u.Avatar = info.Picture
		if err := ctl.users.Save(u); err != nil {
			c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
			return
		}
	case errors.Is(err, repository.ErrNotFound):
		u = &models.User{
			Name:               info.Name,
			Email:              info.Email,
			Role:               "user",
			IsActive:           true,
			Avatar:             info.Picture,
			GoogleID:           &info.Id,
			GoogleAccessToken:  &tokens.AccessToken,
			GoogleRefreshToken: &tokens.RefreshToken,
		}
		if err := ctl.users.Create(u); err != nil {
			c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
			return
		}
	default:
		c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role)
	if err != nil {
		c.Redirect(http.StatusFound, frontendURL+"/login?error=google_auth_failed")
		return
	}

	c.Redirect(http.StatusFound, frontendURL+"/auth/callback?token="+token)
}

func (ctl *AuthController) Me(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"role":       u.Role,
			"avatar":     u.Avatar,
			"created_at": u.CreatedAt,
		},
	})
}

// ListUsers: danh sách user active để chọn người tham gia họp.
func (ctl *AuthController) ListUsers(c *gin.Context) {
	users, err := ctl.users.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi lấy danh sách người dùng"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":     u.ID,
			"name":   u.Name,
			"email":  u.Email,
			"avatar": u.Avatar,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out})
}
