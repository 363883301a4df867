package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/meeting-room-server/controllers"
	"github.com/vnkhanh/meeting-room-server/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authCtl *controllers.AuthController,
	roomCtl *controllers.RoomController,
	meetingCtl *controllers.MeetingController,
) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtl.Register)
			auth.POST("/login", authCtl.Login)
			auth.GET("/google", authCtl.GoogleAuthURL)
			auth.GET("/google/callback", authCtl.GoogleCallback)
			auth.GET("/me", middleware.AuthJWT(), authCtl.Me)
		}

		// danh sách user để chọn người tham gia họp
		api.GET("/users", middleware.AuthJWT(), authCtl.ListUsers)

		rooms := api.Group("/rooms")
		rooms.Use(middleware.AuthJWT())
		{
			rooms.GET("/check-availability", roomCtl.CheckAvailability)
			rooms.GET("", roomCtl.ListRooms)
			rooms.POST("", middleware.RequireAdmin(), roomCtl.CreateRoom)
			rooms.GET("/:id", roomCtl.GetRoom)
			rooms.PUT("/:id", middleware.RequireAdmin(), roomCtl.UpdateRoom)
			rooms.DELETE("/:id", middleware.RequireAdmin(), roomCtl.DeleteRoom)
		}

		meetings := api.Group("/meetings")
		meetings.Use(middleware.AuthJWT())
		{
			meetings.GET("", meetingCtl.ListMeetings)
			meetings.POST("", middleware.RateLimitMeetingsCreate(), meetingCtl.CreateMeeting)
			meetings.POST("/export", controllers.CreateMeetingExport)
			meetings.GET("/:id", meetingCtl.GetMeeting)
			meetings.PUT("/:id", middleware.CheckMeetingEditor(), meetingCtl.UpdateMeeting)
			meetings.DELETE("/:id", middleware.CheckMeetingOrganizer(), meetingCtl.DeleteMeeting)
			meetings.POST("/:id/minutes", middleware.CheckMeetingSecretary(), meetingCtl.UploadMinutes)
		}

		api.GET("/exports/:job_id", middleware.AuthJWT(), controllers.GetExport)
	}
}
