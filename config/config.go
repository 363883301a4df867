package config

import (
	"fmt"
	"log"
	"os"

	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB khởi tạo kết nối PostgreSQL và migrate bảng
func ConnectDB() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
		host, user, password, dbName, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto migrate bảng
	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Meeting{},
		&models.MeetingParticipant{},
		&models.ExportJob{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")

	seedDefaultAdmin(db)
}

// seedDefaultAdmin tạo sẵn một tài khoản admin nếu hệ thống chưa có admin nào.
func seedDefaultAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("không hash được mật khẩu admin mặc định: %v", err)
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@meetingroom.com",
		Password: hash,
		Role:     "admin",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("không tạo được tài khoản admin mặc định: %v", err)
		return
	}
	log.Println("Default admin user created (admin@meetingroom.com)")
}
