package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vnkhanh/meeting-room-server/models"
)

type gormRoomRepo struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &gormRoomRepo{db: db}
}

func (r *gormRoomRepo) FindByID(id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormRoomRepo) FindByName(name string) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormRoomRepo) List(isActive *bool) ([]models.Room, error) {
	q := r.db.Model(&models.Room{})
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var rooms []models.Room
	if err := q.Order("name asc").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *gormRoomRepo) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *gormRoomRepo) Save(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *gormRoomRepo) Delete(id string) error {
	return r.db.Delete(&models.Room{}, "id = ?", id).Error
}
