package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vnkhanh/meeting-room-server/models"
)

type gormUserRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepo{db: db}
}

func (r *gormUserRepo) FindByID(id string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormUserRepo) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormUserRepo) FindByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepo) ListActive() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("is_active = ?", true).
		Order("name asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepo) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *gormUserRepo) Save(u *models.User) error {
	return r.db.Save(u).Error
}
