package repository

import (
	"time"

	"gorm.io/gorm"

	"save-money-go/internal/models"
)

// UserRepository is the identity store. Users are not ownership-scoped;
// username and email are each globally unique.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Save(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindByUsernameOrEmail resolves a login identifier that may be either the
// handle or the contact address.
func (r *UserRepository) FindByUsernameOrEmail(identifier string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var n int64
	if err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var n int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

// CountActiveToday counts users whose last login is on or after the start of
// the current day.
func (r *UserRepository) CountActiveToday() (int64, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var n int64
	err := r.db.Model(&models.User{}).
		Where("last_login IS NOT NULL AND last_login >= ?", startOfDay).
		Count(&n).Error
	return n, err
}
