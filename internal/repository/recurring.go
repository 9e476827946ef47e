package repository

import (
	"gorm.io/gorm"

	"save-money-go/internal/models"
)

type RecurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

func (r *RecurringRepository) Create(owner *models.User, rt *models.RepeatedTransaction) error {
	rt.UserID = owner.ID
	return r.db.Create(rt).Error
}

func (r *RecurringRepository) ListMine(owner *models.User) ([]models.RepeatedTransaction, error) {
	var templates []models.RepeatedTransaction
	err := r.db.Where("user_id = ?", owner.ID).Order("id desc").Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *RecurringRepository) FindMine(owner *models.User, id uint) (*models.RepeatedTransaction, error) {
	var rt models.RepeatedTransaction
	if err := r.db.Where("id = ? AND user_id = ?", id, owner.ID).First(&rt).Error; err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (r *RecurringRepository) UpdateMine(owner *models.User, rt *models.RepeatedTransaction) error {
	if rt.UserID != owner.ID {
		return ErrNotFound
	}
	return r.db.Save(rt).Error
}

func (r *RecurringRepository) DeleteMine(owner *models.User, id uint) error {
	rt, err := r.FindMine(owner, id)
	if err != nil {
		return err
	}
	return r.db.Delete(rt).Error
}
