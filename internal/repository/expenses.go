package repository

import (
	"time"

	"gorm.io/gorm"

	"save-money-go/internal/models"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(owner *models.User, e *models.Expense) error {
	e.UserID = owner.ID
	return r.db.Create(e).Error
}

// ListMine returns the caller's entries, newest-first by occurrence instant.
func (r *ExpenseRepository) ListMine(owner *models.User) ([]models.Expense, error) {
	var entries []models.Expense
	err := r.db.Where("user_id = ?", owner.ID).
		Order("occurred_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListMineInRange returns the caller's entries with occurrence within
// [from, to] inclusive, newest-first.
func (r *ExpenseRepository) ListMineInRange(owner *models.User, from, to time.Time) ([]models.Expense, error) {
	var entries []models.Expense
	err := r.db.Where("user_id = ? AND occurred_at BETWEEN ? AND ?", owner.ID, from, to).
		Order("occurred_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ExpenseRepository) FindMine(owner *models.User, id uint) (*models.Expense, error) {
	var e models.Expense
	if err := r.db.Where("id = ? AND user_id = ?", id, owner.ID).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *ExpenseRepository) UpdateMine(owner *models.User, e *models.Expense) error {
	if e.UserID != owner.ID {
		return ErrNotFound
	}
	return r.db.Save(e).Error
}

func (r *ExpenseRepository) DeleteMine(owner *models.User, id uint) error {
	e, err := r.FindMine(owner, id)
	if err != nil {
		return err
	}
	return r.db.Delete(e).Error
}
