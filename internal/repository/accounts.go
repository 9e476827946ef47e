package repository

import (
	"gorm.io/gorm"

	"save-money-go/internal/models"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create stamps the caller as owner and persists the account.
func (r *AccountRepository) Create(owner *models.User, a *models.Account) error {
	a.UserID = owner.ID
	return r.db.Create(a).Error
}

// ListMine returns the caller's accounts, newest-first by insertion id.
func (r *AccountRepository) ListMine(owner *models.User) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("user_id = ?", owner.ID).Order("id desc").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) FindMine(owner *models.User, id uint) (*models.Account, error) {
	var a models.Account
	if err := r.db.Where("id = ? AND user_id = ?", id, owner.ID).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// FindMineByName looks up one of the caller's accounts by display name, used
// to resolve recurring-template account references.
func (r *AccountRepository) FindMineByName(owner *models.User, name string) (*models.Account, error) {
	var a models.Account
	if err := r.db.Where("name = ? AND user_id = ?", name, owner.ID).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// UpdateMine persists a record previously loaded through FindMine. The owner
// is never rewritten.
func (r *AccountRepository) UpdateMine(owner *models.User, a *models.Account) error {
	if a.UserID != owner.ID {
		return ErrNotFound
	}
	return r.db.Save(a).Error
}

func (r *AccountRepository) DeleteMine(owner *models.User, id uint) error {
	a, err := r.FindMine(owner, id)
	if err != nil {
		return err
	}
	return r.db.Delete(a).Error
}
