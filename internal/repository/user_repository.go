package repository

import (
	"github.com/yukikurage/rbac-task-api/internal/database"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes the present columns of changes; updated_at is bumped by GORM
func (r *GormUserRepository) Update(user *models.User, changes UserChanges) error {
	columns := changes.Columns()
	if len(columns) == 0 {
		return nil
	}

	return r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(columns).Error
}

// List retrieves users in id order
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Order("id ASC").Scopes(database.Paginate(params)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole counts the users holding role
func (r *GormUserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
