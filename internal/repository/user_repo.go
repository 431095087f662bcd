package repository

import (
	"context"

	"vida-likes/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Create 创建用户，用户名重复时返回 ErrConstraintViolation
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

// IsStaff 查询用户是否为管理员
func (r *UserRepository) IsStaff(ctx context.Context, id int64) (bool, error) {
	var flags []bool
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).Limit(1).Pluck("is_staff", &flags).Error
	if err != nil {
		return false, translateError(err)
	}
	if len(flags) == 0 {
		return false, ErrNotFound
	}
	return flags[0], nil
}
