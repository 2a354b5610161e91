package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fundsy/internal/model"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// CreateUser 注册用户
func (u *UserLogic) CreateUser(user *model.UserModel) error {
	if user.FirstName == "" || user.LastName == "" {
		return ErrNameRequired
	}
	if user.Email == "" {
		return ErrEmailRequired
	}

	var count int64
	if err := u.db.Model(&model.UserModel{}).
		Where("email = ?", user.Email).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := u.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser 获取用户详情
func (u *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return &user, nil
}
