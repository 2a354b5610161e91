package model

import (
	"time"
)

// UserModel 用户（活动创建者/出资人）
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName string `json:"first_name" gorm:"not null" binding:"required"`
	LastName  string `json:"last_name" gorm:"not null" binding:"required"`
	Email     string `json:"email" gorm:"not null;uniqueIndex" binding:"required"`

	// 网关侧付款人标识，首次注册成功后写入，之后所有扣款复用
	GatewayCustomerId string `json:"gateway_customer_id" gorm:"default:''"`

	// 卡信息缓存，仅用于展示，不参与扣款授权
	CardBrand    string `json:"card_brand"`
	CardLast4    string `json:"card_last4"`
	CardExpMonth int64  `json:"card_exp_month"`
	CardExpYear  int64  `json:"card_exp_year"`
}

// FullName 用户全名
func (u *UserModel) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Registered 是否已在网关注册过付款人
func (u *UserModel) Registered() bool {
	return u.GatewayCustomerId != ""
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "user"
}
