package model

import (
	"time"
)

// CampaignModel 众筹活动
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null;uniqueIndex" binding:"required"`
	Description string `json:"description" gorm:"type:text"`

	// 众筹信息（金额单位为元，扣款时再换算成分）
	Goal float64 `json:"goal" gorm:"not null" binding:"required"`

	// 时间信息
	EndDate time.Time `json:"end_date" gorm:"not null"`

	// 状态
	Status CampaignStatus `json:"status" gorm:"default:'draft'"`

	// 创建者信息
	CreatorId int64 `json:"creator_id" gorm:"not null"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"     // 草稿
	CampaignStatusPublished CampaignStatus = "published" // 已发布
	CampaignStatusFunded    CampaignStatus = "funded"    // 达标
	CampaignStatusUnfunded  CampaignStatus = "unfunded"  // 未达标
	CampaignStatusCancelled CampaignStatus = "cancelled" // 已取消
)

// MinGoal 目标金额下限，低于等于该值的活动不允许创建
const MinGoal = 10

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
