package model

import (
	"time"
)

// EventModel 领域事件记录
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EntityType string `json:"entity_type" gorm:"not null;index"`
	EntityId   int64  `json:"entity_id" gorm:"not null;index"`
	EventType  string `json:"event_type" gorm:"not null"`
	Data       string `json:"data" gorm:"type:text"`
}

// 事件类型
const (
	EventCampaignPublished      = "campaign_published"
	EventCampaignFunded         = "campaign_funded"
	EventCampaignUnfunded       = "campaign_unfunded"
	EventCampaignCancelled      = "campaign_cancelled"
	EventPledgeSettled          = "pledge_settled"
	EventReconciliationRequired = "reconciliation_required"
)

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
