package model

import (
	"time"
)

// PledgeModel 认捐记录
type PledgeModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64   `json:"campaign_id" gorm:"not null;index"`
	UserId     int64   `json:"user_id" gorm:"not null;index"`
	Amount     float64 `json:"amount" gorm:"not null"`

	// 网关交易号，扣款成功后一次性写入；为空表示尚未完成支付
	TxnId string `json:"txn_id" gorm:"default:''"`
}

// Settled 是否已完成支付
func (p *PledgeModel) Settled() bool {
	return p.TxnId != ""
}

// TableName 自定义表名
func (PledgeModel) TableName() string {
	return "pledge"
}
