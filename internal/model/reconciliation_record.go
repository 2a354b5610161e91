package model

import (
	"time"
)

// ReconciliationRecordModel 对账记录
//
// 扣款结果不确定（已发出请求但响应超时）或扣款成功后落库失败时创建，
// 此类记录不允许出资人自行重试，需要人工核对网关流水后处理。
type ReconciliationRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PledgeId    int64  `json:"pledge_id" gorm:"not null;index"`
	UserId      int64  `json:"user_id" gorm:"not null"`
	AmountMinor int64  `json:"amount_minor" gorm:"not null"` // 金额（分）
	TxnId       string `json:"txn_id"`                       // 网关交易号（已知时记录）
	Reason      string `json:"reason" gorm:"not null"`
	Status      string `json:"status" gorm:"default:'pending'"` // pending, resolved
}

// 对账原因
const (
	ReconciliationReasonSettlementRecordFailed = "settlement_record_failed"
	ReconciliationReasonAmbiguousChargeOutcome = "ambiguous_charge_outcome"
)

// 对账状态
const (
	ReconciliationStatusPending  = "pending"
	ReconciliationStatusResolved = "resolved"
)

// TableName 自定义表名
func (ReconciliationRecordModel) TableName() string {
	return "reconciliation_record"
}
