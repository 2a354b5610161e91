package lifecycle

import (
	"errors"
	"fmt"

	"github.com/blues/fundsy/internal/model"
	"gorm.io/gorm"
)

// Event 活动状态事件
type Event string

const (
	EventPublish Event = "publish"
	EventFund    Event = "fund"
	EventUnfund  Event = "unfund"
	EventCancel  Event = "cancel"
)

// ErrInvalidTransition 当前状态不允许该事件，状态保持不变
var ErrInvalidTransition = errors.New("当前状态不允许该操作")

// transitions 状态转移表：事件 × 当前状态 → 目标状态。
// 表中没有的组合一律拒绝，funded/unfunded/cancelled 均为终态。
var transitions = map[Event]map[model.CampaignStatus]model.CampaignStatus{
	EventPublish: {
		model.CampaignStatusDraft: model.CampaignStatusPublished,
	},
	EventFund: {
		model.CampaignStatusPublished: model.CampaignStatusFunded,
	},
	EventUnfund: {
		model.CampaignStatusPublished: model.CampaignStatusUnfunded,
	},
	EventCancel: {
		model.CampaignStatusDraft:     model.CampaignStatusCancelled,
		model.CampaignStatusPublished: model.CampaignStatusCancelled,
	},
}

// Next 查表获取目标状态
func Next(from model.CampaignStatus, event Event) (model.CampaignStatus, bool) {
	to, ok := transitions[event][from]
	return to, ok
}

// CanFire 当前状态下事件是否允许
func CanFire(from model.CampaignStatus, event Event) bool {
	_, ok := Next(from, event)
	return ok
}

// Machine 活动状态机，活动状态的唯一写入方
type Machine struct {
	db *gorm.DB
}

// NewMachine 创建活动状态机
func NewMachine(db *gorm.DB) *Machine {
	return &Machine{db: db}
}

// Apply 对活动应用一个状态事件。
//
// 守卫检查和状态写入通过一条带状态条件的 UPDATE 完成，同一活动上的并发
// 事件最多只有一个生效；竞争失败方和非法事件一样收到 ErrInvalidTransition，
// 活动状态不受影响。
func (m *Machine) Apply(campaignId int64, event Event) (model.CampaignStatus, error) {
	var campaign model.CampaignModel
	if err := m.db.First(&campaign, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to load campaign %d: %w", campaignId, err)
	}

	to, ok := Next(campaign.Status, event)
	if !ok {
		return campaign.Status, ErrInvalidTransition
	}

	result := m.db.Model(&model.CampaignModel{}).
		Where("id = ? AND status = ?", campaignId, campaign.Status).
		Update("status", to)
	if result.Error != nil {
		return campaign.Status, fmt.Errorf("failed to update campaign %d status: %w", campaignId, result.Error)
	}
	if result.RowsAffected == 0 {
		// 状态在读取后被并发修改
		return campaign.Status, ErrInvalidTransition
	}

	return to, nil
}
