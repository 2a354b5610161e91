package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/lifecycle"
	"github.com/blues/fundsy/internal/logger"
	"github.com/blues/fundsy/internal/model"
	"gorm.io/gorm"
)

// Trigger 目标核算触发器。
// 实现方需要在 at 时刻调用活动的目标核算，允许至少一次触发，
// 重复触发由状态机守卫兜底。
type Trigger interface {
	Schedule(campaignId int64, at time.Time) error
}

// CampaignLogic 活动业务逻辑
type CampaignLogic struct {
	db          *gorm.DB
	machine     *lifecycle.Machine
	pledgeLogic *PledgeLogic
	trigger     Trigger
	recorder    *event.Recorder
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB, trigger Trigger, recorder *event.Recorder) *CampaignLogic {
	return &CampaignLogic{
		db:          db,
		machine:     lifecycle.NewMachine(db),
		pledgeLogic: NewPledgeLogic(db),
		trigger:     trigger,
		recorder:    recorder,
	}
}

// CreateCampaign 创建活动，初始状态为草稿
func (c *CampaignLogic) CreateCampaign(campaign *model.CampaignModel) error {
	if err := c.validateCampaign(campaign); err != nil {
		return err
	}

	// 标题唯一
	var count int64
	if err := c.db.Model(&model.CampaignModel{}).
		Where("title = ?", campaign.Title).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check campaign title: %w", err)
	}
	if count > 0 {
		return ErrTitleTaken
	}

	campaign.Status = model.CampaignStatusDraft
	if err := c.db.Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// GetCampaigns 获取活动列表
func (c *CampaignLogic) GetCampaigns() ([]model.CampaignModel, error) {
	var campaigns []model.CampaignModel
	if err := c.db.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign 获取活动详情
func (c *CampaignLogic) GetCampaign(id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := c.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to fetch campaign %d: %w", id, err)
	}
	return &campaign, nil
}

// PublishCampaign 发布活动并预约截止时间的目标核算
func (c *CampaignLogic) PublishCampaign(id int64) error {
	if _, err := c.machine.Apply(id, lifecycle.EventPublish); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}

	campaign, err := c.GetCampaign(id)
	if err != nil {
		return err
	}

	// 预约失败不回滚发布，周期巡检任务会兜底
	if err := c.trigger.Schedule(id, campaign.EndDate); err != nil {
		logger.Error("Failed to schedule goal evaluation for campaign %d: %v", id, err)
	}

	c.recorder.Record("campaign", id, model.EventCampaignPublished, "")
	logger.Info("Campaign %d published, goal evaluation scheduled at %s",
		id, campaign.EndDate.Format(time.RFC3339))

	return nil
}

// CancelCampaign 取消活动，已取消的活动不再参与目标核算
func (c *CampaignLogic) CancelCampaign(id int64) error {
	if _, err := c.machine.Apply(id, lifecycle.EventCancel); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}

	c.recorder.Record("campaign", id, model.EventCampaignCancelled, "")
	logger.Info("Campaign %d cancelled", id)

	return nil
}

// DeleteCampaign 删除活动并级联删除其认捐记录
func (c *CampaignLogic) DeleteCampaign(id int64) error {
	campaign, err := c.GetCampaign(id)
	if err != nil {
		return err
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&model.PledgeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete pledges of campaign %d: %w", id, err)
		}
		if err := tx.Delete(campaign).Error; err != nil {
			return fmt.Errorf("failed to delete campaign %d: %w", id, err)
		}
		return nil
	})
}

// EvaluateGoal 活动截止后的目标核算：达标转 funded，否则转 unfunded。
//
// 触发器和巡检任务都会调到这里，活动已离开 published 状态时直接视为
// 无事发生，不报错。
func (c *CampaignLogic) EvaluateGoal(id int64) error {
	campaign, err := c.GetCampaign(id)
	if err != nil {
		return err
	}

	met, err := c.pledgeLogic.GoalMet(campaign)
	if err != nil {
		return err
	}

	ev := lifecycle.EventUnfund
	eventType := model.EventCampaignUnfunded
	if met {
		ev = lifecycle.EventFund
		eventType = model.EventCampaignFunded
	}

	if _, err := c.machine.Apply(id, ev); err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			// 已核算过或已取消
			logger.Debug("Goal evaluation for campaign %d skipped in status %s", id, campaign.Status)
			return nil
		}
		return err
	}

	c.recorder.Record("campaign", id, eventType, "")
	logger.Info("Campaign %d evaluated, goal met: %v", id, met)

	return nil
}

// validateCampaign 校验活动数据
func (c *CampaignLogic) validateCampaign(campaign *model.CampaignModel) error {
	if campaign.Title == "" {
		return ErrTitleRequired
	}
	if campaign.Goal <= model.MinGoal {
		return ErrGoalTooLow
	}
	if campaign.EndDate.IsZero() || campaign.EndDate.Before(time.Now()) {
		return ErrEndDateInvalid
	}
	return nil
}
