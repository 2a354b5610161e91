package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fundsy/internal/model"
	"gorm.io/gorm"
)

// PledgeLogic 认捐业务逻辑
type PledgeLogic struct {
	db *gorm.DB
}

// NewPledgeLogic 创建认捐业务逻辑
func NewPledgeLogic(db *gorm.DB) *PledgeLogic {
	return &PledgeLogic{db: db}
}

// CreatePledge 创建认捐记录，创建时未支付
func (p *PledgeLogic) CreatePledge(pledge *model.PledgeModel) error {
	if pledge.Amount <= 0 {
		return ErrAmountInvalid
	}

	var campaign model.CampaignModel
	if err := p.db.First(&campaign, pledge.CampaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to fetch campaign %d: %w", pledge.CampaignId, err)
	}
	if campaign.Status != model.CampaignStatusPublished {
		return ErrCampaignNotPublished
	}

	var user model.UserModel
	if err := p.db.First(&user, pledge.UserId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to fetch user %d: %w", pledge.UserId, err)
	}

	pledge.TxnId = ""
	if err := p.db.Create(pledge).Error; err != nil {
		return fmt.Errorf("failed to create pledge: %w", err)
	}

	return nil
}

// GetPledge 获取认捐详情
func (p *PledgeLogic) GetPledge(id int64) (*model.PledgeModel, error) {
	var pledge model.PledgeModel
	if err := p.db.First(&pledge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPledgeNotFound
		}
		return nil, fmt.Errorf("failed to fetch pledge %d: %w", id, err)
	}
	return &pledge, nil
}

// GetCampaignPledges 获取活动认捐记录
func (p *PledgeLogic) GetCampaignPledges(campaignId int64, page, pageSize int) ([]model.PledgeModel, int64, error) {
	var pledges []model.PledgeModel
	var total int64

	if err := p.db.Model(&model.PledgeModel{}).
		Where("campaign_id = ?", campaignId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := p.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&pledges).Error; err != nil {
		return nil, 0, err
	}

	return pledges, total, nil
}

// TotalPledged 活动累计认捐金额。
//
// 口径沿用原有系统：已支付和未支付的认捐都计入，体现的是认捐承诺
// 而非到账金额。未支付认捐可能虚增达标判断，调整口径前先改这里的注释
// 和对应测试。
func (p *PledgeLogic) TotalPledged(campaignId int64) (float64, error) {
	var total float64
	if err := p.db.Model(&model.PledgeModel{}).
		Where("campaign_id = ?", campaignId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum pledges of campaign %d: %w", campaignId, err)
	}
	return total, nil
}

// GoalMet 活动是否达标
func (p *PledgeLogic) GoalMet(campaign *model.CampaignModel) (bool, error) {
	total, err := p.TotalPledged(campaign.Id)
	if err != nil {
		return false, err
	}
	return total >= campaign.Goal, nil
}
