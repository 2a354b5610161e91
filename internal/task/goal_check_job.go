package task

import (
	"sync"
	"time"

	"github.com/blues/fundsy/internal/config"
	"github.com/blues/fundsy/internal/logger"
	"github.com/blues/fundsy/internal/logic"
	"github.com/blues/fundsy/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// GoalCheckJob 目标核算巡检任务。
// 一次性预约任务只存在于进程内存，重启后会丢失；巡检任务周期性扫描
// 已过截止时间仍处于 published 状态的活动补上核算。
type GoalCheckJob struct {
	db            *gorm.DB
	config        *config.Config
	campaignLogic *logic.CampaignLogic
	pool          *ants.Pool
}

// NewGoalCheckJob 创建目标核算巡检任务
func NewGoalCheckJob(db *gorm.DB, cfg *config.Config, campaignLogic *logic.CampaignLogic, pool *ants.Pool) *GoalCheckJob {
	return &GoalCheckJob{
		db:            db,
		config:        cfg,
		campaignLogic: campaignLogic,
		pool:          pool,
	}
}

// GetName 获取任务名称
func (j *GoalCheckJob) GetName() string {
	return "campaign_goal_checker"
}

// GetSchedule 获取调度配置
func (j *GoalCheckJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *GoalCheckJob) Execute() {
	logger.Info("Starting campaign goal check task")

	now := time.Now()

	// 查找需要核算的活动：状态为已发布且截止时间小于等于当前时间
	var campaigns []model.CampaignModel
	err := j.db.Where("status = ? AND end_date <= ?",
		model.CampaignStatusPublished, now).Find(&campaigns).Error

	if err != nil {
		logger.Error("Failed to fetch campaigns for goal check: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, campaign := range campaigns {
		campaignId := campaign.Id
		wg.Add(1)
		run := func() {
			defer wg.Done()
			if err := j.campaignLogic.EvaluateGoal(campaignId); err != nil {
				logger.Error("Goal evaluation failed for campaign %d: %v", campaignId, err)
			}
		}
		if err := j.pool.Submit(run); err != nil {
			run()
		}
	}
	wg.Wait()

	logger.Info("Campaign goal check completed. Checked %d campaigns", len(campaigns))
}
