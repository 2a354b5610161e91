package task

import (
	"fmt"
	"time"

	"github.com/blues/fundsy/internal/config"
	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/logger"
	"github.com/blues/fundsy/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器。
// 同时承担两件事：活动发布时按截止时间预约一次性的目标核算任务
// （logic.Trigger 的实现），以及注册周期巡检任务兜底进程重启后丢失的预约。
type Manager struct {
	scheduler     gocron.Scheduler
	pool          *ants.Pool
	db            *gorm.DB
	config        *config.Config
	campaignLogic *logic.CampaignLogic
}

// NewManager 创建任务管理器
func NewManager(db *gorm.DB, cfg *config.Config, recorder *event.Recorder) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	workers := cfg.Task.Workers
	if workers <= 0 {
		workers = 8
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.Fatal("Failed to create task pool: %v", err)
	}

	m := &Manager{
		scheduler: s,
		pool:      pool,
		db:        db,
		config:    cfg,
	}
	m.campaignLogic = logic.NewCampaignLogic(db, m, recorder)

	return m
}

// Start 启动任务管理器
func Start(db *gorm.DB, cfg *config.Config, recorder *event.Recorder) *Manager {
	manager := NewManager(db, cfg, recorder)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// Schedule 预约活动截止时间的目标核算，实现 logic.Trigger
func (m *Manager) Schedule(campaignId int64, at time.Time) error {
	// 截止时间已过的直接核算
	if !at.After(time.Now()) {
		return m.pool.Submit(func() {
			m.evaluate(campaignId)
		})
	}

	_, err := m.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(func() {
			m.evaluate(campaignId)
		}),
		gocron.WithName(fmt.Sprintf("goal_evaluation_%d", campaignId)),
	)
	return err
}

// evaluate 执行一次目标核算，重复触发由状态机守卫挡掉
func (m *Manager) evaluate(campaignId int64) {
	if err := m.campaignLogic.EvaluateGoal(campaignId); err != nil {
		logger.Error("Goal evaluation failed for campaign %d: %v", campaignId, err)
	}
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册目标核算巡检任务
	m.RegisterGoalCheckJob()
}

// RegisterGoalCheckJob 注册目标核算巡检任务
func (m *Manager) RegisterGoalCheckJob() {
	job := NewGoalCheckJob(m.db, m.config, m.campaignLogic, m.pool)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	m.pool.Release()
	logger.Info("Task manager stopped")
}
