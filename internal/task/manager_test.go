package task

import (
	"testing"
	"time"

	"github.com/blues/fundsy/internal/logic"
	"github.com/blues/fundsy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleWithPastDeadlineEvaluatesImmediately(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db, newTestConfig(), newTestRecorder(t, db))
	defer manager.Stop()

	campaign := insertCampaign(t, db, "already due", 100, model.CampaignStatusPublished, time.Now().Add(-time.Hour))
	insertPledge(t, db, campaign.Id, 150)

	require.NoError(t, manager.Schedule(campaign.Id, campaign.EndDate))

	require.Eventually(t, func() bool {
		return campaignStatus(t, db, campaign.Id) == model.CampaignStatusFunded
	}, 2*time.Second, 10*time.Millisecond)
}

// 端到端：创建活动 → 发布 → 两笔认捐 → 截止时间触发核算 → 活动达标
func TestEndToEndGoalEvaluation(t *testing.T) {
	db := newTestDB(t)
	recorder := newTestRecorder(t, db)
	manager := Start(db, newTestConfig(), recorder)
	defer manager.Stop()

	campaignLogic := logic.NewCampaignLogic(db, manager, recorder)
	pledgeLogic := logic.NewPledgeLogic(db)

	user := &model.UserModel{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	require.NoError(t, db.Create(user).Error)

	campaign := &model.CampaignModel{
		Title:     "end to end",
		Goal:      500,
		EndDate:   time.Now().Add(500 * time.Millisecond),
		CreatorId: user.Id,
	}
	require.NoError(t, campaignLogic.CreateCampaign(campaign))
	require.NoError(t, campaignLogic.PublishCampaign(campaign.Id))

	require.NoError(t, pledgeLogic.CreatePledge(&model.PledgeModel{
		CampaignId: campaign.Id, UserId: user.Id, Amount: 300,
	}))
	require.NoError(t, pledgeLogic.CreatePledge(&model.PledgeModel{
		CampaignId: campaign.Id, UserId: user.Id, Amount: 300,
	}))

	require.Eventually(t, func() bool {
		return campaignStatus(t, db, campaign.Id) == model.CampaignStatusFunded
	}, 5*time.Second, 20*time.Millisecond)

	total, err := pledgeLogic.TotalPledged(campaign.Id)
	require.NoError(t, err)
	assert.Equal(t, float64(600), total)
}
