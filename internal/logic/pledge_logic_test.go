package logic

import (
	"testing"

	"github.com/blues/fundsy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.UserModel {
	t.Helper()

	user := &model.UserModel{FirstName: "Jane", LastName: "Doe", Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPublishedCampaign(t *testing.T, db *gorm.DB, title string, goal float64) *model.CampaignModel {
	t.Helper()

	c, _ := newCampaignLogic(t, db)
	campaign := validCampaign(title)
	campaign.Goal = goal
	require.NoError(t, c.CreateCampaign(campaign))
	require.NoError(t, c.PublishCampaign(campaign.Id))
	return campaign
}

func TestCreatePledge(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	user := createTestUser(t, db, "jane@example.com")
	campaign := createPublishedCampaign(t, db, "pledge target", 100)

	pledge := &model.PledgeModel{CampaignId: campaign.Id, UserId: user.Id, Amount: 25}
	require.NoError(t, p.CreatePledge(pledge))

	assert.NotZero(t, pledge.Id)
	assert.False(t, pledge.Settled())
}

func TestCreatePledgeValidations(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	user := createTestUser(t, db, "jane@example.com")
	campaign := createPublishedCampaign(t, db, "pledge target", 100)

	assert.ErrorIs(t, p.CreatePledge(&model.PledgeModel{
		CampaignId: campaign.Id, UserId: user.Id, Amount: 0,
	}), ErrAmountInvalid)

	assert.ErrorIs(t, p.CreatePledge(&model.PledgeModel{
		CampaignId: 404, UserId: user.Id, Amount: 25,
	}), ErrCampaignNotFound)

	assert.ErrorIs(t, p.CreatePledge(&model.PledgeModel{
		CampaignId: campaign.Id, UserId: 404, Amount: 25,
	}), ErrUserNotFound)
}

func TestCreatePledgeRequiresPublishedCampaign(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	c, _ := newCampaignLogic(t, db)
	user := createTestUser(t, db, "jane@example.com")

	draft := validCampaign("still a draft")
	require.NoError(t, c.CreateCampaign(draft))

	assert.ErrorIs(t, p.CreatePledge(&model.PledgeModel{
		CampaignId: draft.Id, UserId: user.Id, Amount: 25,
	}), ErrCampaignNotPublished)
}

// 未支付的认捐也计入累计金额，这是沿用原有系统的口径而不是疏漏；
// 改变口径时必须同步改掉这个测试。
func TestTotalPledgedCountsUnsettledPledges(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	user := createTestUser(t, db, "jane@example.com")
	campaign := createPublishedCampaign(t, db, "commitment counts", 100)

	settled := &model.PledgeModel{CampaignId: campaign.Id, UserId: user.Id, Amount: 60}
	require.NoError(t, p.CreatePledge(settled))
	require.NoError(t, db.Model(settled).Update("txn_id", "ch_123").Error)

	unsettled := &model.PledgeModel{CampaignId: campaign.Id, UserId: user.Id, Amount: 50}
	require.NoError(t, p.CreatePledge(unsettled))

	total, err := p.TotalPledged(campaign.Id)
	require.NoError(t, err)
	assert.Equal(t, float64(110), total)
}

func TestTotalPledgedEmptyCampaign(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	campaign := createPublishedCampaign(t, db, "no pledges", 100)

	total, err := p.TotalPledged(campaign.Id)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGoalMetBoundary(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	user := createTestUser(t, db, "jane@example.com")
	campaign := createPublishedCampaign(t, db, "boundary", 100)

	require.NoError(t, p.CreatePledge(&model.PledgeModel{
		CampaignId: campaign.Id, UserId: user.Id, Amount: 99,
	}))

	met, err := p.GoalMet(campaign)
	require.NoError(t, err)
	assert.False(t, met)

	// 刚好达到目标即算达标
	require.NoError(t, p.CreatePledge(&model.PledgeModel{
		CampaignId: campaign.Id, UserId: user.Id, Amount: 1,
	}))

	met, err = p.GoalMet(campaign)
	require.NoError(t, err)
	assert.True(t, met)
}

func TestGetCampaignPledges(t *testing.T) {
	db := newTestDB(t)
	p := NewPledgeLogic(db)
	user := createTestUser(t, db, "jane@example.com")
	campaign := createPublishedCampaign(t, db, "paged", 100)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.CreatePledge(&model.PledgeModel{
			CampaignId: campaign.Id, UserId: user.Id, Amount: 10,
		}))
	}

	pledges, total, err := p.GetCampaignPledges(campaign.Id, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, pledges, 2)
}
