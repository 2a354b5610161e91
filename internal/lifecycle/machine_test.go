package lifecycle

import (
	"testing"
	"time"

	"github.com/blues/fundsy/internal/database"
	"github.com/blues/fundsy/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createCampaign(t *testing.T, db *gorm.DB, status model.CampaignStatus) *model.CampaignModel {
	t.Helper()

	campaign := &model.CampaignModel{
		Title:     "campaign-" + string(status) + "-" + time.Now().String(),
		Goal:      100,
		EndDate:   time.Now().Add(24 * time.Hour),
		Status:    status,
		CreatorId: 1,
	}
	require.NoError(t, db.Create(campaign).Error)
	return campaign
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    model.CampaignStatus
		event   Event
		allowed bool
	}{
		{model.CampaignStatusDraft, EventPublish, true},
		{model.CampaignStatusDraft, EventCancel, true},
		{model.CampaignStatusDraft, EventFund, false},
		{model.CampaignStatusDraft, EventUnfund, false},

		{model.CampaignStatusPublished, EventFund, true},
		{model.CampaignStatusPublished, EventUnfund, true},
		{model.CampaignStatusPublished, EventCancel, true},
		{model.CampaignStatusPublished, EventPublish, false},

		{model.CampaignStatusFunded, EventPublish, false},
		{model.CampaignStatusFunded, EventFund, false},
		{model.CampaignStatusFunded, EventUnfund, false},
		{model.CampaignStatusFunded, EventCancel, false},

		{model.CampaignStatusUnfunded, EventPublish, false},
		{model.CampaignStatusUnfunded, EventFund, false},
		{model.CampaignStatusUnfunded, EventUnfund, false},
		{model.CampaignStatusUnfunded, EventCancel, false},

		{model.CampaignStatusCancelled, EventPublish, false},
		{model.CampaignStatusCancelled, EventFund, false},
		{model.CampaignStatusCancelled, EventUnfund, false},
		{model.CampaignStatusCancelled, EventCancel, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanFire(tc.from, tc.event),
			"from %s event %s", tc.from, tc.event)
	}
}

func TestApplyPublish(t *testing.T) {
	db := newTestDB(t)
	m := NewMachine(db)
	campaign := createCampaign(t, db, model.CampaignStatusDraft)

	status, err := m.Apply(campaign.Id, EventPublish)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusPublished, status)

	var reloaded model.CampaignModel
	require.NoError(t, db.First(&reloaded, campaign.Id).Error)
	assert.Equal(t, model.CampaignStatusPublished, reloaded.Status)
}

func TestApplyInvalidTransitionKeepsStatus(t *testing.T) {
	db := newTestDB(t)
	m := NewMachine(db)
	campaign := createCampaign(t, db, model.CampaignStatusDraft)

	_, err := m.Apply(campaign.Id, EventFund)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var reloaded model.CampaignModel
	require.NoError(t, db.First(&reloaded, campaign.Id).Error)
	assert.Equal(t, model.CampaignStatusDraft, reloaded.Status)
}

func TestApplySecondFundRejected(t *testing.T) {
	db := newTestDB(t)
	m := NewMachine(db)
	campaign := createCampaign(t, db, model.CampaignStatusPublished)

	_, err := m.Apply(campaign.Id, EventFund)
	require.NoError(t, err)

	_, err = m.Apply(campaign.Id, EventFund)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Apply(campaign.Id, EventUnfund)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var reloaded model.CampaignModel
	require.NoError(t, db.First(&reloaded, campaign.Id).Error)
	assert.Equal(t, model.CampaignStatusFunded, reloaded.Status)
}

func TestApplyCancelledIsTerminal(t *testing.T) {
	db := newTestDB(t)
	m := NewMachine(db)
	campaign := createCampaign(t, db, model.CampaignStatusPublished)

	_, err := m.Apply(campaign.Id, EventCancel)
	require.NoError(t, err)

	for _, ev := range []Event{EventPublish, EventFund, EventUnfund, EventCancel} {
		_, err := m.Apply(campaign.Id, ev)
		assert.ErrorIs(t, err, ErrInvalidTransition, "event %s", ev)
	}

	var reloaded model.CampaignModel
	require.NoError(t, db.First(&reloaded, campaign.Id).Error)
	assert.Equal(t, model.CampaignStatusCancelled, reloaded.Status)
}

func TestApplyCampaignNotFound(t *testing.T) {
	db := newTestDB(t)
	m := NewMachine(db)

	_, err := m.Apply(9999, EventPublish)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
