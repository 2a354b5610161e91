package logic

import (
	"errors"
)

// 校验类错误，调用方修正输入后可直接重试
var (
	ErrTitleRequired  = errors.New("活动标题不能为空")
	ErrTitleTaken     = errors.New("活动标题已存在")
	ErrGoalTooLow     = errors.New("目标金额必须大于10")
	ErrEndDateInvalid = errors.New("截止时间必须晚于当前时间")
	ErrAmountInvalid  = errors.New("认捐金额必须大于0")
	ErrNameRequired   = errors.New("姓名不能为空")
	ErrEmailRequired  = errors.New("邮箱不能为空")
	ErrEmailTaken     = errors.New("邮箱已被注册")
)

// 资源类错误
var (
	ErrCampaignNotFound = errors.New("活动不存在")
	ErrPledgeNotFound   = errors.New("认捐记录不存在")
	ErrUserNotFound     = errors.New("用户不存在")
)

// 支付编排错误
var (
	// ErrCampaignNotPublished 活动未发布，不接受认捐
	ErrCampaignNotPublished = errors.New("活动未发布，无法认捐")

	// ErrPledgeAlreadySettled 认捐已有交易号，不允许重复支付
	ErrPledgeAlreadySettled = errors.New("认捐已完成支付")

	// ErrSettlementRecordFailed 扣款成功但交易号落库失败。
	// 钱已扣走而认捐仍为未支付，禁止出资人重试，转入人工对账。
	ErrSettlementRecordFailed = errors.New("扣款结果落库失败，已转入对账")

	// ErrAmbiguousOutcome 扣款请求已发出但结果未知，同样转入人工对账
	ErrAmbiguousOutcome = errors.New("扣款结果未知，已转入对账")
)
