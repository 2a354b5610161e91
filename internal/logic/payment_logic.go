package logic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/gateway"
	"github.com/blues/fundsy/internal/logger"
	"github.com/blues/fundsy/internal/model"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// PaymentRequest 一次支付提交
type PaymentRequest struct {
	Token    string // 客户端换取的一次性支付令牌
	UserId   int64
	PledgeId int64
}

// PaymentLogic 支付编排。
//
// 单次支付按严格顺序执行：确保付款人已注册 → 扣款 → 落库交易号，
// 任何一步失败立即终止。除对账类错误外，失败后认捐保持未支付，
// 出资人可以安全重试（付款人标识复用，扣款是新的独立交易）。
type PaymentLogic struct {
	db       *gorm.DB
	gateway  gateway.Gateway
	recorder *event.Recorder
	regGroup singleflight.Group
}

// NewPaymentLogic 创建支付编排逻辑
func NewPaymentLogic(db *gorm.DB, gw gateway.Gateway, recorder *event.Recorder) *PaymentLogic {
	return &PaymentLogic{
		db:       db,
		gateway:  gw,
		recorder: recorder,
	}
}

// HandlePayment 执行一次支付
func (p *PaymentLogic) HandlePayment(ctx context.Context, req PaymentRequest) error {
	var pledge model.PledgeModel
	if err := p.db.First(&pledge, req.PledgeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPledgeNotFound
		}
		return fmt.Errorf("failed to fetch pledge %d: %w", req.PledgeId, err)
	}
	if pledge.Settled() {
		return ErrPledgeAlreadySettled
	}

	var user model.UserModel
	if err := p.db.First(&user, req.UserId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to fetch user %d: %w", req.UserId, err)
	}

	customerId, err := p.ensurePayer(ctx, &user, req.Token)
	if err != nil {
		// 未发生扣款，认捐保持未支付
		return err
	}

	amountMinor := AmountToMinorUnits(pledge.Amount)
	description := fmt.Sprintf("Charge for pledge id %d", pledge.Id)

	txnId, err := p.gateway.ChargePayer(ctx, customerId, amountMinor, description)
	if err != nil {
		if gateway.IsAmbiguous(err) {
			logger.Error("Charge outcome unknown for pledge %d: %v", pledge.Id, err)
			p.createReconciliation(&pledge, amountMinor, "",
				model.ReconciliationReasonAmbiguousChargeOutcome)
			return ErrAmbiguousOutcome
		}
		return err
	}

	// 交易号一次性写入，这一步成功才算完成支付
	result := p.db.Model(&model.PledgeModel{}).
		Where("id = ? AND txn_id = ''", pledge.Id).
		Update("txn_id", txnId)
	if result.Error != nil || result.RowsAffected == 0 {
		// 钱已扣走但结果没有落库，必须走人工对账而不是让出资人重试
		logger.Error("Failed to record settlement for pledge %d, txn %s: %v",
			pledge.Id, txnId, result.Error)
		p.createReconciliation(&pledge, amountMinor, txnId,
			model.ReconciliationReasonSettlementRecordFailed)
		return ErrSettlementRecordFailed
	}

	p.recorder.Record("pledge", pledge.Id, model.EventPledgeSettled, txnId)
	logger.Info("Pledge %d settled with txn %s", pledge.Id, txnId)

	return nil
}

// ensurePayer 确保用户在网关注册过付款人，返回可用于扣款的付款人标识。
//
// 同一用户的并发注册用 singleflight 串行化，落库用带条件的 UPDATE
// 保证至多一次写入；竞争失败方读回赢家写入的标识，不再重复注册。
func (p *PaymentLogic) ensurePayer(ctx context.Context, user *model.UserModel, token string) (string, error) {
	if user.Registered() {
		return user.GatewayCustomerId, nil
	}

	key := strconv.FormatInt(user.Id, 10)
	v, err, _ := p.regGroup.Do(key, func() (interface{}, error) {
		var fresh model.UserModel
		if err := p.db.First(&fresh, user.Id).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch user %d: %w", user.Id, err)
		}
		if fresh.Registered() {
			return fresh.GatewayCustomerId, nil
		}

		description := fmt.Sprintf("Customer for user id %d", user.Id)
		payer, err := p.gateway.RegisterPayer(ctx, token, description)
		if err != nil {
			return nil, err
		}

		result := p.db.Model(&model.UserModel{}).
			Where("id = ? AND gateway_customer_id = ''", user.Id).
			Updates(map[string]interface{}{
				"gateway_customer_id": payer.CustomerId,
				"card_brand":          payer.CardBrand,
				"card_last4":          payer.CardLast4,
				"card_exp_month":      payer.CardExpMonth,
				"card_exp_year":       payer.CardExpYear,
			})
		if result.Error != nil {
			return nil, fmt.Errorf("failed to save gateway customer for user %d: %w", user.Id, result.Error)
		}
		if result.RowsAffected == 0 {
			// 其他请求先注册成功，读回复用
			if err := p.db.First(&fresh, user.Id).Error; err != nil {
				return nil, fmt.Errorf("failed to fetch user %d: %w", user.Id, err)
			}
			return fresh.GatewayCustomerId, nil
		}

		logger.Info("Registered gateway customer %s for user %d", payer.CustomerId, user.Id)
		return payer.CustomerId, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// createReconciliation 创建对账记录并发出告警事件
func (p *PaymentLogic) createReconciliation(pledge *model.PledgeModel, amountMinor int64, txnId, reason string) {
	record := model.ReconciliationRecordModel{
		PledgeId:    pledge.Id,
		UserId:      pledge.UserId,
		AmountMinor: amountMinor,
		TxnId:       txnId,
		Reason:      reason,
		Status:      model.ReconciliationStatusPending,
	}
	if err := p.db.Create(&record).Error; err != nil {
		// 对账记录本身写不进去只能靠日志兜底
		logger.Error("Failed to create reconciliation record for pledge %d (%s): %v",
			pledge.Id, reason, err)
		return
	}

	p.recorder.Record("pledge", pledge.Id, model.EventReconciliationRequired, reason)
}

// AmountToMinorUnits 元转分。
// 认捐金额不支持分以下精度，按四舍五入取整后交给网关。
func AmountToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
