package gateway

import (
	"context"
)

// Payer 网关侧付款人信息，注册成功后由调用方落库
type Payer struct {
	CustomerId   string // 网关分配的付款人标识
	CardBrand    string
	CardLast4    string
	CardExpMonth int64
	CardExpYear  int64
}

// Gateway 支付网关适配器。
//
// 适配器内部不做任何重试，瞬时错误原样上抛由编排方决策。
type Gateway interface {
	// RegisterPayer 用一次性支付令牌在网关注册付款人
	RegisterPayer(ctx context.Context, token, description string) (*Payer, error)

	// ChargePayer 对已注册付款人扣款，金额单位为分
	ChargePayer(ctx context.Context, customerId string, amountMinor int64, description string) (string, error)
}
