package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/blues/fundsy/internal/config"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// Client 基于 Stripe 的网关适配器
type Client struct {
	api      *client.API
	currency string
}

// Init 创建网关客户端。
// 每次调用都有超时上限，超时后由错误映射决定是否进入对账路径。
func Init(cfg config.GatewayConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gateway api_key is required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	api := &client.API{}
	api.Init(cfg.APIKey, stripe.NewBackends(&http.Client{Timeout: timeout}))

	currency := cfg.Currency
	if currency == "" {
		currency = "cad"
	}

	return &Client{api: api, currency: currency}, nil
}

// RegisterPayer 用一次性令牌注册付款人，返回网关付款人标识和卡信息缓存
func (c *Client) RegisterPayer(ctx context.Context, token, description string) (*Payer, error) {
	if token == "" {
		return nil, &Error{Code: CodeInvalidToken, Message: "payment token is empty"}
	}

	params := &stripe.CustomerParams{
		Description: stripe.String(description),
	}
	params.Context = ctx
	if err := params.SetSource(token); err != nil {
		return nil, &Error{Code: CodeInvalidToken, Message: "invalid payment token", Cause: err}
	}

	customer, err := c.api.Customers.New(params)
	if err != nil {
		return nil, mapRegisterError(err)
	}

	payer := &Payer{CustomerId: customer.ID}
	if customer.Sources != nil && len(customer.Sources.Data) > 0 && customer.Sources.Data[0].Card != nil {
		card := customer.Sources.Data[0].Card
		payer.CardBrand = string(card.Brand)
		payer.CardLast4 = card.Last4
		payer.CardExpMonth = int64(card.ExpMonth)
		payer.CardExpYear = int64(card.ExpYear)
	}

	return payer, nil
}

// ChargePayer 对付款人扣款，amountMinor 为分为单位的整数金额
func (c *Client) ChargePayer(ctx context.Context, customerId string, amountMinor int64, description string) (string, error) {
	if amountMinor <= 0 {
		return "", &Error{Code: CodeDeclined, Message: "charge amount must be positive"}
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(c.currency),
		Customer:    stripe.String(customerId),
		Description: stripe.String(description),
	}
	params.Context = ctx

	charge, err := c.api.Charges.New(params)
	if err != nil {
		return "", mapChargeError(err)
	}

	return charge.ID, nil
}

// mapRegisterError 注册阶段的错误映射。
// 注册没有发生扣款，传输层失败可以安全地按网关不可用处理。
func mapRegisterError(err error) *Error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &Error{Code: CodeProviderUnavailable, Message: "provider request failed", Cause: err}
	}

	switch {
	case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
		return &Error{Code: CodeInvalidToken, Message: "provider rejected the payment token", Cause: err}
	case stripeErr.Type == stripe.ErrorTypeCard:
		return &Error{Code: CodeRejected, Message: "provider rejected the payer", Cause: err}
	default:
		return &Error{Code: CodeProviderUnavailable, Message: "provider error", Cause: err}
	}
}

// mapChargeError 扣款阶段的错误映射。
// 请求可能已经到达网关，响应超时等传输层失败不能当作未扣款，
// 必须映射为结果不确定，由对账流程兜底。
func mapChargeError(err error) *Error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &Error{Code: CodeAmbiguous, Message: "charge outcome unknown", Cause: err}
	}

	switch {
	case stripeErr.Code == stripe.ErrorCodeResourceMissing:
		return &Error{Code: CodePayerNotFound, Message: "payer not found at provider", Cause: err}
	case stripeErr.Type == stripe.ErrorTypeCard:
		return &Error{Code: CodeDeclined, Message: "charge declined", Cause: err}
	default:
		return &Error{Code: CodeProviderUnavailable, Message: "provider error", Cause: err}
	}
}
