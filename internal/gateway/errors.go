package gateway

import (
	"errors"
	"fmt"
)

// Code 网关错误分类
type Code string

const (
	CodeInvalidToken        Code = "invalid_token"        // 支付令牌无效或已使用
	CodeRejected            Code = "rejected"             // 网关拒绝注册付款人
	CodePayerNotFound       Code = "payer_not_found"      // 付款人标识在网关不存在
	CodeDeclined            Code = "declined"             // 扣款被拒（余额不足等）
	CodeProviderUnavailable Code = "provider_unavailable" // 网关不可用，可稍后重试
	CodeAmbiguous           Code = "ambiguous_outcome"    // 扣款请求已发出但结果未知，禁止自动重试
)

// Error 网关调用错误
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf 取出错误分类，非网关错误返回空串
func CodeOf(err error) Code {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Code
	}
	return ""
}

// IsAmbiguous 扣款结果是否不确定
func IsAmbiguous(err error) bool {
	return CodeOf(err) == CodeAmbiguous
}
