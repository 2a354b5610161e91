package handler

import (
	"errors"
	"net/http"

	"github.com/blues/fundsy/internal/gateway"
	"github.com/blues/fundsy/internal/lifecycle"
	"github.com/blues/fundsy/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailWith 按错误分类映射HTTP状态码后返回错误响应
func FailWith(c *gin.Context, err error) {
	ErrorResponse(c, statusFor(err), err.Error())
}

// statusFor 业务错误到HTTP状态码的映射，错误分类本身保持稳定
func statusFor(err error) int {
	switch {
	case errors.Is(err, logic.ErrCampaignNotFound),
		errors.Is(err, logic.ErrPledgeNotFound),
		errors.Is(err, logic.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, logic.ErrTitleRequired),
		errors.Is(err, logic.ErrTitleTaken),
		errors.Is(err, logic.ErrGoalTooLow),
		errors.Is(err, logic.ErrEndDateInvalid),
		errors.Is(err, logic.ErrAmountInvalid),
		errors.Is(err, logic.ErrNameRequired),
		errors.Is(err, logic.ErrEmailRequired),
		errors.Is(err, logic.ErrEmailTaken),
		errors.Is(err, logic.ErrCampaignNotPublished),
		errors.Is(err, logic.ErrPledgeAlreadySettled):
		return http.StatusUnprocessableEntity

	case errors.Is(err, logic.ErrSettlementRecordFailed),
		errors.Is(err, logic.ErrAmbiguousOutcome):
		// 对账类错误，调用方不能简单重试
		return http.StatusBadGateway
	}

	switch gateway.CodeOf(err) {
	case gateway.CodeInvalidToken, gateway.CodeRejected,
		gateway.CodePayerNotFound, gateway.CodeDeclined:
		return http.StatusPaymentRequired
	case gateway.CodeProviderUnavailable:
		return http.StatusServiceUnavailable
	case gateway.CodeAmbiguous:
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
