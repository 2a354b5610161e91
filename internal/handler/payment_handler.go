package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/gateway"
	"github.com/blues/fundsy/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	paymentLogic *logic.PaymentLogic
}

func NewPaymentHandler(db *gorm.DB, gw gateway.Gateway, recorder *event.Recorder) *PaymentHandler {
	return &PaymentHandler{
		paymentLogic: logic.NewPaymentLogic(db, gw, recorder),
	}
}

// SubmitPayment 对认捐提交支付
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	pledgeId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的认捐ID")
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err = h.paymentLogic.HandlePayment(c.Request.Context(), logic.PaymentRequest{
		Token:    req.Token,
		UserId:   req.UserId,
		PledgeId: pledgeId,
	})
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "支付成功", nil)
}
