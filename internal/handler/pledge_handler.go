package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fundsy/internal/logic"
	"github.com/blues/fundsy/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PledgeHandler struct {
	pledgeLogic *logic.PledgeLogic
}

func NewPledgeHandler(db *gorm.DB) *PledgeHandler {
	return &PledgeHandler{
		pledgeLogic: logic.NewPledgeLogic(db),
	}
}

// CreatePledge 对活动创建认捐
func (h *PledgeHandler) CreatePledge(c *gin.Context) {
	campaignId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req CreatePledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	pledge := model.PledgeModel{
		CampaignId: campaignId,
		UserId:     req.UserId,
		Amount:     req.Amount,
	}

	if err := h.pledgeLogic.CreatePledge(&pledge); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "认捐成功", ToPledgeResponse(&pledge))
}
