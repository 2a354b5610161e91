package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/logic"
	"github.com/blues/fundsy/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	pledgeLogic   *logic.PledgeLogic
}

func NewCampaignHandler(db *gorm.DB, trigger logic.Trigger, recorder *event.Recorder) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db, trigger, recorder),
		pledgeLogic:   logic.NewPledgeLogic(db),
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	campaign := model.CampaignModel{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		EndDate:     req.EndDate,
		CreatorId:   req.CreatorId,
	}

	if err := h.campaignLogic.CreateCampaign(&campaign); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", ToCampaignResponse(&campaign))
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignLogic.GetCampaigns()
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToCampaignResponseList(campaigns))
}

// GetCampaign 获取单个活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(id)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToCampaignResponse(campaign))
}

// PublishCampaign 发布活动
func (h *CampaignHandler) PublishCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.campaignLogic.PublishCampaign(id); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已发布", nil)
}

// CancelCampaign 取消活动
func (h *CampaignHandler) CancelCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.campaignLogic.CancelCampaign(id); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已取消", nil)
}

// GetCampaignPledges 获取活动认捐记录
func (h *CampaignHandler) GetCampaignPledges(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	pledges, total, err := h.pledgeLogic.GetCampaignPledges(id, page, pageSize)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"pledges": ToPledgeResponseList(pledges),
		"pagination": Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}
