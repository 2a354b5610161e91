package handler

import (
	"time"

	"github.com/blues/fundsy/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// 请求模型

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Goal        float64   `json:"goal" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	CreatorId   int64     `json:"creator_id" binding:"required"`
}

// CreatePledgeRequest 创建认捐请求
type CreatePledgeRequest struct {
	UserId int64   `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// SubmitPaymentRequest 提交支付请求
type SubmitPaymentRequest struct {
	UserId int64  `json:"user_id" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

// CreateUserRequest 注册用户请求
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// 响应模型

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Goal        float64   `json:"goal"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	CreatorId   int64     `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PledgeResponse 认捐响应模型
type PledgeResponse struct {
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaignId"`
	UserID     int64     `json:"userId"`
	Amount     float64   `json:"amount"`
	Settled    bool      `json:"settled"`
	TxnID      string    `json:"txnId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserResponse 用户响应模型，卡信息只回显展示缓存
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CardBrand string `json:"cardBrand,omitempty"`
	CardLast4 string `json:"cardLast4,omitempty"`
}

// 转换函数

// ToCampaignResponse 将数据库模型转换为响应模型
func ToCampaignResponse(campaign *model.CampaignModel) CampaignResponse {
	return CampaignResponse{
		ID:          campaign.Id,
		Title:       campaign.Title,
		Description: campaign.Description,
		Goal:        campaign.Goal,
		EndDate:     campaign.EndDate,
		Status:      string(campaign.Status),
		CreatorId:   campaign.CreatorId,
		CreatedAt:   campaign.CreatedAt,
		UpdatedAt:   campaign.UpdatedAt,
	}
}

// ToCampaignResponseList 将数据库模型列表转换为响应模型列表
func ToCampaignResponseList(campaigns []model.CampaignModel) []CampaignResponse {
	result := make([]CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		result[i] = ToCampaignResponse(&campaign)
	}
	return result
}

// ToPledgeResponse 将认捐数据库模型转换为响应模型
func ToPledgeResponse(pledge *model.PledgeModel) PledgeResponse {
	return PledgeResponse{
		ID:         pledge.Id,
		CampaignID: pledge.CampaignId,
		UserID:     pledge.UserId,
		Amount:     pledge.Amount,
		Settled:    pledge.Settled(),
		TxnID:      pledge.TxnId,
		CreatedAt:  pledge.CreatedAt,
	}
}

// ToPledgeResponseList 将认捐数据库模型列表转换为响应模型列表
func ToPledgeResponseList(pledges []model.PledgeModel) []PledgeResponse {
	result := make([]PledgeResponse, len(pledges))
	for i, pledge := range pledges {
		result[i] = ToPledgeResponse(&pledge)
	}
	return result
}

// ToUserResponse 将用户数据库模型转换为响应模型
func ToUserResponse(user *model.UserModel) UserResponse {
	return UserResponse{
		ID:        user.Id,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CardBrand: user.CardBrand,
		CardLast4: user.CardLast4,
	}
}
