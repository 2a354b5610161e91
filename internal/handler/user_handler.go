package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fundsy/internal/logic"
	"github.com/blues/fundsy/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userLogic *logic.UserLogic
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userLogic: logic.NewUserLogic(db),
	}
}

// CreateUser 注册用户
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user := model.UserModel{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := h.userLogic.CreateUser(&user); err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "用户注册成功", ToUserResponse(&user))
}

// GetUser 获取用户详情
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	user, err := h.userLogic.GetUser(id)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToUserResponse(user))
}
