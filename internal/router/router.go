package router

import (
	"github.com/blues/fundsy/internal/config"
	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/gateway"
	"github.com/blues/fundsy/internal/handler"
	"github.com/blues/fundsy/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, gw gateway.Gateway, trigger logic.Trigger, recorder *event.Recorder, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fundsy",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(db, trigger, recorder)
		pledgeHandler := handler.NewPledgeHandler(db)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.POST("/:id/publish", campaignHandler.PublishCampaign)
			campaigns.DELETE("/:id", campaignHandler.CancelCampaign)
			campaigns.GET("/:id/pledges", campaignHandler.GetCampaignPledges)
			campaigns.POST("/:id/pledges", pledgeHandler.CreatePledge)
		}

		// 支付相关路由
		paymentHandler := handler.NewPaymentHandler(db, gw, recorder)
		pledges := v1.Group("/pledges")
		{
			pledges.POST("/:id/payments", paymentHandler.SubmitPayment)
		}

		// 用户相关路由
		userHandler := handler.NewUserHandler(db)
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
