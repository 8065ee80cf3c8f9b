package server

import (
	"tron-connector/internal/handler"
	"tron-connector/internal/handler/response"
	"tron-connector/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers 需要挂载的业务 handler，KMS 为 nil 时不注册 KMS 路由
type Handlers struct {
	Broadcast *handler.BroadcastHandler
	KMS       *handler.KMSHandler
}

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(h Handlers) *gin.Engine {
	monitor.Init()

	r := gin.Default()
	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		tron := api.Group("/tron")
		tron.POST("/broadcast", h.Broadcast.Broadcast)

		if h.KMS != nil {
			kms := api.Group("/kms")
			kms.POST("/transactions", h.KMS.StoreTransaction)
			kms.GET("/transactions/:id", h.KMS.GetTransaction)
		}
	}

	return r
}
