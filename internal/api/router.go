package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cooking-tools-recommender/internal/api/handlers/health"
	recommendHandler "cooking-tools-recommender/internal/api/handlers/recommend"
	"cooking-tools-recommender/internal/api/middleware"
	recommendService "cooking-tools-recommender/internal/core/recommend"
	"cooking-tools-recommender/internal/core/search"
	"cooking-tools-recommender/internal/infrastructure/config"
	"cooking-tools-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 單一請求的處理超時
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)，純文字端點不需要更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置：對所有來源開放，供外部前端直接嵌入
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 初始化商品搜尋服務（行程共用一個 HTTP 客戶端與重試策略）
	searchSvc := search.NewService(cfg)
	if searchSvc == nil {
		common.LogError("Failed to initialize search service")
		return nil, fmt.Errorf("failed to initialize search service")
	}

	// 初始化推薦服務
	recommendSvc := recommendService.NewService(searchSvc)
	if recommendSvc == nil {
		common.LogError("Failed to initialize recommend service")
		return nil, fmt.Errorf("failed to initialize recommend service")
	}

	common.LogInfo("Services initialized successfully",
		zap.Bool("rakuten_configured", cfg.Rakuten.Configured()),
		zap.Bool("auth_enabled", cfg.Auth.BearerToken != ""),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
			})
			c.Abort()
			return
		}
	})

	// 存活探測與健康檢查路由
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// 推薦端點；token 未設定時 BearerAuth 為開放模式
	handler := recommendHandler.NewHandler(recommendSvc)
	router.POST("/recommend_cooking_tools",
		middleware.BearerAuth(cfg.Auth.BearerToken),
		handler.HandleRecommend,
	)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
