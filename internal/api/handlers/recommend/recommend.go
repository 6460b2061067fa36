package recommend

import (
	"net/http"
	"strings"

	recommendService "cooking-tools-recommender/internal/core/recommend"
	"cooking-tools-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request 推薦請求
type Request struct {
	RecipeText  string `json:"recipe_text"`            // 食譜內文（必填）
	RecipeTitle string `json:"recipe_title,omitempty"` // 食譜標題，省略時使用預設值
}

// Handler 調理器具推薦處理程序
type Handler struct {
	service *recommendService.Service
}

// NewHandler 創建推薦處理程序
func NewHandler(service *recommendService.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleRecommend 處理 POST /recommend_cooking_tools
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理調理器具推薦請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if strings.TrimSpace(req.RecipeText) == "" {
		common.LogWarn("recipe_text 為空",
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_text is required"})
		return
	}

	result, err := h.service.Recommend(c.Request.Context(), req.RecipeText, req.RecipeTitle)
	if err != nil {
		common.LogError("推薦管線執行失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	common.LogInfo("推薦請求處理完成",
		zap.String("request_id", requestID),
		zap.Int("count", result.Count),
		zap.Bool("success", result.Success),
	)

	c.JSON(http.StatusOK, result)
}
