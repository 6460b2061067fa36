package recommend

import (
	"context"

	"cooking-tools-recommender/internal/core/keyword"
	"cooking-tools-recommender/internal/core/ranking"
	"cooking-tools-recommender/internal/core/render"
	"cooking-tools-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultTitle 未指定食譜標題時的預設值
const DefaultTitle = "レンチンレシピ"

// Result 推薦結果；Count 恆等於 len(Products)
type Result struct {
	Success  bool             `json:"success"`
	Products []common.Product `json:"products"`
	HTML     string           `json:"html"`
	Count    int              `json:"count"`
	Message  string           `json:"message"`
}

// Searcher 以單一關鍵字搜尋商品；失敗降級為空切片
type Searcher interface {
	Search(ctx context.Context, keyword string) []common.Product
}

// Service 調理器具推薦服務
type Service struct {
	searcher Searcher
}

// NewService 創建推薦服務
func NewService(searcher Searcher) *Service {
	return &Service{
		searcher: searcher,
	}
}

// Recommend 執行推薦管線：擷取關鍵字 → 逐關鍵字搜尋 → 合併排序 → 產生 HTML
// 個別關鍵字的搜尋失敗不會中斷管線；全數落空時仍回傳 Success=true 的空清單
func (s *Service) Recommend(ctx context.Context, recipeText, recipeTitle string) (*Result, error) {
	if recipeTitle == "" {
		recipeTitle = DefaultTitle
	}

	kws := keyword.Extract(recipeText)
	// 通用關鍵字保證非空，此分支僅為防禦
	if len(kws) == 0 {
		return &Result{
			Success:  false,
			Products: []common.Product{},
			HTML:     "<p>レシピから関連キーワードを抽出できませんでした。</p>",
			Count:    0,
			Message:  "レシピから関連キーワードを抽出できませんでした。",
		}, nil
	}

	common.LogInfo("開始商品推薦",
		zap.Int("keywords", len(kws)),
		zap.String("title", recipeTitle),
	)

	batches := make([][]common.Product, 0, len(kws))
	for _, kw := range kws {
		batches = append(batches, s.searcher.Search(ctx, kw))
	}

	top := ranking.Aggregate(batches)

	html, err := render.HTML(top, recipeTitle)
	if err != nil {
		return nil, err
	}

	common.LogInfo("商品推薦完成",
		zap.Int("count", len(top)),
	)

	return &Result{
		Success:  true,
		Products: top,
		HTML:     html,
		Count:    len(top),
		Message:  "おすすめの料理グッズが見つかりました！",
	}, nil
}
