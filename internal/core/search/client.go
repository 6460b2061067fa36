package search

import (
	"context"
	"net/http"
	"strconv"

	"cooking-tools-recommender/internal/infrastructure/config"
	"cooking-tools-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// defaultBaseURL 樂天市場商品搜尋端點
const defaultBaseURL = "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601"

// 視為暫時性失敗、允許重試的狀態碼
var retryStatusCodes = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// Service 商品搜尋服務
// 整個行程共用一個 resty 客戶端；建立後僅讀取，不需加鎖
type Service struct {
	cfg     *config.Config
	client  *resty.Client
	baseURL string
}

// NewService 創建商品搜尋服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetTimeout(cfg.Rakuten.Timeout).
		SetRetryCount(cfg.Rakuten.RetryCount).
		SetRetryWaitTime(cfg.Rakuten.RetryWait).
		SetRetryMaxWaitTime(cfg.Rakuten.RetryWait * 8).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return false
			}
			// 只對 GET 重試
			if r.Request.Method != http.MethodGet {
				return false
			}
			_, ok := retryStatusCodes[r.StatusCode()]
			return ok
		})

	return &Service{
		cfg:     cfg,
		client:  client,
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL 覆寫搜尋端點（測試用）
func (s *Service) SetBaseURL(u string) {
	s.baseURL = u
}

// Search 以單一關鍵字搜尋商品
// 一律回傳切片：憑證缺漏、網路失敗、逾時、非 2xx、回應格式錯誤都降級為空結果，
// 不向呼叫端傳播錯誤
func (s *Service) Search(ctx context.Context, keyword string) []common.Product {
	if !s.cfg.Rakuten.Configured() {
		common.LogDebug("樂天 API 憑證未設定，跳過搜尋",
			zap.String("keyword", keyword),
		)
		return []common.Product{}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"applicationId":    s.cfg.Rakuten.ApplicationID,
			"affiliateId":      s.cfg.Rakuten.AffiliateID,
			"keyword":          keyword,
			"format":           "json",
			"sort":             "-reviewAverage",
			"hits":             strconv.Itoa(s.cfg.Rakuten.Hits),
			"minReviewAverage": strconv.FormatFloat(s.cfg.Rakuten.MinReviewAvg, 'f', 1, 64),
		}).
		Get(s.baseURL)

	if err != nil {
		common.LogWarn("商品搜尋請求失敗",
			zap.Error(err),
			zap.String("keyword", keyword),
		)
		return []common.Product{}
	}

	if !resp.IsSuccess() {
		common.LogWarn("商品搜尋回應狀態異常",
			zap.Int("status", resp.StatusCode()),
			zap.String("keyword", keyword),
		)
		return []common.Product{}
	}

	var payload searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &payload); err != nil {
		common.LogWarn("商品搜尋回應解析失敗",
			zap.Error(err),
			zap.String("keyword", keyword),
		)
		return []common.Product{}
	}

	products := make([]common.Product, 0, len(payload.Items))
	for _, entry := range payload.Items {
		it := entry.Item
		// 名稱是後續去重的識別基礎，缺名稱的項目直接捨棄
		if it.ItemName == "" {
			continue
		}

		p := common.Product{
			Name:          it.ItemName,
			Price:         it.ItemPrice,
			ReviewAverage: it.ReviewAverage,
			ReviewCount:   it.ReviewCount,
			AffiliateURL:  it.AffiliateURL,
			Keyword:       keyword,
		}
		if len(it.MediumImageURLs) > 0 {
			p.ImageURL = it.MediumImageURLs[0].ImageURL
		}
		products = append(products, p)
	}

	common.LogDebug("商品搜尋完成",
		zap.String("keyword", keyword),
		zap.Int("count", len(products)),
	)

	return products
}
