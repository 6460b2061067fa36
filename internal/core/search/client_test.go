package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"cooking-tools-recommender/internal/infrastructure/config"
	"cooking-tools-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Rakuten: config.RakutenConfig{
			ApplicationID: "test-app-id",
			AffiliateID:   "test-affiliate-id",
			Timeout:       2 * time.Second,
			RetryCount:    2,
			RetryWait:     10 * time.Millisecond,
			Hits:          10,
			MinReviewAvg:  4.0,
		},
	}
}

const sampleBody = `{
	"Items": [
		{"Item": {
			"itemName": "電子レンジ調理器 ごはんメーカー",
			"itemPrice": 1980,
			"reviewAverage": 4.5,
			"reviewCount": 321,
			"affiliateUrl": "https://hb.afl.rakuten.co.jp/hgc/abc",
			"mediumImageUrls": [
				{"imageUrl": "https://thumbnail.image.rakuten.co.jp/a.jpg"},
				{"imageUrl": "https://thumbnail.image.rakuten.co.jp/b.jpg"}
			]
		}},
		{"Item": {
			"itemPrice": 500,
			"reviewAverage": 4.9
		}},
		{"Item": {
			"itemName": "名前だけの商品"
		}}
	]
}`

func TestSearch_MapsResponse(t *testing.T) {
	var query atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "電子レンジ調理器")
	// 缺名稱的項目被捨棄
	require.Len(t, got, 2)

	p := got[0]
	assert.Equal(t, "電子レンジ調理器 ごはんメーカー", p.Name)
	require.NotNil(t, p.Price)
	assert.Equal(t, 1980, *p.Price)
	require.NotNil(t, p.ReviewAverage)
	assert.Equal(t, 4.5, *p.ReviewAverage)
	require.NotNil(t, p.ReviewCount)
	assert.Equal(t, 321, *p.ReviewCount)
	assert.Equal(t, "https://hb.afl.rakuten.co.jp/hgc/abc", p.AffiliateURL)
	// 多張圖片時取第一張
	assert.Equal(t, "https://thumbnail.image.rakuten.co.jp/a.jpg", p.ImageURL)
	assert.Equal(t, "電子レンジ調理器", p.Keyword)

	// 數值欄位缺漏時保持 nil
	p2 := got[1]
	assert.Equal(t, "名前だけの商品", p2.Name)
	assert.Nil(t, p2.Price)
	assert.Nil(t, p2.ReviewAverage)
	assert.Empty(t, p2.ImageURL)

	q := query.Load().(url.Values)
	assert.Equal(t, "test-app-id", q.Get("applicationId"))
	assert.Equal(t, "test-affiliate-id", q.Get("affiliateId"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "-reviewAverage", q.Get("sort"))
	assert.Equal(t, "10", q.Get("hits"))
	assert.Equal(t, "4.0", q.Get("minReviewAverage"))
}

func TestSearch_MissingCredentialsSkipsCall(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Rakuten.ApplicationID = ""

	svc := NewService(cfg)
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "調理器具")
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestSearch_RetriesOnTransientStatus(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "スチーマー")
	assert.Len(t, got, 2)
	// 首次請求加兩次重試
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestSearch_ExhaustedRetriesDegradeToEmpty(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "グリルパン")
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestSearch_NoRetryOnNonTransientStatus(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "耐熱容器")
	assert.Empty(t, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSearch_MalformedBodyDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Items": [`))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "保存容器")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_ServerUnreachableDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立刻關閉，模擬連線失敗

	svc := NewService(testConfig())
	svc.SetBaseURL(server.URL)

	got := svc.Search(context.Background(), "キッチン用品")
	require.NotNil(t, got)
	assert.Empty(t, got)
}
