package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"cooking-tools-recommender/internal/pkg/common"

	"github.com/dustin/go-humanize"
)

// EmptyHTML 查無商品時的固定片段
const EmptyHTML = "<p>おすすめの料理グッズは見つかりませんでした。</p>"

// rel 屬性：通過驗證的連結標記為贊助，未通過的標記為 nofollow
const (
	relSponsored = "sponsored noopener noreferrer"
	relUntrusted = "noopener noreferrer nofollow"
)

// 允許的聯盟/商城連結網域
var allowedHosts = map[string]struct{}{
	"item.rakuten.co.jp":   {},
	"books.rakuten.co.jp":  {},
	"hb.afl.rakuten.co.jp": {},
	"afl.rakuten.co.jp":    {},
	"www.rakuten.co.jp":    {},
}

// SanitizeURL 驗證聯盟連結；僅允許 http/https 且網域在允許清單內
// 驗證失敗回傳空字串
func SanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if _, ok := allowedHosts[u.Host]; !ok {
		return ""
	}
	return raw
}

// card 模板用的單筆商品檢視資料
type card struct {
	Rank        int
	Name        string
	Price       string
	Rating      string
	ReviewCount string
	Href        string
	Rel         string
}

// page 模板根資料
type page struct {
	Title string
	Cards []card
}

// 片段自帶樣式，不依賴外部樣式表；商品名稱由 html/template 預設轉義
const tmplText = `
<div class="product-recommendations" role="region" aria-label="レンチン調理器具のおすすめ一覧">
  <h2>【PR】🍳 {{.Title}}におすすめの料理グッズ</h2>
  <p class="disclosure">
    ※本ページのリンクは<a href="https://www.rakuten.co.jp/" target="_blank" rel="noopener noreferrer">楽天市場</a>のアフィリエイトリンクを含みます。リンク経由のご購入で運営者が報酬を得る場合があります。
  </p>
  <div class="products-grid">
{{range .Cards}}
    <div class="product-card">
      <div class="product-rank">#{{.Rank}}</div>
      <div class="product-info">
        <h3 class="product-name">{{.Name}}</h3>
        <div class="product-details">
          <span class="price">¥{{.Price}}</span>
          <span class="rating">⭐ {{.Rating}} ({{.ReviewCount}}件)</span>
        </div>
        <a href="{{.Href}}" target="_blank" rel="{{.Rel}}" class="affiliate-link" aria-label="楽天市場で詳細を見る：{{.Name}}">
          楽天市場で詳細を見る
        </a>
      </div>
    </div>
{{end}}
  </div>
</div>
<style>
.product-recommendations{max-width:800px;margin:20px auto;padding:20px;font-family:Arial,sans-serif}
.disclosure{font-size:12px;color:#666;margin:8px 0 0 0}
.products-grid{display:grid;gap:15px;margin-top:16px}
.product-card{border:1px solid #ddd;border-radius:8px;padding:15px;background:#f9f9f9;display:flex;align-items:center;gap:15px}
.product-rank{background:#ff6b6b;color:#fff;width:40px;height:40px;border-radius:50%;display:flex;align-items:center;justify-content:center;font-weight:bold;flex-shrink:0}
.product-info{flex:1}
.product-name{margin:0 0 10px 0;font-size:16px;color:#333}
.product-details{display:flex;gap:15px;margin-bottom:10px}
.price{font-weight:bold;color:#e74c3c;font-size:18px}
.rating{color:#f39c12}
.affiliate-link{background:#27ae60;color:#fff;padding:8px 16px;text-decoration:none;border-radius:4px;display:inline-block;font-size:14px}
.affiliate-link:hover{background:#219a52}
</style>
`

var pageTmpl = template.Must(template.New("recommendations").Parse(tmplText))

// HTML 將排序後的商品清單轉為可直接嵌入的 HTML 片段
func HTML(products []common.Product, title string) (string, error) {
	if len(products) == 0 {
		return EmptyHTML, nil
	}

	cards := make([]card, 0, len(products))
	for i, p := range products {
		c := card{
			Rank:        i + 1,
			Name:        p.Name,
			Rating:      "-",
			ReviewCount: "-",
		}

		price := 0
		if p.Price != nil {
			price = *p.Price
		}
		c.Price = humanize.Comma(int64(price))

		if p.ReviewAverage != nil {
			c.Rating = strconv.FormatFloat(*p.ReviewAverage, 'f', -1, 64)
		}
		if p.ReviewCount != nil {
			c.ReviewCount = strconv.Itoa(*p.ReviewCount)
		}

		if safe := SanitizeURL(p.AffiliateURL); safe != "" {
			c.Href = safe
			c.Rel = relSponsored
		} else {
			c.Href = "#"
			c.Rel = relUntrusted
		}

		cards = append(cards, c)
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page{Title: title, Cards: cards}); err != nil {
		return "", fmt.Errorf("failed to render recommendation html: %w", err)
	}

	return buf.String(), nil
}
