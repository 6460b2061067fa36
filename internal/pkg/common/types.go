package common

import "unicode/utf8"

// DedupPrefixLength 商品名稱去重前綴長度（以字元計，非位元組）
const DedupPrefixLength = 50

// Product 商品
// 注意：價格、評價欄位在上游回應中可能缺漏，以指標表示可為 null
type Product struct {
	Name          string   `json:"name"`
	Price         *int     `json:"price"`
	ReviewAverage *float64 `json:"review_average"`
	ReviewCount   *int     `json:"review_count"`
	AffiliateURL  string   `json:"affiliate_url"`
	ImageURL      string   `json:"image_url"`
	Keyword       string   `json:"keyword"`
}

// DedupKey 商品名稱前 50 個字元，作為合併近似重複商品的代理識別
func (p Product) DedupKey() string {
	if utf8.RuneCountInString(p.Name) <= DedupPrefixLength {
		return p.Name
	}
	runes := []rune(p.Name)
	return string(runes[:DedupPrefixLength])
}

// Rating 評價分數，缺漏時以 0 參與排序
func (p Product) Rating() float64 {
	if p.ReviewAverage == nil {
		return 0
	}
	return *p.ReviewAverage
}
