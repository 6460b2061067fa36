package search

// searchResponse 樂天市場商品搜尋 API 回應
// 只宣告用得到的欄位，其餘由解碼器忽略
type searchResponse struct {
	Items []itemEntry `json:"Items"`
}

// itemEntry 回應中的單筆包裝
type itemEntry struct {
	Item item `json:"Item"`
}

// item 商品欄位；數值欄位可能缺漏，以指標表示
type item struct {
	ItemName        string     `json:"itemName"`
	ItemPrice       *int       `json:"itemPrice"`
	ReviewAverage   *float64   `json:"reviewAverage"`
	ReviewCount     *int       `json:"reviewCount"`
	AffiliateURL    string     `json:"affiliateUrl"`
	MediumImageURLs []imageURL `json:"mediumImageUrls"`
}

// imageURL 商品圖片
type imageURL struct {
	ImageURL string `json:"imageUrl"`
}
