package keyword

import "strings"

// rule 觸發詞與對應的搜尋關鍵字
type rule struct {
	triggers []string
	keywords []string
}

// 固定的日文食譜觸發規則；任一觸發詞以子字串出現即加入對應關鍵字
var rules = []rule{
	{[]string{"レンジ", "電子レンジ", "レンチン"}, []string{"電子レンジ調理器", "耐熱容器", "レンジ対応"}},
	{[]string{"ゆで卵", "ゆでたまご"}, []string{"ゆで卵メーカー"}},
	{[]string{"蒸し", "蒸す"}, []string{"スチーマー"}},
	{[]string{"焼き", "焼く"}, []string{"グリルパン"}},
	{[]string{"煮物", "煮る"}, []string{"耐熱ボウル"}},
	{[]string{"ごはん", "ご飯"}, []string{"冷凍ごはん容器"}},
}

// 無條件加入的通用關鍵字
var fallbackKeywords = []string{"調理器具", "キッチン用品", "保存容器"}

// Extract 從食譜文字擷取搜尋關鍵字
// 回傳不含重複、保留加入順序的切片；順序決定後續去重的先到先贏
func Extract(recipeText string) []string {
	var kws []string
	seen := make(map[string]struct{})

	add := func(ks ...string) {
		for _, k := range ks {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			kws = append(kws, k)
		}
	}

	for _, r := range rules {
		for _, t := range r.triggers {
			if strings.Contains(recipeText, t) {
				add(r.keywords...)
				break
			}
		}
	}

	add(fallbackKeywords...)

	return kws
}
