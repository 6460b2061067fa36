package ranking

import (
	"sort"

	"cooking-tools-recommender/internal/pkg/common"
)

// TopN 最終輸出的商品數上限
const TopN = 10

// Aggregate 合併各關鍵字的搜尋結果並排序
// 依批次順序串接後，以商品名稱前 50 字元做先到先贏去重，
// 再以評價由高至低穩定排序（缺漏視為 0），最後截斷為前 TopN 筆
func Aggregate(batches [][]common.Product) []common.Product {
	uniq := make(map[string]struct{})
	deduped := make([]common.Product, 0)

	for _, batch := range batches {
		for _, p := range batch {
			if p.Name == "" {
				continue
			}
			key := p.DedupKey()
			if _, ok := uniq[key]; ok {
				continue
			}
			uniq[key] = struct{}{}
			deduped = append(deduped, p)
		}
	}

	// 同分時保留去重後的相對順序
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Rating() > deduped[j].Rating()
	})

	if len(deduped) > TopN {
		deduped = deduped[:TopN]
	}

	return deduped
}
