package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_NoTriggers(t *testing.T) {
	// 沒有任何觸發詞時只剩三個通用關鍵字
	kws := Extract("パスタを茹でてソースと和えるだけ")
	assert.Equal(t, []string{"調理器具", "キッチン用品", "保存容器"}, kws)
}

func TestExtract_MicrowaveRecipe(t *testing.T) {
	kws := Extract("レンジで5分、耐熱容器に入れて温めます")
	require.Len(t, kws, 6)
	assert.ElementsMatch(t, []string{
		"電子レンジ調理器", "耐熱容器", "レンジ対応",
		"調理器具", "キッチン用品", "保存容器",
	}, kws)
}

func TestExtract_MultipleTriggersNoDuplicates(t *testing.T) {
	// 同一規則的多個觸發詞與重複出現的觸發詞都不會產生重複關鍵字
	kws := Extract("電子レンジでレンチン。ご飯を蒸し器で蒸す。ごはんを焼く。")
	seen := make(map[string]int)
	for _, k := range kws {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "keyword %q appeared %d times", k, n)
	}
	assert.Contains(t, kws, "電子レンジ調理器")
	assert.Contains(t, kws, "冷凍ごはん容器")
	assert.Contains(t, kws, "スチーマー")
	assert.Contains(t, kws, "グリルパン")
}

func TestExtract_EachRule(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"ゆで卵を作る", "ゆで卵メーカー"},
		{"ゆでたまごを作る", "ゆで卵メーカー"},
		{"野菜を蒸す", "スチーマー"},
		{"肉を焼く", "グリルパン"},
		{"大根の煮物", "耐熱ボウル"},
		{"ご飯を冷凍する", "冷凍ごはん容器"},
	}
	for _, tc := range cases {
		kws := Extract(tc.text)
		assert.Contains(t, kws, tc.want, "text=%q", tc.text)
	}
}

func TestExtract_DeterministicOrder(t *testing.T) {
	// 關鍵字順序決定去重的先到先贏，必須可重現
	first := Extract("レンジでご飯を温める")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract("レンジでご飯を温める"))
	}
}
