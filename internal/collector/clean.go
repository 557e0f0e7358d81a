package collector

import (
	"html"
	"regexp"
	"strings"
)

// 去除標題末尾來源後綴的兩條規則，按順序應用：
// 規則1: 「標題 | 分類 - 來源」
// 規則2: 「標題 - 來源」
var (
	reCategorySource = regexp.MustCompile(`\s*\|\s*[^|]*\s*-\s*[^-]*$`)
	reTrailingSource = regexp.MustCompile(`\s*-\s*[^-]*$`)
)

// CleanTitle 清洗新聞標題：反轉義 HTML 實體、去除首尾空白、
// 去掉末尾的「 - 來源」或「 | 分類 - 來源」後綴。
// 空字符串原樣返回，永不報錯。
func CleanTitle(title string) string {
	if title == "" {
		return title
	}

	title = strings.TrimSpace(html.UnescapeString(title))

	title = reCategorySource.ReplaceAllString(title, "")
	title = reTrailingSource.ReplaceAllString(title, "")

	return strings.TrimSpace(title)
}

// truncateRunes 按字符數截斷，避免把多字節字符切壞
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
