package collector

import "strings"

// ExcludeRules 標題與鏈接的排除規則。規則集在構造時固定，
// 測試可以注入替代規則集。
type ExcludeRules struct {
	// TextPatterns 命中即排除的標題子串（不區分大小寫）
	TextPatterns []string
	// URLPatterns 命中即排除的鏈接子串
	URLPatterns []string
	// MinTitleRunes 清洗後標題的最小字符數
	MinTitleRunes int
}

// DefaultExcludeRules 返回默認規則：瀏覽器升級提示等頁面雜訊文案，
// 以及 javascript/mailto/錨點/IE 下載頁等無效鏈接
func DefaultExcludeRules() *ExcludeRules {
	return &ExcludeRules{
		TextPatterns: []string{
			"很抱歉，您使用的瀏覽器版本過低",
			"建議改用",
			"Yahoo Chrome, Firefox, Microsoft Edge",
			"Google Chrome, Firefox, Microsoft Edge",
			"以獲得最佳瀏覽經驗",
			"Manage history",
			"{notificationCenterNavMsg}",
			"瀏覽器版本過低",
			"最佳瀏覽經驗",
			"browser version",
			"Internet Explorer",
		},
		URLPatterns: []string{
			"javascript:",
			"mailto:",
			"#",
			"microsoft.com/zh-tw/download/internet-explorer",
			"download/internet-explorer",
		},
		MinTitleRunes: 5,
	}
}

// ShouldExcludeText 判斷標題是否應被排除：
// 空文本、命中雜訊文案、或太短（少於 MinTitleRunes 個字符）
func (r *ExcludeRules) ShouldExcludeText(text string) bool {
	if text == "" {
		return true
	}

	lower := strings.ToLower(text)
	for _, p := range r.TextPatterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}

	if len([]rune(strings.TrimSpace(text))) < r.MinTitleRunes {
		return true
	}

	return false
}

// ShouldExcludeURL 判斷鏈接是否應被排除：
// 空鏈接、命中排除子串、或不是 http/https 鏈接
func (r *ExcludeRules) ShouldExcludeURL(url string) bool {
	if url == "" {
		return true
	}

	lower := strings.ToLower(url)
	for _, p := range r.URLPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}

	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return true
	}

	return false
}
