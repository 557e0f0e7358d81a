package collector

import (
	"fmt"
	"strings"
	"testing"
)

func TestStrategyArticlePath(t *testing.T) {
	html := `
<html><body>
<a class="js-stream" href="https://tw.news.yahoo.com/articles/abc-123.html">台積電法說會釋出樂觀展望</a>
<a href="https://tw.news.yahoo.com/articles/def-456.html" data-x="1">央行宣布升息半碼 - 經濟日報</a>
<a href="https://tw.news.yahoo.com/weather">天氣預報頁面不該入選</a>
<a href="javascript:void(0)">點擊展開更多精彩內容</a>
</body></html>`

	got := NewYahooHTMLExtractor(nil).Extract(html)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(got), got)
	}
	if got[0].Title != "台積電法說會釋出樂觀展望" {
		t.Fatalf("title = %q", got[0].Title)
	}
	// 標題清洗同樣作用於 HTML 提取
	if got[1].Title != "央行宣布升息半碼" {
		t.Fatalf("title not cleaned: %q", got[1].Title)
	}
	if got[0].URL != "https://tw.news.yahoo.com/articles/abc-123.html" {
		t.Fatalf("url = %q", got[0].URL)
	}
	for _, it := range got {
		if it.Source != SourceYahoo {
			t.Fatalf("source = %q, want %q", it.Source, SourceYahoo)
		}
	}
}

func TestStrategyContentClassRunsWhenNoArticleLinks(t *testing.T) {
	// 沒有 /articles 鏈接時落到 class 匹配檔位；
	// href 與 class 的先後順序都要能匹配
	html := `
<a data-y="2" href="https://news.example.com/story1" class="xx gPFEn yy">樣式標記的新聞標題一</a>
<a class="IFHyqb" href="https://news.example.com/story2">樣式標記的新聞標題二</a>
<a href="https://news.example.com/story3" class="plain">沒有內容樣式標記不入選</a>`

	got := NewYahooHTMLExtractor(nil).Extract(html)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://news.example.com/story1" || got[1].URL != "https://news.example.com/story2" {
		t.Fatalf("unexpected urls: %+v", got)
	}
}

func TestStrategyGenericResolvesRelativeLinks(t *testing.T) {
	// 前兩個檔位都提取不到時落到寬匹配：
	// ./articles/123 會被第一檔命中但因非 http 鏈接被過濾，最終由本檔拼回站點
	html := `
<a href="./articles/123" class="plain">這是一條足夠長的新聞標題</a>
<a href="https://news.example.com/short">短標題</a>`

	got := NewYahooHTMLExtractor(nil).Extract(html)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://tw.news.yahoo.com/articles/123" {
		t.Fatalf("relative link not resolved: %q", got[0].URL)
	}
}

func TestStrategyGenericTruncatesLongText(t *testing.T) {
	long := strings.Repeat("字", 300)
	html := fmt.Sprintf(`<a href="https://news.example.com/long">%s</a>`, long)

	got := NewYahooHTMLExtractor(nil).Extract(html)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if n := len([]rune(got[0].Title)); n != 255 {
		t.Fatalf("title should be truncated to 255 runes, got %d", n)
	}
}

func TestStrategiesDoNotMatchAcrossElements(t *testing.T) {
	// 文本捕獲不跨元素邊界：嵌套標籤的錨點不匹配
	html := `<a href="https://tw.news.yahoo.com/articles/1"><span>嵌套在子元素裡的標題文字</span></a>`

	if got := NewYahooHTMLExtractor(nil).Extract(html); len(got) != 0 {
		t.Fatalf("nested anchor should not match, got %+v", got)
	}
}

func TestYahooExtractCapsAtMaxItems(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, `<a href="https://tw.news.yahoo.com/articles/%d">雅虎測試新聞標題第%02d號</a>`, i, i)
	}

	got := NewYahooHTMLExtractor(nil).Extract(b.String())
	if len(got) != MaxNewsItems {
		t.Fatalf("expected %d items, got %d", MaxNewsItems, len(got))
	}
	if got[0].Title != "雅虎測試新聞標題第01號" {
		t.Fatalf("first title = %q", got[0].Title)
	}
}

func TestYahooExtractEmptyInput(t *testing.T) {
	if got := NewYahooHTMLExtractor(nil).Extract(""); len(got) != 0 {
		t.Fatalf("empty input should yield no items, got %d", len(got))
	}
	if got := NewYahooHTMLExtractor(nil).Extract("<html><body>純文本頁面</body></html>"); len(got) != 0 {
		t.Fatalf("page without anchors should yield no items, got %d", len(got))
	}
}

// countingStrategy 記錄調用次數的假策略，用於驗證級聯短路
type countingStrategy struct {
	name  string
	calls int
	items []NewsItem
}

func (c *countingStrategy) Name() string { return c.name }

func (c *countingStrategy) Extract(string) []NewsItem {
	c.calls++
	return c.items
}

func TestCascadeStopsAtFirstAcceptingStrategy(t *testing.T) {
	hit := []NewsItem{{Title: "命中的新聞標題", URL: "https://example.com/1", Source: SourceYahoo}}

	first := &countingStrategy{name: "first", items: hit}
	second := &countingStrategy{name: "second", items: hit}
	third := &countingStrategy{name: "third"}

	e := &YahooHTMLExtractor{strategies: []Strategy{first, second, third}}
	got := e.Extract("whatever")

	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if first.calls != 1 {
		t.Fatalf("first strategy calls = %d, want 1", first.calls)
	}
	if second.calls != 0 || third.calls != 0 {
		t.Fatalf("later strategies should not run: second=%d third=%d", second.calls, third.calls)
	}
}

func TestCascadeFallsThroughEmptyStrategies(t *testing.T) {
	hit := []NewsItem{{Title: "兜底檔位的新聞標題", URL: "https://example.com/2", Source: SourceYahoo}}

	first := &countingStrategy{name: "first"}
	second := &countingStrategy{name: "second"}
	third := &countingStrategy{name: "third", items: hit}

	e := &YahooHTMLExtractor{strategies: []Strategy{first, second, third}}
	got := e.Extract("whatever")

	if len(got) != 1 || got[0].Title != "兜底檔位的新聞標題" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Fatalf("all strategies should have run exactly once: %d %d %d",
			first.calls, second.calls, third.calls)
	}
}
