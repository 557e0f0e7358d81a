package collector

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gocolly/colly/v2"
)

// 匹配完整的 <a ...>文本</a>。文本捕獲用 [^<]*，不會跨元素邊界；
// href 與 class 從屬性串中單獨提取，因此不依賴屬性出現順序。
var (
	reAnchorTag = regexp.MustCompile(`(?i)<a\s+([^>]+)>([^<]*)</a>`)
	reHrefAttr  = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']*)["']`)
	reClassAttr = regexp.MustCompile(`(?i)class\s*=\s*["']([^"']*)["']`)

	// 文章頁路徑特徵
	reArticlePath = regexp.MustCompile(`(?i)/articles`)
	// 已知的內容樣式 class 標記
	reContentClass = regexp.MustCompile(`gPFEn|IFHyqb|IBr9hb`)
)

var (
	_ Extractor = (*YahooHTMLExtractor)(nil)
	_ Fetcher   = (*YahooNewsFetcher)(nil)
)

// Strategy 一條提取策略：從原始 HTML 文本中提取已通過清洗與過濾的新聞條目
type Strategy interface {
	Name() string
	Extract(htmlText string) []NewsItem
}

// anchorStrategy 基於 <a> 標籤掃描的通用策略，各檔位通過字段組合出差異
type anchorStrategy struct {
	name          string
	hrefPattern   *regexp.Regexp // 非空時 href 必須命中
	classPattern  *regexp.Regexp // 非空時 class 必須命中
	minTitleRunes int            // 大於 0 時原始文本至少這麼多字符
	truncateTo    int            // 大於 0 時先按字符數截斷文本
	baseURL       string         // 非空時把 ./ 與 / 開頭的相對鏈接拼回站點
	rules         *ExcludeRules
	maxItems      int
}

func (s *anchorStrategy) Name() string { return s.name }

func (s *anchorStrategy) Extract(htmlText string) []NewsItem {
	items := make([]NewsItem, 0, s.maxItems)

	for _, m := range reAnchorTag.FindAllStringSubmatch(htmlText, -1) {
		if len(items) >= s.maxItems {
			break
		}
		attrs, text := m[1], m[2]

		link := firstGroup(reHrefAttr, attrs)
		if s.hrefPattern != nil && !s.hrefPattern.MatchString(link) {
			continue
		}
		if s.classPattern != nil && !s.classPattern.MatchString(firstGroup(reClassAttr, attrs)) {
			continue
		}
		if s.minTitleRunes > 0 && len([]rune(text)) < s.minTitleRunes {
			continue
		}
		if s.truncateTo > 0 {
			text = truncateRunes(text, s.truncateTo)
		}

		title := CleanTitle(text)
		if s.rules.ShouldExcludeText(title) {
			continue
		}

		if s.baseURL != "" && !strings.HasPrefix(link, "http") {
			switch {
			case strings.HasPrefix(link, "./"):
				link = s.baseURL + link[2:]
			case strings.HasPrefix(link, "/"):
				link = s.baseURL + link
			}
		}
		if s.rules.ShouldExcludeURL(link) {
			continue
		}

		items = append(items, NewsItem{
			Title:  title,
			URL:    link,
			Source: SourceYahoo,
		})
	}
	return items
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// YahooHTMLExtractor 對未受控的 Yahoo 首頁 HTML 做分級提取：
// 依次嘗試由窄到寬的策略，第一個提取到至少一條結果的策略勝出，
// 後面的策略不再執行。寬策略會把任意鏈接文案當標題，只做兜底。
type YahooHTMLExtractor struct {
	strategies []Strategy
}

func NewYahooHTMLExtractor(rules *ExcludeRules) *YahooHTMLExtractor {
	if rules == nil {
		rules = DefaultExcludeRules()
	}
	return &YahooHTMLExtractor{
		strategies: []Strategy{
			&anchorStrategy{
				name:        "article_path",
				hrefPattern: reArticlePath,
				rules:       rules,
				maxItems:    MaxNewsItems,
			},
			&anchorStrategy{
				name:         "content_class",
				classPattern: reContentClass,
				rules:        rules,
				maxItems:     MaxNewsItems,
			},
			&anchorStrategy{
				name:          "generic_anchor",
				minTitleRunes: 10,
				truncateTo:    255,
				baseURL:       YahooNewsURL,
				rules:         rules,
				maxItems:      MaxNewsItems,
			},
		},
	}
}

func (e *YahooHTMLExtractor) Extract(text string) []NewsItem {
	for _, st := range e.strategies {
		items := st.Extract(text)
		if len(items) > 0 {
			log.Printf("yahoo html: strategy %s matched %d items", st.Name(), len(items))
			return items
		}
	}
	log.Println("yahoo html: no strategy matched")
	return nil
}

// YahooNewsFetcher 抓取 Yahoo 新聞首頁原始 HTML。
// 頁面結構不可信，解析交給分級提取器在原始文本上做模式匹配。
type YahooNewsFetcher struct {
	url       string
	extractor *YahooHTMLExtractor
}

func NewYahooNewsFetcher() *YahooNewsFetcher {
	return &YahooNewsFetcher{
		url:       YahooNewsURL,
		extractor: NewYahooHTMLExtractor(nil),
	}
}

func (f *YahooNewsFetcher) Name() string {
	return "yahoo_news"
}

func (f *YahooNewsFetcher) Fetch() ([]NewsItem, error) {
	log.Println("fetch Yahoo News trending...")

	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
	)
	c.SetRequestTimeout(fetchTimeout)

	var raw []byte
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7")
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	})
	c.OnResponse(func(r *colly.Response) {
		raw = r.Body
	})

	if err := c.Visit(f.url); err != nil {
		return nil, fmt.Errorf("yahoo: visit %s: %w", f.url, err)
	}

	return f.extractor.Extract(decodeUTF8Lossy(raw)), nil
}
