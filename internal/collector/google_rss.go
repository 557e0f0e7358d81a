package collector

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
)

var (
	_ Extractor = (*GoogleRSSExtractor)(nil)
	_ Fetcher   = (*GoogleNewsFetcher)(nil)
)

// GoogleRSSExtractor 從 Google 新聞 RSS 文本中提取新聞條目
type GoogleRSSExtractor struct {
	rules    *ExcludeRules
	maxItems int
}

func NewGoogleRSSExtractor(rules *ExcludeRules) *GoogleRSSExtractor {
	if rules == nil {
		rules = DefaultExcludeRules()
	}
	return &GoogleRSSExtractor{rules: rules, maxItems: MaxNewsItems}
}

// Extract 解析 RSS 文本並按文檔順序提取新聞，最多接受 maxItems 條。
// 標題或鏈接缺失的 item 跳過；解析失敗返回空結果而不是錯誤。
func (g *GoogleRSSExtractor) Extract(text string) []NewsItem {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	feed, err := gofeed.NewParser().ParseString(text)
	if err != nil {
		log.Printf("google rss: parse failed: %v", err)
		return nil
	}

	items := make([]NewsItem, 0, g.maxItems)
	for _, it := range feed.Items {
		if len(items) >= g.maxItems {
			break
		}
		if it == nil || it.Title == "" || it.Link == "" {
			continue
		}

		title := CleanTitle(it.Title)
		if g.rules.ShouldExcludeText(title) {
			continue
		}

		items = append(items, NewsItem{
			Title:  title,
			URL:    it.Link,
			Source: SourceGoogle,
		})
	}
	return items
}

// GoogleNewsFetcher 通過 RSS 接口抓取 Google 新聞熱門條目
type GoogleNewsFetcher struct {
	url       string
	client    *http.Client
	extractor *GoogleRSSExtractor
}

func NewGoogleNewsFetcher() *GoogleNewsFetcher {
	return &GoogleNewsFetcher{
		url:       GoogleNewsRSSURL,
		client:    &http.Client{Timeout: fetchTimeout},
		extractor: NewGoogleRSSExtractor(nil),
	}
}

func (f *GoogleNewsFetcher) Name() string {
	return "google_news_rss"
}

func (f *GoogleNewsFetcher) Fetch() ([]NewsItem, error) {
	log.Println("fetch Google News RSS...")

	req, err := http.NewRequest(http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("google rss: new request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google rss: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google rss: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("google rss: read body: %w", err)
	}

	return f.extractor.Extract(decodeUTF8Lossy(body)), nil
}
