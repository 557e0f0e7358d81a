package scheduler

import (
	"errors"
	"testing"

	"github.com/Tim0320/xiaomi-search/internal/collector"
	"github.com/Tim0320/xiaomi-search/internal/processor"
	"github.com/Tim0320/xiaomi-search/internal/storage"
)

// stubFetcher 固定返回預設結果的假數據源
type stubFetcher struct {
	name  string
	items []collector.NewsItem
	err   error
}

func (f *stubFetcher) Name() string { return f.name }

func (f *stubFetcher) Fetch() ([]collector.NewsItem, error) { return f.items, f.err }

func newTestScheduler(t *testing.T, yahoo, google collector.Fetcher) (*Scheduler, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore("", "", t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	s, err := New("*/20 * * * *", yahoo, google, processor.NewProcessor(), store)
	if err != nil {
		t.Fatalf("New scheduler error: %v", err)
	}
	return s, store
}

func TestRunOnceWritesSnapshot(t *testing.T) {
	yahoo := &stubFetcher{name: "yahoo_news", items: []collector.NewsItem{
		{Title: "雅虎頭條新聞標題", URL: "https://tw.news.yahoo.com/articles/1", Source: collector.SourceYahoo},
	}}
	google := &stubFetcher{name: "google_news_rss", items: []collector.NewsItem{
		{Title: "谷歌頭條新聞標題", URL: "https://news.google.com/articles/1", Source: collector.SourceGoogle},
	}}

	s, store := newTestScheduler(t, yahoo, google)
	jsonStr := s.RunOnce()

	saved, ok := store.LoadSnapshot()
	if !ok {
		t.Fatalf("snapshot should exist after RunOnce")
	}
	if saved != jsonStr {
		t.Fatalf("snapshot content mismatch")
	}
}

func TestRunOnceBothSourcesFailYieldsFallback(t *testing.T) {
	yahoo := &stubFetcher{name: "yahoo_news", err: errors.New("connect timeout")}
	google := &stubFetcher{name: "google_news_rss", items: nil}

	s, _ := newTestScheduler(t, yahoo, google)
	got := s.RunOnce()

	want := processor.NewProcessor().FallbackJSON()
	if got != want {
		t.Fatalf("both-empty run should produce fallback document:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRunOncePartialFailureKeepsHealthySource(t *testing.T) {
	yahoo := &stubFetcher{name: "yahoo_news", err: errors.New("http 500")}
	google := &stubFetcher{name: "google_news_rss", items: []collector.NewsItem{
		{Title: "谷歌頭條新聞標題", URL: "https://news.google.com/articles/1", Source: collector.SourceGoogle},
	}}

	s, _ := newTestScheduler(t, yahoo, google)
	got := s.RunOnce()

	if got == processor.NewProcessor().FallbackJSON() {
		t.Fatalf("single healthy source should not trigger fallback")
	}
}
