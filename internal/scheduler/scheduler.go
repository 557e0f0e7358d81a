package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/Tim0320/xiaomi-search/internal/collector"
	"github.com/Tim0320/xiaomi-search/internal/processor"
	"github.com/Tim0320/xiaomi-search/internal/storage"
	"github.com/robfig/cron/v3"
)

// Scheduler 按 cron 週期刷新熱詞快照
type Scheduler struct {
	cron      *cron.Cron
	yahoo     collector.Fetcher
	google    collector.Fetcher
	processor *processor.Processor
	store     *storage.Store
}

func New(spec string, yahoo, google collector.Fetcher, p *processor.Processor, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		yahoo:     yahoo,
		google:    google,
		processor: p,
		store:     store,
	}

	if _, err := c.AddFunc(spec, func() { s.RunOnce() }); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延遲執行首輪採集，避免與服務啟動期的請求爭搶資源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.RunOnce()
	})
}

// RunOnce 執行一輪完整的採集：丟棄舊快照，並發拉取兩個來源，
// 組裝下發文檔並持久化。任一來源失敗都不影響另一個；
// 兩個來源都為空時寫入備用文檔。返回本輪生成的 JSON。
func (s *Scheduler) RunOnce() string {
	log.Println("start collect job...")

	s.store.ClearSnapshot()

	var (
		wg          sync.WaitGroup
		yahooItems  []collector.NewsItem
		googleItems []collector.NewsItem
	)

	for _, src := range []struct {
		fetcher collector.Fetcher
		out     *[]collector.NewsItem
	}{
		{s.yahoo, &yahooItems},
		{s.google, &googleItems},
	} {
		wg.Add(1)
		go func(f collector.Fetcher, out *[]collector.NewsItem) {
			defer wg.Done()
			items, err := f.Fetch()
			if err != nil {
				log.Printf("fetch %s error: %v", f.Name(), err)
				return
			}
			log.Printf("fetch %s got %d items", f.Name(), len(items))
			*out = items
		}(src.fetcher, src.out)
	}
	wg.Wait()

	resp := s.processor.Build(yahooItems, googleItems)
	jsonStr := processor.Marshal(resp)

	if err := s.store.SaveSnapshot(jsonStr); err != nil {
		log.Printf("save snapshot error: %v", err)
	}
	if err := s.store.SaveRecords(append(yahooItems, googleItems...)); err != nil {
		log.Printf("save records error: %v", err)
	}

	log.Printf("collect job done, yahoo=%d google=%d json=%d bytes",
		len(yahooItems), len(googleItems), len(jsonStr))
	return jsonStr
}
