package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Tim0320/xiaomi-search/internal/collector"
	"github.com/Tim0320/xiaomi-search/internal/config"
	"github.com/Tim0320/xiaomi-search/internal/processor"
	"github.com/Tim0320/xiaomi-search/internal/scheduler"
	"github.com/Tim0320/xiaomi-search/internal/storage"
)

// 一個僅執行一次採集任務的命令行入口：適合手動觸發或排查
func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr, cfg.DataDir)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	yahoo := collector.NewYahooNewsFetcher()
	google := collector.NewGoogleNewsFetcher()
	p := processor.NewProcessor()

	s, err := scheduler.New(cfg.CronSpec, yahoo, google, p, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	jsonStr := s.RunOnce()
	printSummary(jsonStr)
}

// printSummary 在終端輸出每個來源的前 5 條標題，便於人工確認
func printSummary(jsonStr string) {
	var resp processor.Response
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		log.Printf("parse result failed: %v", err)
		fmt.Println(jsonStr)
		return
	}

	fmt.Printf("status: %s\n", resp.Message)
	for _, section := range resp.Result {
		fmt.Printf("\n--- %s (%d 條新聞) ---\n", section.Title, len(section.Data))
		for i, entry := range section.Data {
			if i >= 5 {
				fmt.Printf("... 還有 %d 條新聞\n", len(section.Data)-5)
				break
			}
			fmt.Printf("%d. %s\n", i+1, entry.Text)
		}
	}
}
