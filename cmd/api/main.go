package main

import (
	"log"

	"github.com/Tim0320/xiaomi-search/internal/api"
	"github.com/Tim0320/xiaomi-search/internal/collector"
	"github.com/Tim0320/xiaomi-search/internal/config"
	"github.com/Tim0320/xiaomi-search/internal/processor"
	"github.com/Tim0320/xiaomi-search/internal/scheduler"
	"github.com/Tim0320/xiaomi-search/internal/storage"
	"github.com/gin-gonic/gin"
)

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
	s.Start()

	r := gin.Default()
	apiServer := api.NewServer(store, s)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
