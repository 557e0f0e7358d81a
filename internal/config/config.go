package config

import (
	"log"
	"os"
)

type Config struct {
	AppPort string

	// PostgresDSN 留空則不啟用歷史入庫
	PostgresDSN string
	// RedisAddr 留空則不啟用快照緩存
	RedisAddr string

	// CronSpec 刷新週期，默認 20 分鐘與下發的 updateIntervalMinutes 對齊
	CronSpec string
	// DataDir 快照文件 recword.json 所在目錄
	DataDir string
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		CronSpec:    getEnv("CRON_SPEC", "*/20 * * * *"),
		DataDir:     getEnv("DATA_DIR", "."),
	}

	log.Printf("config loaded: port=%s cron=%s dataDir=%s", cfg.AppPort, cfg.CronSpec, cfg.DataDir)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
