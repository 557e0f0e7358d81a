package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Tim0320/xiaomi-search/internal/collector"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	snapshotFileName = "recword.json"
	snapshotCacheKey = "hotwords:latest"
	// 與下發協議裡的 updateIntervalMinutes 保持一致
	snapshotCacheTTL = 20 * time.Minute
)

// HotNews 歷史新聞記錄，URL 作為冪等鍵避免重複入庫
type HotNews struct {
	ID        string            `gorm:"primaryKey;size:40" json:"id"`
	Title     string            `gorm:"size:512" json:"title"`
	URL       string            `gorm:"size:1024;uniqueIndex" json:"url"`
	Source    string            `gorm:"size:64;index" json:"source"`
	ExtraData datatypes.JSONMap `gorm:"type:jsonb" json:"extraData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store 三層持久化：本地快照文件為準，Redis 做短 TTL 緩存，
// Postgres 歷史表可選（未配置或連不上時降級為僅文件）
type Store struct {
	DB    *gorm.DB
	Redis *redis.Client

	jsonPath string
}

func NewStore(dsn, redisAddr, dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{jsonPath: filepath.Join(dataDir, snapshotFileName)}

	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("warn: postgres open failed, history disabled: %v", err)
		} else if err := db.AutoMigrate(&HotNews{}); err != nil {
			log.Printf("warn: automigrate failed, history disabled: %v", err)
		} else {
			s.DB = db
		}
	}

	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

// SaveSnapshot 寫入最新的下發 JSON：落盤並回寫 Redis 緩存
func (s *Store) SaveSnapshot(jsonStr string) error {
	if err := os.WriteFile(s.jsonPath, []byte(jsonStr), 0o644); err != nil {
		return err
	}
	log.Printf("saved snapshot to %s, %d bytes", s.jsonPath, len(jsonStr))

	if s.Redis != nil {
		ctx := context.Background()
		if err := s.Redis.Set(ctx, snapshotCacheKey, jsonStr, snapshotCacheTTL).Err(); err != nil {
			log.Printf("warn: cache snapshot failed: %v", err)
		}
	}
	return nil
}

// LoadSnapshot 讀取最新快照，優先 Redis 緩存，其次本地文件
func (s *Store) LoadSnapshot() (string, bool) {
	if s.Redis != nil {
		ctx := context.Background()
		if v, err := s.Redis.Get(ctx, snapshotCacheKey).Result(); err == nil && v != "" {
			return v, true
		}
	}

	data, err := os.ReadFile(s.jsonPath)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// ClearSnapshot 丟棄上一次的快照，刷新前調用
func (s *Store) ClearSnapshot() {
	if err := os.Remove(s.jsonPath); err != nil && !os.IsNotExist(err) {
		log.Printf("warn: remove old snapshot: %v", err)
	}
	if s.Redis != nil {
		_ = s.Redis.Del(context.Background(), snapshotCacheKey).Err()
	}
}

// SaveRecords 把本輪接受的新聞寫入歷史表，已存在的 URL 跳過
func (s *Store) SaveRecords(items []collector.NewsItem) error {
	if s.DB == nil {
		return nil
	}

	for rank, it := range items {
		n := &HotNews{
			ID:     hashURL(it.URL),
			Title:  it.Title,
			URL:    it.URL,
			Source: it.Source,
			ExtraData: datatypes.JSONMap{
				"rank": rank + 1,
			},
		}
		if err := s.DB.Where("url = ?", it.URL).FirstOrCreate(n).Error; err != nil {
			return err
		}
	}
	return nil
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}
