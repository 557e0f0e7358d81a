package api

import (
	"net/http"

	"github.com/Tim0320/xiaomi-search/internal/scheduler"
	"github.com/Tim0320/xiaomi-search/internal/storage"
	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

type Server struct {
	store *storage.Store
	sched *scheduler.Scheduler
}

func NewServer(store *storage.Store, sched *scheduler.Scheduler) *Server {
	return &Server{store: store, sched: sched}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/hotwords", s.getHotWords)
		v1.POST("/hotwords/refresh", s.refreshHotWords)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getHotWords 返回最新快照；沒有可用快照時同步執行一輪採集。
// 快照本身已經是完整的下發 JSON，原樣透傳。
func (s *Server) getHotWords(c *gin.Context) {
	if jsonStr, ok := s.store.LoadSnapshot(); ok {
		c.Data(http.StatusOK, jsonContentType, []byte(jsonStr))
		return
	}
	c.Data(http.StatusOK, jsonContentType, []byte(s.sched.RunOnce()))
}

// refreshHotWords 手動觸發一輪採集並返回新快照
func (s *Server) refreshHotWords(c *gin.Context) {
	c.Data(http.StatusOK, jsonContentType, []byte(s.sched.RunOnce()))
}
