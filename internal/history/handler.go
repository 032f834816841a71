// Package history exposes the per-user reading-history endpoints.
package history

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"civichub/internal/auth"
	"civichub/internal/index"
	"civichub/internal/prefs"
	"civichub/internal/sync"
	"civichub/pkg/models"
)

type Handler struct {
	Prefs *prefs.Manager
	Index *index.Index
	Hub   *sync.Hub
}

func NewHandler(m *prefs.Manager, ix *index.Index, hub *sync.Hub) *Handler {
	return &Handler{Prefs: m, Index: ix, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.GET("/history/last", h.last)
	rg.POST("/history", h.record)
	rg.DELETE("/history", h.clear)
}

type recordReq struct {
	TopicID string `json:"topic_id"`
}

func (h *Handler) record(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	topicID := strings.TrimSpace(req.TopicID)
	if topicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic_id required"})
		return
	}

	// resolve display fields from the corpus; a visit to a topic that has
	// since been removed still records, just without titles
	entry := models.HistoryEntry{
		TopicID:  topicID,
		ViewedAt: time.Now().UTC(),
	}
	if ref, ok := h.Index.Lookup(topicID); ok {
		entry.Title = ref.Topic.Title
		entry.DomainTitle = ref.Domain.Title
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	store.RecordVisit(entry)

	// synchronous so subscribers see visits in the order they happened
	if h.Hub != nil {
		h.Hub.Broadcast(sync.PrefEvent{
			Type:   sync.EventHistoryVisit,
			UserID: claims.UserID,
			RefID:  topicID,
			Title:  entry.Title,
			At:     entry.ViewedAt,
		})
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	entries := store.Recent()
	c.JSON(http.StatusOK, gin.H{
		"total":  len(entries),
		"loaded": store.Loaded(),
		"items":  entries,
	})
}

func (h *Handler) last(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	entry, ok := store.LastRead()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no history"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) clear(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	if err := store.ClearHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}
