// Package favorites exposes the per-user favorites endpoints on top of the
// preference store.
package favorites

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"civichub/internal/auth"
	"civichub/internal/prefs"
	"civichub/internal/sync"
)

type Handler struct {
	Prefs *prefs.Manager
	Hub   *sync.Hub
}

func NewHandler(m *prefs.Manager, hub *sync.Hub) *Handler {
	return &Handler{Prefs: m, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.list)
	rg.POST("/favorites", h.add)
	rg.POST("/favorites/:id/toggle", h.toggle)
	rg.DELETE("/favorites/:id", h.remove)
	rg.DELETE("/favorites", h.clear)
}

type addReq struct {
	ID string `json:"id"`
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

	ids := store.Favorites()
	c.JSON(http.StatusOK, gin.H{
		"total":  len(ids),
		"loaded": store.Loaded(),
		"items":  ids,
	})
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	store.AddFavorite(id)
	h.broadcast(sync.EventFavoriteUpdate, claims.UserID, id, true)

	c.JSON(http.StatusOK, gin.H{"id": id, "favorited": true})
}

func (h *Handler) toggle(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	favorited := store.ToggleFavorite(id)
	if favorited {
		h.broadcast(sync.EventFavoriteUpdate, claims.UserID, id, true)
	} else {
		h.broadcast(sync.EventFavoriteRemove, claims.UserID, id, false)
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "favorited": favorited})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	store, err := h.Prefs.ForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	store.RemoveFavorite(id)
	h.broadcast(sync.EventFavoriteRemove, claims.UserID, id, false)

	c.JSON(http.StatusOK, gin.H{"id": id, "favorited": false})
}

// clear is the one favorites path where a durable-storage failure is
// reported to the caller instead of swallowed.
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

	if err := store.ClearFavorites(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

// broadcast is synchronous so subscribers observe events in mutation
// order; Broadcast drops slow clients rather than blocking on them.
func (h *Handler) broadcast(eventType, userID, refID string, favorited bool) {
	if h.Hub == nil {
		return
	}
	h.Hub.Broadcast(sync.PrefEvent{
		Type:      eventType,
		UserID:    userID,
		RefID:     refID,
		Favorited: favorited,
		At:        time.Now().UTC(),
	})
}
