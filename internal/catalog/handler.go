// Package catalog exposes the public content endpoints: domains, topics,
// search, states, glossary and quizzes.
package catalog

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"civichub/internal/content"
	"civichub/internal/glossary"
	"civichub/internal/index"
	"civichub/internal/quiz"
	"civichub/internal/routes"
	"civichub/internal/search"
)

const defaultQuizSize = 5

type Handler struct {
	Provider *content.Provider
	Index    *index.Index
	Engine   *search.Engine
	Glossary *glossary.Glossary
}

func NewHandler(p *content.Provider, ix *index.Index, e *search.Engine, g *glossary.Glossary) *Handler {
	return &Handler{Provider: p, Index: ix, Engine: e, Glossary: g}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/domains", h.listDomains)
	rg.GET("/domains/:id", h.getDomain)
	rg.GET("/topics/:id", h.getTopic)
	rg.GET("/search", h.search)
	rg.GET("/states", h.listStates)
	rg.GET("/states/:code", h.getState)
	rg.GET("/glossary", h.listGlossary)
	rg.GET("/glossary/:term", h.getGlossaryTerm)
	rg.GET("/quiz", h.getQuiz)
}

func (h *Handler) listDomains(c *gin.Context) {
	domains := h.Provider.Domains()
	c.JSON(http.StatusOK, gin.H{
		"total": len(domains),
		"items": domains,
	})
}

func (h *Handler) getDomain(c *gin.Context) {
	d, ok := h.Provider.DomainByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) getTopic(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ref, ok := h.Index.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":       ref.Topic,
		"category":    gin.H{"id": ref.Category.ID, "title": ref.Category.Title},
		"domain":      gin.H{"id": ref.Domain.ID, "title": ref.Domain.Title},
		"breadcrumb":  ref.Domain.Title + index.BreadcrumbSeparator + ref.Category.Title,
		"route":       routes.Resolve(id),
		"is_document": routes.IsFoundingDocument(id),
	})
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	results := h.Engine.Search(q)
	c.JSON(http.StatusOK, gin.H{
		"query": strings.TrimSpace(q),
		"total": len(results),
		"items": results,
	})
}

func (h *Handler) listStates(c *gin.Context) {
	states := h.Provider.States()
	c.JSON(http.StatusOK, gin.H{
		"total": len(states),
		"items": states,
	})
}

func (h *Handler) getState(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	st, ok := h.Provider.StateByCode(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":       st,
		"favorite_id": st.FavoriteID(),
	})
}

func (h *Handler) listGlossary(c *gin.Context) {
	terms := h.Glossary.Terms()
	c.JSON(http.StatusOK, gin.H{
		"total": len(terms),
		"items": terms,
	})
}

func (h *Handler) getGlossaryTerm(c *gin.Context) {
	entry, ok := h.Glossary.Lookup(c.Param("term"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) getQuiz(c *gin.Context) {
	count := parseInt(c.Query("count"), defaultQuizSize)
	if count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be > 0"})
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	questions := quiz.Generate(h.Provider.QuizPool(), count, rng)
	c.JSON(http.StatusOK, gin.H{
		"total": len(questions),
		"items": questions,
	})
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
