package favorites

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civichub/internal/auth"
	"civichub/internal/prefs"
	synchub "civichub/internal/sync"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newTestRouter(t *testing.T, hub *synchub.Hub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := prefs.NewManager(&memKV{data: make(map[string]string)})
	t.Cleanup(manager.Close)

	r := gin.New()
	grp := r.Group("/users")
	grp.Use(func(c *gin.Context) {
		c.Set(auth.CtxClaimsKey, &auth.Claims{UserID: "u1", Username: "tester"})
		c.Next()
	})
	NewHandler(manager, hub).RegisterRoutes(grp)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFavoritesRoundTrip(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/users/favorites", `{"id":"constitution"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// idempotent add
	w = do(r, http.MethodPost, "/users/favorites", `{"id":"constitution"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/users/favorites", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total  int      `json:"total"`
		Loaded bool     `json:"loaded"`
		Items  []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.True(t, resp.Loaded)
	assert.Equal(t, []string{"constitution"}, resp.Items)
}

func TestFavoritesToggle(t *testing.T) {
	r := newTestRouter(t, nil)

	var resp struct {
		Favorited bool `json:"favorited"`
	}

	w := do(r, http.MethodPost, "/users/favorites/legislative/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Favorited)

	w = do(r, http.MethodPost, "/users/favorites/legislative/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Favorited)
}

func TestFavoritesRemoveAndClear(t *testing.T) {
	r := newTestRouter(t, nil)

	do(r, http.MethodPost, "/users/favorites", `{"id":"a"}`)
	do(r, http.MethodPost, "/users/favorites", `{"id":"b"}`)

	w := do(r, http.MethodDelete, "/users/favorites/a", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/users/favorites", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/users/favorites", "")
	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
}

func TestFavoritesEventsInMutationOrder(t *testing.T) {
	hub := synchub.NewHub()
	r := newTestRouter(t, hub)

	client, server := net.Pipe()
	defer client.Close()
	hub.Add(server)

	lines := make(chan string, 8)
	go func() {
		sc := bufio.NewScanner(client)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	readLine := func() string {
		select {
		case l := <-lines:
			return l
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return ""
		}
	}

	do(r, http.MethodPost, "/users/favorites", `{"id":"constitution"}`)
	do(r, http.MethodPost, "/users/favorites/constitution/toggle", "")

	var first, second synchub.PrefEvent
	require.NoError(t, json.Unmarshal([]byte(readLine()), &first))
	require.NoError(t, json.Unmarshal([]byte(readLine()), &second))

	// add then un-toggle must arrive in that order
	assert.Equal(t, synchub.EventFavoriteUpdate, first.Type)
	assert.Equal(t, "constitution", first.RefID)
	assert.Equal(t, synchub.EventFavoriteRemove, second.Type)
	assert.Equal(t, "constitution", second.RefID)
}

func TestFavoritesAddRequiresID(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/users/favorites", `{"id":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
