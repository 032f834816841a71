package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"civichub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type searchResponse struct {
	Query string                `json:"query"`
	Total int                   `json:"total"`
	Items []models.SearchResult `json:"items"`
}

type favoritesResponse struct {
	Total  int      `json:"total"`
	Loaded bool     `json:"loaded"`
	Items  []string `json:"items"`
}

type historyResponse struct {
	Total int                   `json:"total"`
	Items []models.HistoryEntry `json:"items"`
}

type quizResponse struct {
	Total int                   `json:"total"`
	Items []models.QuizQuestion `json:"items"`
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	baseURL := os.Getenv("CIVICHUB_API")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 15 * time.Second}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "register", "login":
		handleAuth(ctx, client, baseURL, cmd, rest)
	case "search":
		handleSearch(ctx, client, baseURL, rest)
	case "topic":
		handleTopic(ctx, client, baseURL, rest)
	case "fav":
		handleFavorites(ctx, client, baseURL, rest)
	case "history":
		handleHistory(ctx, client, baseURL, rest)
	case "quiz":
		handleQuiz(ctx, client, baseURL, rest)
	case "watch":
		handleWatch(rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: civichub <command> [args]

  register <username> <password>   create an account
  login    <username> <password>   log in, save token
  search   <query>                 search the corpus
  topic    <id>                    show one topic
  fav      list|add|rm|toggle|clear [id]
  history  list|last|record|clear [topic_id]
  quiz     [count]                 fetch a random quiz
  watch    [addr]                  stream preference events (default localhost:7071)

CIVICHUB_API overrides the API base URL (default http://localhost:8080).`)
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".civichub", "token.json")
}

func saveToken(token string) error {
	p := tokenPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(tokenData{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func loadToken() string {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	var td tokenData
	if err := json.Unmarshal(b, &td); err != nil {
		return ""
	}
	return td.Token
}

func doJSON(ctx context.Context, client *http.Client, method, rawURL, token string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, cmd string, args []string) {
	if len(args) < 2 {
		log.Fatalf("usage: civichub %s <username> <password>", cmd)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	body := map[string]string{"username": args[0], "password": args[1]}
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/"+cmd, "", body, &resp); err != nil {
		log.Fatalf("%s failed: %v", cmd, err)
	}
	if err := saveToken(resp.Token); err != nil {
		log.Fatalf("save token: %v", err)
	}
	fmt.Printf("logged in as %s\n", resp.User.Username)
}

func handleSearch(ctx context.Context, client *http.Client, baseURL string, args []string) {
	if len(args) == 0 {
		log.Fatal("usage: civichub search <query>")
	}
	q := strings.Join(args, " ")

	var resp searchResponse
	u := baseURL + "/search?q=" + url.QueryEscape(q)
	if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &resp); err != nil {
		log.Fatalf("search failed: %v", err)
	}

	if resp.Total == 0 {
		fmt.Println("no results")
		return
	}
	for _, r := range resp.Items {
		fmt.Printf("%6d  %-30s  %s\n", r.Score, r.Title, r.Breadcrumb)
	}
}

func handleTopic(ctx context.Context, client *http.Client, baseURL string, args []string) {
	if len(args) == 0 {
		log.Fatal("usage: civichub topic <id>")
	}

	var resp struct {
		Topic      models.Topic `json:"topic"`
		Breadcrumb string       `json:"breadcrumb"`
		Route      string       `json:"route"`
	}
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/topics/"+url.PathEscape(args[0]), "", nil, &resp); err != nil {
		log.Fatalf("topic failed: %v", err)
	}

	fmt.Printf("%s\n%s\n\n%s\n", resp.Topic.Title, resp.Breadcrumb, resp.Topic.Summary)
	if resp.Topic.FullText != "" {
		fmt.Printf("\n%s\n", resp.Topic.FullText)
	}
	fmt.Printf("\nroute: %s\n", resp.Route)
}

func handleFavorites(ctx context.Context, client *http.Client, baseURL string, args []string) {
	token := loadToken()
	if token == "" {
		log.Fatal("not logged in; run: civichub login <username> <password>")
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		var resp favoritesResponse
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/users/favorites", token, nil, &resp); err != nil {
			log.Fatalf("favorites failed: %v", err)
		}
		if resp.Total == 0 {
			fmt.Println("no favorites")
			return
		}
		for _, id := range resp.Items {
			fmt.Println(id)
		}
	case "add":
		if len(args) < 2 {
			log.Fatal("usage: civichub fav add <id>")
		}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/favorites", token, map[string]string{"id": args[1]}, nil); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		fmt.Println("added")
	case "rm":
		if len(args) < 2 {
			log.Fatal("usage: civichub fav rm <id>")
		}
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/favorites/"+url.PathEscape(args[1]), token, nil, nil); err != nil {
			log.Fatalf("rm failed: %v", err)
		}
		fmt.Println("removed")
	case "toggle":
		if len(args) < 2 {
			log.Fatal("usage: civichub fav toggle <id>")
		}
		var resp struct {
			Favorited bool `json:"favorited"`
		}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/favorites/"+url.PathEscape(args[1])+"/toggle", token, nil, &resp); err != nil {
			log.Fatalf("toggle failed: %v", err)
		}
		fmt.Printf("favorited: %v\n", resp.Favorited)
	case "clear":
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/favorites", token, nil, nil); err != nil {
			log.Fatalf("clear failed: %v", err)
		}
		fmt.Println("cleared")
	default:
		log.Fatal("usage: civichub fav list|add|rm|toggle|clear [id]")
	}
}

func handleHistory(ctx context.Context, client *http.Client, baseURL string, args []string) {
	token := loadToken()
	if token == "" {
		log.Fatal("not logged in; run: civichub login <username> <password>")
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		var resp historyResponse
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/users/history", token, nil, &resp); err != nil {
			log.Fatalf("history failed: %v", err)
		}
		if resp.Total == 0 {
			fmt.Println("no history")
			return
		}
		for _, e := range resp.Items {
			fmt.Printf("%s  %-30s  %s\n", e.ViewedAt.Local().Format("2006-01-02 15:04"), e.Title, e.TopicID)
		}
	case "last":
		var e models.HistoryEntry
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/users/history/last", token, nil, &e); err != nil {
			log.Fatalf("last failed: %v", err)
		}
		fmt.Printf("%s (%s)\n", e.Title, e.TopicID)
	case "record":
		if len(args) < 2 {
			log.Fatal("usage: civichub history record <topic_id>")
		}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/history", token, map[string]string{"topic_id": args[1]}, nil); err != nil {
			log.Fatalf("record failed: %v", err)
		}
		fmt.Println("recorded")
	case "clear":
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/history", token, nil, nil); err != nil {
			log.Fatalf("clear failed: %v", err)
		}
		fmt.Println("cleared")
	default:
		log.Fatal("usage: civichub history list|last|record|clear [topic_id]")
	}
}

func handleQuiz(ctx context.Context, client *http.Client, baseURL string, args []string) {
	count := 5
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			count = n
		}
	}

	var resp quizResponse
	u := fmt.Sprintf("%s/quiz?count=%d", baseURL, count)
	if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &resp); err != nil {
		log.Fatalf("quiz failed: %v", err)
	}

	for i, q := range resp.Items {
		fmt.Printf("%d. %s\n", i+1, q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("   %c) %s\n", 'a'+j, opt)
		}
		fmt.Println()
	}
}

func handleWatch(args []string) {
	addr := "localhost:7071"
	if len(args) > 0 {
		addr = args[0]
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatalf("connect %s: %v", addr, err)
	}
	defer conn.Close()
	log.Printf("watching preference events on %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fmt.Println(sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("stream error: %v", err)
	}
}
