package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/122.0.0.0 Safari/537.36"

// maxFetchBytes caps how much of a page is read before extraction.
const maxFetchBytes = 4 << 20

// Server is the built-in article extraction service. It accepts URLs over
// POST /scrape and returns the extracted head and body text, so analyses
// can run without an external scraper process.
type Server struct {
	fetcher   *http.Client
	robots    *RobotsChecker
	userAgent string
	logger    *zap.Logger
}

// ServerConfig holds the extraction service settings.
type ServerConfig struct {
	FetchTimeout time.Duration
	UserAgent    string
	Logger       *zap.Logger
}

// NewServer creates the extraction service.
func NewServer(cfg ServerConfig) *Server {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		fetcher:   &http.Client{Timeout: timeout},
		robots:    NewRobotsChecker(ua, timeout),
		userAgent: ua,
		logger:    logger,
	}
}

// Handler returns the HTTP handler for the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/scrape", s.handleScrape)
	return r
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, Article{Error: "No URL given"})
		return
	}

	art := s.scrape(r.Context(), req.URL)
	if art.Error != "" {
		s.logger.Warn("scrape failed", zap.String("url", req.URL), zap.String("error", art.Error))
	}
	writeJSON(w, http.StatusOK, art)
}

func (s *Server) scrape(ctx context.Context, rawURL string) Article {
	if !s.robots.Allowed(ctx, rawURL) {
		return Article{Error: "Blocked by robots.txt"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Article{Error: fmt.Sprintf("Request failed: %v", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.fetcher.Do(req)
	if err != nil {
		return Article{Error: fmt.Sprintf("Request failed: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Article{Error: fmt.Sprintf("Request failed: status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return Article{Error: fmt.Sprintf("Request failed: %v", err)}
	}

	return ExtractArticle(body, rawURL)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
