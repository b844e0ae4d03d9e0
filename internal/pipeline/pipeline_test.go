package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/retrieve"
	"github.com/ppiankov/truthscope/internal/score"
	"github.com/ppiankov/truthscope/internal/scrape"
	"github.com/ppiankov/truthscope/internal/search"
	"github.com/ppiankov/truthscope/internal/similarity"
	"github.com/ppiankov/truthscope/internal/trust"
)

const testHeadline = "Delhi weather sees sudden turn as rain and dust storms bring temperatures down"

// newScraperStub serves heads by URL over the extraction protocol.
func newScraperStub(t *testing.T, heads map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(scrape.Article{Head: heads[req.URL]})
	}))
}

func newSearchStub(t *testing.T, urls []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type item struct {
			Link  string `json:"link"`
			Title string `json:"title"`
		}
		var resp struct {
			Items []item `json:"items"`
		}
		for i, u := range urls {
			resp.Items = append(resp.Items, item{Link: u, Title: fmt.Sprintf("result %d", i)})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestPipeline(t *testing.T, scraperURL, searchURL string, weights map[string]float64) *Pipeline {
	t.Helper()

	policy := scrape.RetryPolicy{MaxAttempts: 2, Base: time.Millisecond, Timeout: time.Second}
	client := scrape.NewClient(scrape.ClientConfig{
		Endpoint:     scraperURL,
		Policy:       policy,
		ProbeTimeout: time.Second,
	})

	searcher, err := search.NewGoogleClient(search.GoogleConfig{
		APIKey:   "test-key",
		EngineID: "test-cx",
		BaseURL:  searchURL,
		Policy:   policy,
	})
	if err != nil {
		t.Fatalf("NewGoogleClient: %v", err)
	}

	extractor := keywords.NewStatisticalExtractor()
	engine := similarity.NewEngine(similarity.StrategyLexical, nil, keywords.ModeBasic, nil)
	registry := trust.NewRegistry(weights, trust.LookupExactFirst)

	return New(Config{
		Extractor:  extractor,
		Discoverer: search.NewDiscoverer(searcher, extractor, 4, nil),
		Retriever:  retrieve.NewRetriever(retrieve.Config{Client: client, Extractor: extractor}),
		Scorer:     score.NewScorer(engine, registry, nil),
		Resolver:   client,
	})
}

func TestPipeline_HighCredibility(t *testing.T) {
	urls := []string{
		"https://www.high-trust.com/a",
		"https://www.mid-trust.com/b",
		"https://www.extra-trust.com/c",
	}
	heads := map[string]string{}
	for _, u := range urls {
		heads[u] = testHeadline
	}
	scraper := newScraperStub(t, heads)
	defer scraper.Close()
	searchSrv := newSearchStub(t, urls)
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, map[string]float64{
		"high-trust.com":  6.0,
		"mid-trust.com":   4.0,
		"extra-trust.com": 2.5,
	})

	report := p.Analyze(context.Background(), testHeadline)

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if report.Input.Type != model.InputTypeHeadline {
		t.Errorf("input type = %v, want headline", report.Input.Type)
	}
	// Identical headlines give similarity 1.0, so the total is the weight sum.
	if math.Abs(report.Credibility.TotalScore-12.5) > 1e-9 {
		t.Errorf("total = %v, want 12.5", report.Credibility.TotalScore)
	}
	if report.Credibility.Level != model.LevelHigh {
		t.Errorf("level = %v, want high", report.Credibility.Level)
	}
	if report.Credibility.SourcesAnalyzed != 3 {
		t.Errorf("sources analyzed = %d, want 3", report.Credibility.SourcesAnalyzed)
	}
	if len(report.Sources) != 3 {
		t.Fatalf("got %d report sources, want 3", len(report.Sources))
	}
	if report.Sources[0].URL != "https://www.high-trust.com/a" {
		t.Errorf("sources not ranked by weighted score: %q first", report.Sources[0].URL)
	}
	if w := report.WeightsUsed["high-trust.com"]; w != 6.0 {
		t.Errorf("weights_used[high-trust.com] = %v, want 6.0", w)
	}
}

func TestPipeline_SingleTrustedIdenticalSource(t *testing.T) {
	url := "https://www.bbc.com/news/1"
	scraper := newScraperStub(t, map[string]string{url: testHeadline})
	defer scraper.Close()
	searchSrv := newSearchStub(t, []string{url})
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, map[string]float64{"bbc.com": 5.0})
	report := p.Analyze(context.Background(), testHeadline)

	if math.Abs(report.Credibility.TotalScore-5.0) > 1e-9 {
		t.Errorf("total = %v, want 5.0", report.Credibility.TotalScore)
	}
	if report.Credibility.Level != model.LevelFair {
		t.Errorf("level = %v, want fair", report.Credibility.Level)
	}
}

func TestPipeline_DisjointSourceCountedButZero(t *testing.T) {
	url := "https://www.example.com/sports"
	scraper := newScraperStub(t, map[string]string{
		url: "Cricket team celebrates championship victory parade downtown",
	})
	defer scraper.Close()
	searchSrv := newSearchStub(t, []string{url})
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, nil)
	report := p.Analyze(context.Background(), testHeadline)

	if report.Credibility.TotalScore != 0 {
		t.Errorf("total = %v, want 0", report.Credibility.TotalScore)
	}
	if report.Credibility.SourcesAnalyzed != 1 {
		t.Errorf("sources analyzed = %d, want 1 (zero similarity still counts)", report.Credibility.SourcesAnalyzed)
	}
	if report.Credibility.Level != model.LevelVeryLow {
		t.Errorf("level = %v, want very_low", report.Credibility.Level)
	}
}

func TestPipeline_EmptyInput(t *testing.T) {
	p := newTestPipeline(t, "http://127.0.0.1:0", "http://127.0.0.1:0", nil)
	report := p.Analyze(context.Background(), "   ")

	if report.Error == "" {
		t.Fatal("expected degraded report for empty input")
	}
	if report.Credibility.Level != model.LevelUnknown {
		t.Errorf("level = %v, want unknown", report.Credibility.Level)
	}
}

func TestPipeline_URLInputResolvedToHeadline(t *testing.T) {
	article := "https://www.bbc.com/news/article-1"
	related := "https://www.ndtv.com/related"
	scraper := newScraperStub(t, map[string]string{
		article: testHeadline,
		related: testHeadline,
	})
	defer scraper.Close()
	searchSrv := newSearchStub(t, []string{related})
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, nil)
	report := p.Analyze(context.Background(), article)

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if report.Input.Type != model.InputTypeURL {
		t.Errorf("input type = %v, want url", report.Input.Type)
	}
	if report.Input.Text != article {
		t.Errorf("input text = %q, want original URL", report.Input.Text)
	}
	if report.Credibility.Headline != testHeadline {
		t.Errorf("headline = %q, want resolved headline", report.Credibility.Headline)
	}
}

func TestPipeline_URLInputWithoutHeadline(t *testing.T) {
	article := "https://www.bbc.com/news/article-1"
	scraper := newScraperStub(t, map[string]string{article: ""})
	defer scraper.Close()

	p := newTestPipeline(t, scraper.URL, "http://127.0.0.1:0", nil)
	report := p.Analyze(context.Background(), article)

	if report.Error == "" {
		t.Fatal("expected degraded report when no headline can be extracted")
	}
	if report.Credibility.Level != model.LevelUnknown {
		t.Errorf("level = %v, want unknown", report.Credibility.Level)
	}
}

func TestPipeline_NoSourcesFound(t *testing.T) {
	scraper := newScraperStub(t, nil)
	defer scraper.Close()
	searchSrv := newSearchStub(t, nil)
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, nil)
	report := p.Analyze(context.Background(), testHeadline)

	if report.Error != ErrNoSourcesFound.Error() {
		t.Fatalf("error = %q, want %q", report.Error, ErrNoSourcesFound)
	}
	if report.Credibility.Level != model.LevelUnknown {
		t.Errorf("level = %v, want unknown with no sources", report.Credibility.Level)
	}
	if report.Credibility.Headline != testHeadline {
		t.Errorf("degraded report lost the headline: %q", report.Credibility.Headline)
	}
	if len(report.Credibility.Keywords) == 0 {
		t.Error("degraded report lost the claim keyphrases")
	}
	if len(report.Sources) != 0 {
		t.Errorf("got %d sources, want 0", len(report.Sources))
	}
}

func TestPipeline_OnlyInvalidURLsIsNoSources(t *testing.T) {
	scraper := newScraperStub(t, nil)
	defer scraper.Close()
	searchSrv := newSearchStub(t, []string{"not a url", "ftp://example.com/x"})
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, nil)
	report := p.Analyze(context.Background(), testHeadline)

	if report.Error != ErrNoSourcesFound.Error() {
		t.Fatalf("error = %q, want %q", report.Error, ErrNoSourcesFound)
	}
}

func TestPipeline_SearchFailureDegrades(t *testing.T) {
	scraper := newScraperStub(t, nil)
	defer scraper.Close()
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer searchSrv.Close()

	p := newTestPipeline(t, scraper.URL, searchSrv.URL, nil)
	report := p.Analyze(context.Background(), testHeadline)

	if report.Error == "" {
		t.Fatal("expected degraded report on search failure")
	}
	if !strings.Contains(report.Error, ErrDiscovery.Error()) {
		t.Errorf("error %q does not carry the discovery cause", report.Error)
	}
	if report.Credibility.Headline != testHeadline {
		t.Errorf("degraded report lost the headline: %q", report.Credibility.Headline)
	}
	if len(report.Credibility.Keywords) == 0 {
		t.Error("degraded report lost the claim keyphrases")
	}
}

func TestSaveJSON(t *testing.T) {
	report := degradedReport("x", model.InputTypeHeadline, "", nil, "test")
	path := filepath.Join(t.TempDir(), "report.json")

	if err := SaveJSON(path, report); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var loaded model.Report
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if loaded.Error != "test" {
		t.Errorf("round-tripped error = %q", loaded.Error)
	}
}

func TestRound3(t *testing.T) {
	if got := round3(12.3456); got != 12.346 {
		t.Errorf("round3(12.3456) = %v", got)
	}
	if got := round3(11.999); got != 11.999 {
		t.Errorf("round3(11.999) = %v", got)
	}
}
