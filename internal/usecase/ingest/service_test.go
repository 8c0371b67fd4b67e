package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/infra/summarizer"
	"ai-rss-hub/internal/repository"
)

/* ───────── stub implementations ───────── */

type stubFeedRepo struct {
	feeds   []*entity.Feed
	listErr error
}

func (s *stubFeedRepo) Get(context.Context, int64) (*entity.Feed, error)         { return nil, nil }
func (s *stubFeedRepo) GetByURL(context.Context, string) (*entity.Feed, error)   { return nil, nil }
func (s *stubFeedRepo) List(context.Context) ([]*entity.Feed, error)             { return s.feeds, nil }
func (s *stubFeedRepo) Create(context.Context, *entity.Feed) error               { return nil }
func (s *stubFeedRepo) Update(context.Context, *entity.Feed) error               { return nil }
func (s *stubFeedRepo) Delete(context.Context, int64) error                      { return nil }
func (s *stubFeedRepo) ListActive(context.Context) ([]*entity.Feed, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.feeds, nil
}

type summaryUpdate struct {
	primary   string
	secondary string
}

type stubArticleRepo struct {
	mu        sync.Mutex
	existing  map[string]bool
	created   []*entity.Article
	updates   map[int64]summaryUpdate
	nextID    int64
	createErr error
	existsErr error
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{
		existing: make(map[string]bool),
		updates:  make(map[int64]summaryUpdate),
	}
}

func (s *stubArticleRepo) ExistsByLink(_ context.Context, link string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[link], nil
}

func (s *stubArticleRepo) Create(_ context.Context, article *entity.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	article.ID = s.nextID
	s.existing[article.Link] = true
	s.created = append(s.created, article)
	return nil
}

func (s *stubArticleRepo) Get(context.Context, int64) (*entity.Article, error) { return nil, nil }

func (s *stubArticleRepo) List(context.Context, repository.ArticleFilters) ([]repository.ArticleWithFeed, error) {
	return nil, nil
}

func (s *stubArticleRepo) UpdateSummaries(_ context.Context, id int64, primary, secondary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates[id] = summaryUpdate{primary: primary, secondary: secondary}
	return nil
}

func (s *stubArticleRepo) ListMissingSummary(context.Context, int) ([]*entity.Article, error) {
	return nil, nil
}

func (s *stubArticleRepo) ListAll(context.Context, int) ([]*entity.Article, error) {
	return nil, nil
}

func (s *stubArticleRepo) createdLinks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	links := make([]string, 0, len(s.created))
	for _, a := range s.created {
		links = append(links, a.Link)
	}
	return links
}

type stubFetcher struct {
	items map[string][]FeedItem
	errs  map[string]error
	panic map[string]bool
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]FeedItem, error) {
	if s.panic != nil && s.panic[url] {
		panic("fetcher exploded")
	}
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	return s.items[url], nil
}

// stubSummarizer returns a fixed result and records the titles it was
// asked to summarize.
type stubSummarizer struct {
	mu     sync.Mutex
	result summarizer.Result
	calls  int
	titles []string
}

func (s *stubSummarizer) Enabled() bool { return true }

func (s *stubSummarizer) Summarize(_ context.Context, title, _ string) summarizer.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.titles = append(s.titles, title)
	return s.result
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSummarizer) seenTitles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.titles...)
}

// countingSummarizer tracks the maximum number of concurrent calls.
type countingSummarizer struct {
	mu      sync.Mutex
	current int
	max     int
}

func (c *countingSummarizer) Enabled() bool { return true }

func (c *countingSummarizer) Summarize(context.Context, string, string) summarizer.Result {
	c.mu.Lock()
	c.current++
	if c.current > c.max {
		c.max = c.current
	}
	c.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	c.mu.Lock()
	c.current--
	c.mu.Unlock()

	return summarizer.NoOp{MaxLength: 100}.Summarize(context.Background(), "标题", strings.Repeat("内容", 10))
}

func okSummary() summarizer.Result {
	return summarizer.NoOp{MaxLength: 100}.Summarize(context.Background(), "标题", "摘要内容足够长可以通过检查")
}

const longBody = "这是一篇内容足够长的文章正文，可以进入摘要生成流程。"

func feedFixture(id int64, url string) *entity.Feed {
	return &entity.Feed{ID: id, Name: "feed", URL: url, Category: "tech", Active: true}
}

/* ───────── tests ───────── */

func TestRunCycle_StoresNewArticlesAndSummaries(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	articleRepo.existing["https://a.example/old"] = true
	summ := &stubSummarizer{result: okSummary()}
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {
			{Title: "new", Link: "https://a.example/new", Content: longBody},
			{Title: "old", Link: "https://a.example/old", Content: longBody},
		},
	}}

	svc := NewService(feedRepo, articleRepo, summ, fetcher, nil, Config{})
	stats, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if stats.FeedsProcessed != 1 {
		t.Errorf("FeedsProcessed = %d, want 1", stats.FeedsProcessed)
	}
	if stats.NewArticles != 1 {
		t.Errorf("NewArticles = %d, want 1", stats.NewArticles)
	}
	if got := articleRepo.createdLinks(); len(got) != 1 || got[0] != "https://a.example/new" {
		t.Errorf("created links = %v, want [https://a.example/new]", got)
	}
	if len(articleRepo.updates) != 1 {
		t.Errorf("summary updates = %d, want 1", len(articleRepo.updates))
	}
	for _, u := range articleRepo.updates {
		if u.primary == "" {
			t.Error("primary summary not stored")
		}
	}
}

func TestRunCycle_PassesArticleTitleToSummarizer(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	summ := &stubSummarizer{result: okSummary()}
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {
			{Title: "量子计算的最新突破", Link: "https://a.example/quantum", Content: longBody},
		},
	}}

	svc := NewService(feedRepo, articleRepo, summ, fetcher, nil, Config{})
	if _, err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	titles := summ.seenTitles()
	if len(titles) != 1 || titles[0] != "量子计算的最新突破" {
		t.Errorf("summarizer saw titles %v, want the article title", titles)
	}
}

func TestRunCycle_ListFeedsErrorPropagates(t *testing.T) {
	feedRepo := &stubFeedRepo{listErr: errors.New("db down")}
	svc := NewService(feedRepo, newStubArticleRepo(), nil, &stubFetcher{}, nil, Config{})

	if _, err := svc.RunCycle(context.Background()); err == nil {
		t.Fatal("expected error when feed listing fails")
	}
}

func TestRunCycle_BrokenFeedDoesNotAbortOthers(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{
		feedFixture(1, "https://bad.example/rss"),
		feedFixture(2, "https://good.example/rss"),
	}}
	articleRepo := newStubArticleRepo()
	fetcher := &stubFetcher{
		errs: map[string]error{"https://bad.example/rss": errors.New("malformed xml")},
		items: map[string][]FeedItem{
			"https://good.example/rss": {{Title: "a", Link: "https://good.example/1", Content: longBody}},
		},
	}

	svc := NewService(feedRepo, articleRepo, &stubSummarizer{result: okSummary()}, fetcher, nil, Config{})
	stats, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if stats.FeedsProcessed != 2 {
		t.Errorf("FeedsProcessed = %d, want 2", stats.FeedsProcessed)
	}
	if stats.NewArticles != 1 {
		t.Errorf("NewArticles = %d, want 1", stats.NewArticles)
	}
}

func TestRunCycle_PanickingFeedIsContained(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{
		feedFixture(1, "https://panic.example/rss"),
		feedFixture(2, "https://good.example/rss"),
	}}
	articleRepo := newStubArticleRepo()
	fetcher := &stubFetcher{
		panic: map[string]bool{"https://panic.example/rss": true},
		items: map[string][]FeedItem{
			"https://good.example/rss": {{Title: "a", Link: "https://good.example/1", Content: longBody}},
		},
	}

	svc := NewService(feedRepo, articleRepo, &stubSummarizer{result: okSummary()}, fetcher, nil, Config{})
	stats, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if stats.NewArticles != 1 {
		t.Errorf("NewArticles = %d, want 1", stats.NewArticles)
	}
}

func TestRunCycle_ArticleKeptWhenSummarizationFails(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	failing := &stubSummarizer{result: summarizer.Disabled{}.Summarize(context.Background(), "", "")}
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {{Title: "t", Link: "https://a.example/1", Content: longBody}},
	}}

	svc := NewService(feedRepo, articleRepo, failing, fetcher, nil, Config{})
	stats, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if stats.NewArticles != 1 {
		t.Errorf("NewArticles = %d, want 1", stats.NewArticles)
	}
	if len(articleRepo.updates) != 0 {
		t.Errorf("unusable result must not update summaries, got %d updates", len(articleRepo.updates))
	}
}

func TestRunCycle_DisabledSummarizerStillPersists(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {{Title: "t", Link: "https://a.example/1", Content: longBody}},
	}}

	svc := NewService(feedRepo, articleRepo, summarizer.Disabled{}, fetcher, nil, Config{})
	stats, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if stats.NewArticles != 1 {
		t.Errorf("NewArticles = %d, want 1", stats.NewArticles)
	}
	if len(articleRepo.updates) != 0 {
		t.Errorf("disabled summarizer must not update summaries, got %d", len(articleRepo.updates))
	}
}

func TestRunCycle_ShortContentNotQueued(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	summ := &stubSummarizer{result: okSummary()}
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {{Title: "t", Link: "https://a.example/1", Content: "太短"}},
	}}

	svc := NewService(feedRepo, articleRepo, summ, fetcher, nil, Config{})
	if _, err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if summ.callCount() != 0 {
		t.Errorf("summarizer calls = %d, want 0 for short content", summ.callCount())
	}
	if got := articleRepo.createdLinks(); len(got) != 1 {
		t.Errorf("short article should still be stored, got %v", got)
	}
}

func TestRunCycle_SummarizationConcurrencyBounded(t *testing.T) {
	items := make([]FeedItem, 6)
	for i := range items {
		items[i] = FeedItem{
			Title:   "t",
			Link:    "https://a.example/" + string(rune('a'+i)),
			Content: longBody,
		}
	}
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	counter := &countingSummarizer{}
	fetcher := &stubFetcher{items: map[string][]FeedItem{"https://a.example/rss": items}}

	svc := NewService(feedRepo, articleRepo, counter, fetcher, nil, Config{MaxConcurrentSummaries: 2})
	if _, err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}

	if counter.max > 2 {
		t.Errorf("max concurrent summarizations = %d, want <= 2", counter.max)
	}
	if counter.max == 0 {
		t.Error("summarizer was never called")
	}
}

func TestRunCycle_SecondCycleIsIdempotent(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {{Title: "t", Link: "https://a.example/1", Content: longBody}},
	}}

	svc := NewService(feedRepo, articleRepo, &stubSummarizer{result: okSummary()}, fetcher, nil, Config{})

	first, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("first cycle error = %v", err)
	}
	second, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("second cycle error = %v", err)
	}

	if first.NewArticles != 1 {
		t.Errorf("first cycle NewArticles = %d, want 1", first.NewArticles)
	}
	if second.NewArticles != 0 {
		t.Errorf("second cycle NewArticles = %d, want 0", second.NewArticles)
	}
	if len(articleRepo.created) != 1 {
		t.Errorf("stored articles = %d, want 1", len(articleRepo.created))
	}
}

func TestRunCycle_MissingDateGetsIngestionTime(t *testing.T) {
	feedRepo := &stubFeedRepo{feeds: []*entity.Feed{feedFixture(1, "https://a.example/rss")}}
	articleRepo := newStubArticleRepo()
	fetcher := &stubFetcher{items: map[string][]FeedItem{
		"https://a.example/rss": {{Title: "t", Link: "https://a.example/1", Content: longBody}},
	}}

	before := time.Now()
	svc := NewService(feedRepo, articleRepo, summarizer.Disabled{}, fetcher, nil, Config{})
	if _, err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle error = %v", err)
	}
	after := time.Now()

	got := articleRepo.created[0].PublishedAt
	if got.Before(before) || got.After(after) {
		t.Errorf("PublishedAt = %v, want within [%v, %v]", got, before, after)
	}
}

type stubContentFetcher struct {
	content string
	err     error
}

func (s *stubContentFetcher) FetchContent(context.Context, string) (string, error) {
	return s.content, s.err
}

func TestEnhanceContent(t *testing.T) {
	item := FeedItem{Link: "https://a.example/1", Content: "thin"}

	t.Run("fetched content used when longer", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil,
			&stubContentFetcher{content: "much longer full article body"},
			Config{ContentFetchThreshold: 100})
		if got := svc.enhanceContent(context.Background(), item); got != "much longer full article body" {
			t.Errorf("enhanceContent = %q", got)
		}
	})

	t.Run("fetch error falls back to feed content", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil,
			&stubContentFetcher{err: errors.New("403")},
			Config{ContentFetchThreshold: 100})
		if got := svc.enhanceContent(context.Background(), item); got != "thin" {
			t.Errorf("enhanceContent = %q, want feed content", got)
		}
	})

	t.Run("sufficient feed content skips fetch", func(t *testing.T) {
		rich := FeedItem{Link: "https://a.example/1", Content: strings.Repeat("x", 200)}
		svc := NewService(nil, nil, nil, nil,
			&stubContentFetcher{content: "ignored"},
			Config{ContentFetchThreshold: 100})
		if got := svc.enhanceContent(context.Background(), rich); got != rich.Content {
			t.Errorf("enhanceContent should keep feed content")
		}
	})

	t.Run("nil fetcher keeps feed content", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil, nil, Config{ContentFetchThreshold: 100})
		if got := svc.enhanceContent(context.Background(), item); got != "thin" {
			t.Errorf("enhanceContent = %q, want feed content", got)
		}
	})
}
