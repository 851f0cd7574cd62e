package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/nlp"
	"fiji-news/internal/observability/metrics"
	"fiji-news/internal/utils/text"
)

// Rejection reasons recorded in metrics.
const (
	reasonExtractFailed = "extract_failed"
	reasonTooShort      = "too_short"
	reasonNotRelevant   = "not_relevant"
)

// Config tunes the harvest.
type Config struct {
	// MaxPerSource caps the qualifying articles taken from one source. Default: 10.
	MaxPerSource int
	// MinTextLength is the minimum body length in characters. Default: 100.
	MinTextLength int
	// KeywordCount is the number of keywords stored per article. Default: 10.
	KeywordCount int

	// SourceDelayMin and SourceDelayMax bound the pause after each source.
	SourceDelayMin, SourceDelayMax time.Duration
	// ArticleDelayMin and ArticleDelayMax bound the pause after each candidate article.
	ArticleDelayMin, ArticleDelayMax time.Duration
}

// DefaultConfig returns the production harvest settings.
func DefaultConfig() Config {
	return Config{
		MaxPerSource:    10,
		MinTextLength:   100,
		KeywordCount:    10,
		SourceDelayMin:  1 * time.Second,
		SourceDelayMax:  3 * time.Second,
		ArticleDelayMin: 500 * time.Millisecond,
		ArticleDelayMax: 1500 * time.Millisecond,
	}
}

// Stats summarizes one harvest run.
type Stats struct {
	Sources    int
	Candidates int
	Accepted   int
	Rejected   int
	Failed     int
	Duration   time.Duration
}

// Service harvests articles from a fixed list of sources.
// Sources and articles are processed one at a time so each site sees at most
// one request in flight from us.
type Service struct {
	Sources    []entity.Source
	Discoverer LinkDiscoverer
	Extractor  ArticleExtractor
	Summarizer Summarizer
	// Fallback summarizes when Summarizer fails or returns nothing.
	Fallback  Summarizer
	Resources *nlp.Resources
	Config    Config

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	rand  func() float64
}

// NewService creates a harvest Service. fallback may be nil when summarizer
// cannot fail.
func NewService(
	sources []entity.Source,
	discoverer LinkDiscoverer,
	extractor ArticleExtractor,
	summarizer Summarizer,
	fallback Summarizer,
	resources *nlp.Resources,
	cfg Config,
) *Service {
	return &Service{
		Sources:    sources,
		Discoverer: discoverer,
		Extractor:  extractor,
		Summarizer: summarizer,
		Fallback:   fallback,
		Resources:  resources,
		Config:     cfg,
		now:        time.Now,
		sleep:      sleepContext,
		rand:       rand.Float64,
	}
}

// WithClock replaces the clock used for the fallback publish date.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithSleeper replaces the delay function.
func (s *Service) WithSleeper(sleep func(ctx context.Context, d time.Duration) error) *Service {
	s.sleep = sleep
	return s
}

// Harvest collects articles from every source. Failures of a single source or
// article are logged and skipped. The returned articles have no category.
// If ctx is cancelled the articles gathered so far are returned with the error.
func (s *Service) Harvest(ctx context.Context) ([]entity.Article, *Stats, error) {
	if len(s.Sources) == 0 {
		return nil, nil, ErrNoSources
	}

	logger := slog.Default()
	start := time.Now()
	stats := &Stats{}
	articles := []entity.Article{}

	defer func() {
		stats.Duration = time.Since(start)
		metrics.RecordHarvest(stats.Duration)
	}()

	for _, src := range s.Sources {
		if err := ctx.Err(); err != nil {
			return articles, stats, fmt.Errorf("harvest cancelled: %w", err)
		}
		stats.Sources++

		logger.Info("harvesting source", slog.String("source", src.Name), slog.String("url", src.URL))
		found, err := s.harvestSource(ctx, src, stats)
		articles = append(articles, found...)
		if err != nil {
			return articles, stats, err
		}

		if err := s.pause(ctx, s.Config.SourceDelayMin, s.Config.SourceDelayMax); err != nil {
			return articles, stats, fmt.Errorf("harvest cancelled: %w", err)
		}
	}

	logger.Info("harvest completed",
		slog.Int("sources", stats.Sources),
		slog.Int("candidates", stats.Candidates),
		slog.Int("accepted", stats.Accepted),
		slog.Int("rejected", stats.Rejected),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", time.Since(start)))

	return articles, stats, nil
}

// harvestSource returns the qualifying articles of one source. Only context
// cancellation is reported as an error.
func (s *Service) harvestSource(ctx context.Context, src entity.Source, stats *Stats) ([]entity.Article, error) {
	logger := slog.Default().With(slog.String("source", src.Name))
	start := time.Now()
	defer func() { metrics.RecordSourceHarvest(src.Name, time.Since(start)) }()

	links, err := s.Discoverer.DiscoverLinks(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("harvest cancelled: %w", ctx.Err())
		}
		logger.Warn("link discovery failed", slog.Any("error", err))
		metrics.RecordSourceError(src.Name)
		return nil, nil
	}
	logger.Info("links discovered", slog.Int("count", len(links)))

	var out []entity.Article
	for _, link := range links {
		stats.Candidates++
		a, reason, err := s.buildArticle(ctx, src, link)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return out, fmt.Errorf("harvest cancelled: %w", ctx.Err())
			}
			stats.Failed++
			metrics.RecordArticleRejected(src.Name, reasonExtractFailed)
			logger.Warn("article extraction failed", slog.String("url", link), slog.Any("error", err))
		case reason != "":
			stats.Rejected++
			metrics.RecordArticleRejected(src.Name, reason)
			logger.Debug("article rejected", slog.String("url", link), slog.String("reason", reason))
		default:
			stats.Accepted++
			metrics.RecordArticleHarvested(src.Name)
			out = append(out, *a)
			if len(out) >= s.Config.MaxPerSource {
				return out, nil
			}
		}

		if err := s.pause(ctx, s.Config.ArticleDelayMin, s.Config.ArticleDelayMax); err != nil {
			return out, fmt.Errorf("harvest cancelled: %w", err)
		}
	}
	return out, nil
}

// buildArticle extracts one candidate. A non-empty reason means the article
// was read but does not qualify.
func (s *Service) buildArticle(ctx context.Context, src entity.Source, link string) (*entity.Article, string, error) {
	page, err := s.Extractor.Extract(ctx, link)
	if err != nil {
		return nil, "", err
	}
	if text.CountRunes(page.Text) < s.Config.MinTextLength {
		return nil, reasonTooShort, nil
	}

	published := s.now()
	if !page.PublishedAt.IsZero() {
		published = page.PublishedAt
	}

	a := &entity.Article{
		Title:         page.Title,
		URL:           link,
		Source:        src.Name,
		PublishedDate: entity.NewDate(published),
		Text:          page.Text,
		Keywords:      s.Resources.KeyTopics(page.Title+" "+page.Text, s.Config.KeywordCount),
	}
	if !IsFijiRelated(*a) {
		return nil, reasonNotRelevant, nil
	}

	a.Summary = s.summarize(ctx, page.Text)
	return a, "", nil
}

func (s *Service) summarize(ctx context.Context, body string) string {
	if s.Summarizer != nil {
		summary, err := s.Summarizer.Summarize(ctx, body)
		summary = strings.TrimSpace(summary)
		if err == nil && summary != "" {
			metrics.RecordArticleSummarized(true)
			return summary
		}
		if err != nil {
			slog.Warn("summarizer failed, using fallback", slog.Any("error", err))
		}
	}
	metrics.RecordArticleSummarized(false)
	if s.Fallback == nil {
		return ""
	}
	summary, err := s.Fallback.Summarize(ctx, body)
	if err != nil {
		slog.Warn("fallback summarizer failed", slog.Any("error", err))
		return ""
	}
	return strings.TrimSpace(summary)
}

// pause sleeps for a uniformly random duration in [lo, hi].
func (s *Service) pause(ctx context.Context, lo, hi time.Duration) error {
	if hi < lo {
		hi = lo
	}
	d := lo + time.Duration(s.rand()*float64(hi-lo))
	if d <= 0 {
		return ctx.Err()
	}
	return s.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
