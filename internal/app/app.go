// Package app assembles the fiji-news components from configuration. The API
// server, the worker and the CLI all start from Build.
package app

import (
	"fmt"
	"log/slog"

	"fiji-news/internal/config"
	"fiji-news/internal/domain/entity"
	"fiji-news/internal/infra/fetcher"
	"fiji-news/internal/infra/notifier"
	"fiji-news/internal/infra/scraper"
	"fiji-news/internal/infra/store"
	"fiji-news/internal/infra/summarizer"
	"fiji-news/internal/infra/tts"
	"fiji-news/internal/nlp"
	"fiji-news/internal/usecase/analyze"
	"fiji-news/internal/usecase/classify"
	"fiji-news/internal/usecase/harvest"
	"fiji-news/internal/usecase/narrate"
	"fiji-news/internal/usecase/news"
)

// App holds the wired components.
type App struct {
	Config   config.AppConfig
	Store    *store.FileStore
	Sources  []entity.Source
	News     *news.Service
	Narrator *narrate.Service
}

// Options adjusts Build for a particular binary.
type Options struct {
	// Notify enables the Slack/Discord threat digest configured in the
	// environment.
	Notify bool
}

// Build loads the linguistic resources, the source list and the classifier
// model and connects every component. It fails when a required resource or
// setting is unusable.
func Build(cfg config.AppConfig, logger *slog.Logger, opts Options) (*App, error) {
	fs, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	res, err := nlp.NewResources()
	if err != nil {
		return nil, fmt.Errorf("load linguistic resources: %w", err)
	}

	sources, err := loadSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("fetcher config: %w", err)
	}
	if err := fetchCfg.Validate(); err != nil {
		return nil, fmt.Errorf("fetcher config: %w", err)
	}
	client := fetcher.NewClient(fetchCfg)

	sumSettings := summarizer.LoadSettingsFromEnv()
	primary, err := summarizer.New(sumSettings)
	if err != nil {
		return nil, fmt.Errorf("summarizer: %w", err)
	}
	fallback := summarizer.NewExtractive(sumSettings.CharacterLimit)

	harvester := harvest.NewService(
		sources,
		scraper.NewDiscoverer(client),
		fetcher.NewReadabilityExtractor(client),
		primary,
		fallback,
		res,
		cfg.Harvest,
	)

	model, err := classify.LoadOrInitModel(fs)
	if err != nil {
		return nil, err
	}

	svc := &news.Service{
		Repo:       fs,
		Harvester:  harvester,
		Classifier: classify.NewClassifier(res, model),
		Analyzer:   analyze.NewAnalyzer(res),
	}
	if opts.Notify {
		svc.Notifier = notifier.New(notifier.LoadConfigFromEnv())
	}

	ttsCfg := tts.LoadConfigFromEnv()
	online, err := tts.NewOnline(ttsCfg)
	if err != nil {
		return nil, fmt.Errorf("text to speech: %w", err)
	}
	offline := tts.NewOffline(ttsCfg)

	logger.Info("components ready",
		slog.String("data_dir", fs.Dir()),
		slog.Int("sources", len(sources)),
		slog.String("summarizer", sumSettings.Type),
		slog.String("tts_online", ttsCfg.OnlineEngine),
		slog.Bool("tts_offline", offline != nil),
		slog.Bool("notify", opts.Notify))

	return &App{
		Config:   cfg,
		Store:    fs,
		Sources:  sources,
		News:     svc,
		Narrator: narrate.NewService(fs, online, offline),
	}, nil
}

func loadSources(path string) ([]entity.Source, error) {
	if path == "" {
		return config.DefaultSources(), nil
	}
	sources, err := config.LoadSources(path)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	return sources, nil
}
