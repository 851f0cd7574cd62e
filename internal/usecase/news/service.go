// Package news sequences the harvester, classifier and analyzer and persists
// every result through the news repository. The HTTP handlers, the CLI and
// the scheduled worker all drive the system through Service.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fiji-news/internal/domain/entity"
	"fiji-news/internal/repository"
	"fiji-news/internal/usecase/analyze"
	"fiji-news/internal/usecase/classify"
	"fiji-news/internal/usecase/harvest"
)

// Harvester collects relevant articles from the configured sources.
type Harvester interface {
	Harvest(ctx context.Context) ([]entity.Article, *harvest.Stats, error)
}

// Notifier is told about analyses that contain emerging threats.
type Notifier interface {
	NotifyThreats(ctx context.Context, analysis *entity.Analysis, filename string) error
}

// Service provides the news use cases. Notifier and Now are optional.
type Service struct {
	Repo       repository.NewsRepository
	Harvester  Harvester
	Classifier *classify.Classifier
	Analyzer   *analyze.Analyzer
	Notifier   Notifier
	Now        func() time.Time
}

// HarvestResult is the outcome of one harvest.
type HarvestResult struct {
	Bundle   entity.CategorizedBundle
	Filename string
	Stats    *harvest.Stats
}

// RunResult is the outcome of one scheduled pipeline run.
type RunResult struct {
	*HarvestResult
	Analysis     *entity.Analysis
	AnalysisFile string
}

// Harvest collects articles, classifies them and persists the bundle.
func (s *Service) Harvest(ctx context.Context) (*HarvestResult, error) {
	articles, stats, err := s.Harvester.Harvest(ctx)
	if err != nil {
		return nil, fmt.Errorf("harvest news: %w", err)
	}
	bundle := s.Classifier.Categorize(articles)
	filename, err := s.Repo.SaveBundle(ctx, bundle, s.now())
	if err != nil {
		return nil, err
	}
	return &HarvestResult{Bundle: bundle, Filename: filename, Stats: stats}, nil
}

// ListFiles returns the persisted harvest file names, newest first.
func (s *Service) ListFiles(ctx context.Context) ([]string, error) {
	files, err := s.Repo.ListNewsFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news files: %w", err)
	}
	return files, nil
}

// Load reads a persisted harvest by file name.
func (s *Service) Load(ctx context.Context, filename string) (entity.CategorizedBundle, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", entity.ErrInvalidInput)
	}
	return s.Repo.LoadBundle(ctx, filename)
}

// Summarize writes the prose summary of bundle and returns it with its file name.
func (s *Service) Summarize(ctx context.Context, bundle entity.CategorizedBundle) (string, string, error) {
	summary := s.Analyzer.GenerateSummary(bundle)
	filename, err := s.Repo.SaveSummary(ctx, summary, s.now())
	if err != nil {
		return "", "", err
	}
	return summary, filename, nil
}

// Analyze writes the trend analysis of bundle and returns it with its file name.
func (s *Service) Analyze(ctx context.Context, bundle entity.CategorizedBundle) (*entity.Analysis, string, error) {
	analysis := s.Analyzer.AnalyzeTrends(bundle)
	filename, err := s.Repo.SaveAnalysis(ctx, analysis, s.now())
	if err != nil {
		return nil, "", err
	}
	return analysis, filename, nil
}

// Run harvests, analyzes the new bundle and sends a threat digest when the
// analysis found emerging threats. A failed digest is logged, not returned.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	harvested, err := s.Harvest(ctx)
	if err != nil {
		return nil, err
	}
	analysis, analysisFile, err := s.Analyze(ctx, harvested.Bundle)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil && len(analysis.EmergingThreats) > 0 {
		if err := s.Notifier.NotifyThreats(ctx, analysis, analysisFile); err != nil {
			slog.Warn("threat digest not delivered",
				slog.String("analysis_file", analysisFile),
				slog.Any("error", err))
		}
	}

	return &RunResult{HarvestResult: harvested, Analysis: analysis, AnalysisFile: analysisFile}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
