package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fiji-news/internal/app"
	"fiji-news/internal/config"
	"fiji-news/internal/domain/entity"
	"fiji-news/internal/handler/http/respond"
	"fiji-news/internal/observability/logging"
)

type cli struct {
	dataDir  string
	logLevel string
	notify   bool

	app *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "fijinews",
		Short:         "Harvest, analyze and narrate Fiji news",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "data directory (default $DATA_DIR or ./data)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")

	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest and classify articles from every source",
		Args:  cobra.NoArgs,
		RunE:  c.runHarvest,
	}
	harvestCmd.Flags().BoolVar(&c.notify, "analyze", false, "also analyze the harvest and send the threat digest")

	loadCmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Show the headlines of a stored harvest",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runLoad,
	}
	loadCmd.Flags().Bool("json", false, "print the bundle as JSON")

	root.AddCommand(
		harvestCmd,
		&cobra.Command{
			Use:   "files",
			Short: "List stored harvests, newest first",
			Args:  cobra.NoArgs,
			RunE:  c.runFiles,
		},
		loadCmd,
		&cobra.Command{
			Use:   "summary <file>",
			Short: "Write the prose summary of a stored harvest",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runSummary,
		},
		&cobra.Command{
			Use:   "analyze <file>",
			Short: "Write the trend analysis of a stored harvest",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runAnalyze,
		},
		&cobra.Command{
			Use:   "speak <text|->",
			Short: "Narrate text to an audio file; '-' reads standard input",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runSpeak,
		},
	)
	return root
}

func (c *cli) setup() error {
	cfg := config.Load()
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	logger := logging.NewTextLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	a, err := app.Build(cfg, logger, app.Options{Notify: c.notify})
	if err != nil {
		return errors.New(respond.SanitizeError(err))
	}
	c.app = a
	return nil
}

func (c *cli) runHarvest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if c.notify {
		res, err := c.app.News.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Harvested %d articles -> %s\n", res.Bundle.Total(), res.Filename)
		fmt.Fprintf(out, "Analysis -> %s (%d emerging threats)\n", res.AnalysisFile, len(res.Analysis.EmergingThreats))
		return writeTable(out, []string{"CATEGORY", "ARTICLES"}, categoryRows(res.Bundle))
	}

	res, err := c.app.News.Harvest(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Harvested %d articles -> %s\n", res.Bundle.Total(), res.Filename)
	return writeTable(out, []string{"CATEGORY", "ARTICLES"}, categoryRows(res.Bundle))
}

func (c *cli) runFiles(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	files, err := c.app.News.ListFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No harvests stored in", c.app.Store.Dir())
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, name := range files {
		count := "?"
		if bundle, err := c.app.News.Load(ctx, name); err == nil {
			count = strconv.Itoa(bundle.Total())
		}
		rows = append(rows, []string{name, count})
	}
	return writeTable(cmd.OutOrStdout(), []string{"FILE", "ARTICLES"}, rows)
}

func (c *cli) runLoad(cmd *cobra.Command, args []string) error {
	bundle, err := c.app.News.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), bundle)
	}
	return writeTable(cmd.OutOrStdout(), []string{"CATEGORY", "DATE", "SOURCE", "TITLE"}, headlineRows(bundle))
}

func (c *cli) runSummary(cmd *cobra.Command, args []string) error {
	bundle, err := c.app.News.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	summary, filename, err := c.app.News.Summarize(cmd.Context(), bundle)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)
	fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", filename)
	return nil
}

func (c *cli) runAnalyze(cmd *cobra.Command, args []string) error {
	bundle, err := c.app.News.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	analysis, filename, err := c.app.News.Analyze(cmd.Context(), bundle)
	if err != nil {
		return err
	}
	if err := writeJSON(cmd.OutOrStdout(), analysis); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", filename)
	return nil
}

func (c *cli) runSpeak(cmd *cobra.Command, args []string) error {
	text, err := readText(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	path, err := c.app.Narrator.Convert(cmd.Context(), text)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// readText returns arg, or all of stdin when arg is "-".
func readText(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read standard input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryRows(b entity.CategorizedBundle) [][]string {
	rows := make([][]string, 0, len(entity.Categories))
	for _, cat := range entity.Categories {
		rows = append(rows, []string{string(cat), strconv.Itoa(len(b[cat]))})
	}
	return rows
}

