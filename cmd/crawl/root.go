package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ics-crawler/internal/config"
	"ics-crawler/internal/crawler"
	"ics-crawler/internal/logging"
)

// NewRootCmd creates the crawl command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Focused crawler for the UCI ICS web domains",
		Long: `crawl walks the ics, cs, informatics and stat UCI domains, skipping
calendar traps and low-value paths, and writes a Markdown report with the
unique page count, the longest page, the 100 most common words and the
page count per subdomain.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCrawl,
	}

	f := cmd.Flags()
	f.StringSlice("seed", nil, "initial URL(s) to start crawling from")
	f.Int("maxPages", 0, "stop after N unique pages (0 = unlimited)")
	f.Int("workers", 0, "number of parallel fetchers")
	f.String("strategy", "", "bfs, dfs or mixedNN (NN = percent DFS)")
	f.Float64("maxPerHost", 0, "max requests/sec to one host")
	f.String("userAgent", "", "HTTP User-Agent string")
	f.StringP("config", "c", "", "YAML configuration file")
	f.String("report", "", "path of the Markdown report")
	f.String("metricsAddr", "", "Prometheus listen address (\"off\" disables)")
	f.BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting crawl",
		zap.Strings("seeds", cfg.Seeds),
		zap.Int("max_pages", cfg.MaxPages),
		zap.Int("workers", cfg.Workers),
		zap.String("strategy", cfg.Strategy))
	return crawler.Run(ctx, cfg, logger)
}

// applyFlags copies every flag the user actually set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("seed") {
		if cfg.Seeds, err = f.GetStringSlice("seed"); err != nil {
			return err
		}
	}
	if f.Changed("maxPages") {
		if cfg.MaxPages, err = f.GetInt("maxPages"); err != nil {
			return err
		}
	}
	if f.Changed("workers") {
		if cfg.Workers, err = f.GetInt("workers"); err != nil {
			return err
		}
	}
	if f.Changed("strategy") {
		if cfg.Strategy, err = f.GetString("strategy"); err != nil {
			return err
		}
	}
	if f.Changed("maxPerHost") {
		if cfg.RequestsPerHost, err = f.GetFloat64("maxPerHost"); err != nil {
			return err
		}
	}
	if f.Changed("userAgent") {
		if cfg.UserAgent, err = f.GetString("userAgent"); err != nil {
			return err
		}
	}
	if f.Changed("report") {
		if cfg.ReportPath, err = f.GetString("report"); err != nil {
			return err
		}
	}
	if f.Changed("metricsAddr") {
		if cfg.MetricsAddr, err = f.GetString("metricsAddr"); err != nil {
			return err
		}
		if cfg.MetricsAddr == "off" {
			cfg.MetricsAddr = ""
		}
	}
	if v, _ := f.GetBool("verbose"); v {
		cfg.Logging.Level = "debug"
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
