package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crawlbench/crawlbench/internal/config"
	"github.com/crawlbench/crawlbench/internal/crawler"
	"github.com/crawlbench/crawlbench/internal/fetcher"
	"github.com/crawlbench/crawlbench/internal/limiter"
	"github.com/crawlbench/crawlbench/internal/metrics"
	"github.com/crawlbench/crawlbench/internal/report"
	storepg "github.com/crawlbench/crawlbench/internal/storage/postgres"
)

type crawlOptions struct {
	input       string
	output      string
	concurrency string
	metricsAddr string
	storeDSN    string
}

// newCrawlCmd creates and configures the 'crawl' subcommand: load the URL
// list, run the engine, print the summary, persist the report.
func newCrawlCmd() *cobra.Command {
	opts := &crawlOptions{}
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Fetch the URL list and write the benchmark report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "newline-delimited URL list (default from config: urls.txt)")
	cmd.Flags().StringVar(&opts.output, "output", "", "JSON report path (default from config: results.json)")
	// A string flag on purpose: a non-numeric value falls back to the
	// default instead of aborting the run.
	cmd.Flags().StringVar(&opts.concurrency, "concurrency", "", "max concurrent fetches (default from config: 10)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "optional address for the /metrics listener, e.g. :9090")
	cmd.Flags().StringVar(&opts.storeDSN, "store-dsn", "", "optional Postgres DSN for run-history rows")

	return cmd
}

func runCrawl(cmd *cobra.Command, opts *crawlOptions) error {
	applyFlagOverrides(opts)
	ctx := cmd.Context()

	urls, err := report.LoadURLs(cfg.Input.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d URLs\n", len(urls))

	concurrency := cfg.EffectiveConcurrency()
	if cfg.Crawl.Concurrency != concurrency {
		fmt.Printf("Invalid concurrency value: %d. Using default: %d\n",
			cfg.Crawl.Concurrency, config.DefaultConcurrency)
	}
	fmt.Printf("Starting crawl with max concurrency: %d\n", concurrency)

	metrics.Init()
	if cfg.Metrics.Addr != "" {
		startMetricsServer(cfg.Metrics.Addr)
	}

	lim := limiter.New(concurrency)
	engine := crawler.NewEngine(
		fetcher.New(fetcher.Config{
			Timeout:       cfg.Timeout(),
			ClientTimeout: cfg.ClientTimeout(),
			MaxConns:      lim.Cap(),
			UserAgent:     cfg.Crawl.UserAgent,
		}, logger.Named("fetcher")),
		lim,
		logger.Named("engine"),
	)

	startedAt := time.Now()
	rep, err := engine.Run(ctx, urls)
	if err != nil {
		return fmt.Errorf("run crawl: %w", err)
	}

	printSummary(rep.Summary)

	if err := report.Write(rep, cfg.Output.Path); err != nil {
		return err
	}
	fmt.Printf("Results saved to %s\n", cfg.Output.Path)

	storeRun(ctx, startedAt, concurrency, rep.Summary)
	return nil
}

// applyFlagOverrides lets explicit flags win over config file/env values.
func applyFlagOverrides(opts *crawlOptions) {
	if opts.input != "" {
		cfg.Input.Path = opts.input
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
	}
	if opts.concurrency != "" {
		n, err := strconv.Atoi(opts.concurrency)
		if err != nil {
			fmt.Printf("Invalid concurrency value: %s. Using default: %d\n",
				opts.concurrency, config.DefaultConcurrency)
			n = config.DefaultConcurrency
		}
		cfg.Crawl.Concurrency = n
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if opts.storeDSN != "" {
		cfg.Database.DSN = opts.storeDSN
	}
}

func printSummary(s crawler.Summary) {
	fmt.Printf("\nCrawl Summary:\n")
	fmt.Printf("Total URLs processed: %d\n", s.TotalURLs)
	fmt.Printf("Successful fetches: %d\n", s.SuccessfulFetches)
	fmt.Printf("Failed fetches: %d\n", s.FailedFetches)
	fmt.Printf("Total time: %.2f seconds\n", s.TotalTime)
	fmt.Printf("Average time per URL: %.4f seconds\n", s.AverageTimePerURL)
}

// startMetricsServer serves /metrics and /healthz for the duration of the
// run. The listener dies with the process; a benchmark run has no graceful
// shutdown contract for it.
func startMetricsServer(addr string) {
	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck // best-effort health body
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server error", zap.Error(err))
		}
	}()
	logger.Info("metrics server started", zap.String("addr", addr))
}

// storeRun records the run summary in Postgres when a DSN is configured. A
// store failure is logged, not fatal: the report artifact already exists.
func storeRun(ctx context.Context, startedAt time.Time, concurrency int, summary crawler.Summary) {
	if cfg.Database.DSN == "" {
		return
	}
	store, err := storepg.NewRunStore(ctx, storepg.RunStoreConfig{
		DSN:   cfg.Database.DSN,
		Table: cfg.Database.Table,
	})
	if err != nil {
		logger.Warn("run store init failed", zap.Error(err))
		return
	}
	defer store.Close()

	rec := storepg.RunRecord{
		ID:          uuid.NewString(),
		StartedAt:   startedAt,
		Concurrency: concurrency,
		Summary:     summary,
	}
	if err := store.StoreRun(ctx, rec); err != nil {
		logger.Warn("run store insert failed", zap.Error(err))
		return
	}
	logger.Info("run stored", zap.String("run_id", rec.ID))
}
