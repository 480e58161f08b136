package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wxdata/acis"
	"github.com/wxdata/acis/internal/cache"
	"github.com/wxdata/acis/internal/config"
	"github.com/wxdata/acis/internal/reporter"
)

var (
	flagConfig  string
	flagServer  string
	flagFormat  string
	flagOutput  string
	flagTimeout int
	flagNoCache bool
	flagVerbose bool
)

// app holds the pieces shared by the subcommands, built once before any of
// them runs.
type app struct {
	client *acis.Client
	cache  *cache.Cache
	log    *zap.Logger
}

var theApp *app

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "acis",
	Short: "Fetch climate data from ACIS Web Services",
	Long: `acis retrieves station metadata and climate observations from the
Applied Climate Information System (ACIS) Web Services.

Responses are cached locally so repeated queries do not hit the server.
Settings can be placed in ~/.config/acis/config.toml; flags override the
config file.

Examples:
  # Maximum temperature for Oklahoma City on a single day
  acis stndata --sid OKC --date 2012-08-03 --elems maxt

  # A monthly range as CSV
  acis stndata --sid OKC --start 2012-01 --end 2012-12 --interval mly \
      --elems maxt,mint --format csv

  # Metadata for all sites in a county
  acis stnmeta --county 40109 --meta name,state,sids

  # One day of data for every site in a state
  acis multistndata --state OK --date 2012-08-03 --elems maxt --format json`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command and exits nonzero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/acis/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "ACIS server base URL")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "terminal", "Output format: terminal, json, csv")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "HTTP request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log request diagnostics")

	rootCmd.AddCommand(stnMetaCmd)
	rootCmd.AddCommand(stnDataCmd)
	rootCmd.AddCommand(multiStnDataCmd)
	rootCmd.AddCommand(gridDataCmd)
	rootCmd.AddCommand(clearCacheCmd)
}

// setup loads the config file, applies flag overrides, and builds the
// shared client, cache, and logger.
func setup() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.Server = flagServer
	}
	if flagTimeout > 0 {
		cfg.Timeout = config.Duration(time.Duration(flagTimeout) * time.Second)
	}
	if flagNoCache {
		cfg.NoCache = true
	}

	log := zap.NewNop()
	if flagVerbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	var c *cache.Cache
	if !cfg.NoCache {
		c, err = cache.New("acis", cfg.CacheDir, time.Duration(cfg.CacheTTL))
		if err != nil {
			// Non-fatal: continue without cache.
			log.Warn("cache unavailable", zap.Error(err))
			c = nil
		}
	}

	theApp = &app{
		client: acis.NewClient(cfg.Server, time.Duration(cfg.Timeout)),
		cache:  c,
		log:    log,
	}
	return nil
}

// submittable is the request surface the subcommands need for a cached
// submit: every builder exposes its live params and a Submit method.
type submittable interface {
	acis.Submitter
	Params() acis.Params
}

// submit executes a request, going through the response cache when one is
// configured. The cache key covers the server, call type, and params.
func submit(ctx context.Context, a *app, callType string, req submittable) (*acis.Query, error) {
	encoded, err := json.Marshal(req.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	key := a.client.Server() + "/" + callType + "?" + string(encoded)

	if a.cache != nil {
		if data, ok := a.cache.Get(key); ok {
			a.log.Debug("cache hit", zap.String("call", callType))
			var result acis.Result
			if err := json.Unmarshal(data, &result); err == nil {
				return &acis.Query{Params: req.Params(), Result: result}, nil
			}
			// Unreadable cache entry; fall through to the server.
		}
	}

	a.log.Debug("submitting request",
		zap.String("call", callType),
		zap.String("params", string(encoded)))
	start := time.Now()
	query, err := req.Submit(ctx)
	if err != nil {
		return nil, err
	}
	a.log.Debug("request complete",
		zap.String("call", callType),
		zap.Duration("elapsed", time.Since(start)))

	if a.cache != nil {
		if data, err := json.Marshal(query.Result); err == nil {
			if err := a.cache.Set(key, data); err != nil {
				a.log.Warn("failed to cache response", zap.Error(err))
			}
		}
	}
	return query, nil
}

// writeReport renders the table in the requested format and writes it to
// the output file or stdout.
func writeReport(table *reporter.Table) error {
	rep := reporter.Get(flagFormat)
	output, err := rep.Report(table)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", flagOutput)
		return nil
	}
	fmt.Print(string(output))
	return nil
}

// formatValue renders a record value for output. Element values are usually
// strings but can be lists when flags or times were requested.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case [2]int:
		return fmt.Sprintf("%d,%d", v[0], v[1])
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// formatRecords renders library records into reporter rows.
func formatRecords(records [][]any) [][]string {
	rows := make([][]string, len(records))
	for i, record := range records {
		row := make([]string, len(record))
		for j, value := range record {
			row[j] = formatValue(value)
		}
		rows[i] = row
	}
	return rows
}

// metaTable converts per-site metadata keyed by UID into the reporter
// shape, decoding any "sids" list into a type-name table along the way.
func metaTable(meta map[int]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(meta))
	for uid, site := range meta {
		out[fmt.Sprintf("%d", uid)] = decodeSids(site)
	}
	return out
}

func decodeSids(site map[string]any) map[string]any {
	values, ok := site["sids"].([]any)
	if !ok {
		return site
	}
	sids := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			sids = append(sids, s)
		}
	}
	if table, err := acis.SidsTable(sids); err == nil {
		site["sids"] = table
	}
	return site
}

// clearCacheCmd removes all cached responses.
var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Remove all cached responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if theApp.cache == nil {
			return nil
		}
		return theApp.cache.Clear()
	},
}
