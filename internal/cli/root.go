// Package cli implements the almanac command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/almanac"
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/internal/config"
	"github.com/zapponejosh/lunisolar/internal/logger"
	"github.com/zapponejosh/lunisolar/internal/store"
)

func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	db     *store.DB
	engine *almanac.Engine
	format format
}

func newRootCmd(a *app) *cobra.Command {
	var (
		cachePath string
		envFile   string
		output    string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:          "almanac",
		Short:        "Chinese lunisolar calendar: solar terms, lunar dates and sexagenary pillars",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}
			a.format = f
			return a.open(cmd.Context(), cmd.ErrOrStderr(), envFile, cachePath, quiet)
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "read settings from this file instead of ./.env")
	cmd.PersistentFlags().StringVar(&cachePath, "cache", "", "SQLite file for solved crossings (overrides CACHE_PATH)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "discard log output")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")

	cmd.AddCommand(termsCmd(a))
	cmd.AddCommand(lunarCmd(a))
	cmd.AddCommand(dayCmd(a))
	cmd.AddCommand(pillarsCmd(a))
	cmd.AddCommand(findCmd(a))
	cmd.AddCommand(yearsCmd(a))
	cmd.AddCommand(cacheCmd(a))

	return cmd
}

func (a *app) open(ctx context.Context, stderr io.Writer, envFile, cachePath string, quiet bool) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if cachePath != "" {
		cfg.CachePath = cachePath
	}
	a.cfg = cfg
	if quiet {
		a.log = logger.Discard()
	} else {
		a.log = logger.Setup(cfg, stderr)
	}

	var caches tiered
	if cfg.CacheMemory {
		caches = append(caches, ephemeris.NewMemoryCache())
	}
	if cfg.CachePath != "" {
		db, err := store.Open(store.DefaultConfig(cfg.CachePath), a.log)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		a.db = db
		if _, err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate cache: %w", err)
		}
		caches = append(caches, db.Cache())
	}

	a.engine = almanac.New(almanac.Options{
		Cache:         caches.cache(),
		Logger:        a.log,
		MaxIterations: cfg.MaxIterations,
	})
	return nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}
