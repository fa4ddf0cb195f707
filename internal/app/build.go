package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"horse.fit/atlas/internal/build"
	"horse.fit/atlas/internal/cli"
	"horse.fit/atlas/internal/config"
	"horse.fit/atlas/internal/langdetect"
	"horse.fit/atlas/internal/logging"
	"horse.fit/atlas/internal/report"
	"horse.fit/atlas/internal/store"
)

func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	dataDir := fs.String("data-dir", "", "Directory holding the reference tables and dataset (default: ATLAS_DATA_DIR)")
	outputPath := fs.String("output", "", "Output file path (default: ATLAS_OUTPUT)")
	persist := fs.Bool("store", false, "Also persist the build output to Postgres")
	suggest := fs.Bool("suggest", false, "Attach code suggestions to unresolved-language warnings (loads language models)")
	timeout := fs.Duration("timeout", 60*time.Second, "Database timeout for --store")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	var suggester report.Suggester
	if *suggest {
		suggester = langdetect.Suggester{}
	}
	reporter := report.NewLogReporter(logger, suggester)

	output, err := build.Run(build.Options{
		CountryCodesPath:  cfg.CountryCodesPath(),
		LanguageCodesPath: cfg.LanguageCodesPath(),
		DatasetPath:       cfg.DatasetPath(),
		OutputPath:        cfg.OutputPath,
	}, reporter)
	if err != nil {
		logger.Error().Err(err).Msg("build failed")
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		return 1
	}

	entryCount := 0
	for _, languages := range output {
		entryCount += len(languages)
	}
	logger.Info().
		Int("countries", len(output)).
		Int("entries", entryCount).
		Str("output", cfg.OutputPath).
		Msg("build finished")

	if *persist {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		st, err := store.Open(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("database connection failed")
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			return 1
		}
		defer st.Close()

		if err := st.Replace(ctx, output); err != nil {
			logger.Error().Err(err).Msg("store build output failed")
			fmt.Fprintf(os.Stderr, "Failed to store build output: %v\n", err)
			return 1
		}
		logger.Info().Int("countries", len(output)).Msg("build output stored")
	}

	fmt.Printf("countries=%d entries=%d output=%s\n", len(output), entryCount, filepath.Clean(cfg.OutputPath))
	return 0
}
