package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/atlas/internal/cli"
	"horse.fit/atlas/internal/codes"
	"horse.fit/atlas/internal/config"
	"horse.fit/atlas/internal/httpapi"
	"horse.fit/atlas/internal/logging"
	"horse.fit/atlas/internal/record"
	"horse.fit/atlas/internal/report"
	"horse.fit/atlas/internal/resolve"
	"horse.fit/atlas/internal/store"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 8090, "HTTP port")
	source := fs.String("source", "file", "Record source: file (build output JSON) or db (Postgres)")
	inputPath := fs.String("input", "", "Build output file for -source file (default: ATLAS_OUTPUT)")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}
	if *source != "file" && *source != "db" {
		fmt.Fprintln(os.Stderr, "--source must be file or db")
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
	if *inputPath != "" {
		cfg.OutputPath = *inputPath
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	var recordSource httpapi.RecordSource
	switch *source {
	case "db":
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		st, err := store.Open(dbCtx, cfg)
		dbCancel()
		if err != nil {
			logger.Error().Err(err).Msg("serve failed to connect to database")
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			return 1
		}
		defer st.Close()
		recordSource = st
	default:
		memorySource, err := loadMemorySource(cfg.OutputPath)
		if err != nil {
			logger.Error().Err(err).Msg("serve failed to load build output")
			fmt.Fprintf(os.Stderr, "Failed to load build output: %v\n", err)
			return 1
		}
		recordSource = memorySource
	}

	srv := httpapi.NewServer(recordSource, loadResolvers(cfg, logger), logger, httpapi.Options{
		Host:            *host,
		Port:            *port,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", *host).Int("port", *port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}

func loadMemorySource(path string) (*httpapi.MemorySource, error) {
	payload, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read build output: %w", err)
	}

	records := map[string][]record.Language{}
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode build output: %w", err)
	}
	return httpapi.NewMemorySource(records), nil
}

// loadResolvers builds the /resolve endpoint's resolvers from the reference
// tables. Missing tables disable the endpoint rather than failing startup.
func loadResolvers(cfg *config.Config, logger zerolog.Logger) httpapi.Resolvers {
	reporter := report.NewLogReporter(logger, nil)
	var resolvers httpapi.Resolvers

	if table, err := codes.LoadFile(cfg.CountryCodesPath(), codes.StripDiacritics()); err != nil {
		logger.Warn().Err(err).Msg("country resolver disabled")
	} else {
		resolvers.Country = resolve.New(resolve.CountryRules(), table, reporter)
	}

	if table, err := codes.LoadFile(cfg.LanguageCodesPath()); err != nil {
		logger.Warn().Err(err).Msg("language resolver disabled")
	} else {
		resolvers.Language = resolve.New(resolve.LanguageRules(), table, reporter)
	}

	return resolvers
}
