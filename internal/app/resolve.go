package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"horse.fit/atlas/internal/cli"
	"horse.fit/atlas/internal/codes"
	"horse.fit/atlas/internal/config"
	"horse.fit/atlas/internal/logging"
	"horse.fit/atlas/internal/report"
	"horse.fit/atlas/internal/resolve"
)

func runResolve(args []string) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kind := fs.String("kind", "language", "Name kind: country or language")
	dataDir := fs.String("data-dir", "", "Directory holding the reference tables (default: ATLAS_DATA_DIR)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Usage: atlas resolve [-kind country|language] <name>")
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

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	reporter := report.NewLogReporter(logger, nil)

	var resolver *resolve.Resolver
	switch strings.ToLower(strings.TrimSpace(*kind)) {
	case "country":
		table, err := codes.LoadFile(cfg.CountryCodesPath(), codes.StripDiacritics())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load country codes: %v\n", err)
			return 1
		}
		resolver = resolve.New(resolve.CountryRules(), table, reporter)
	case "language":
		table, err := codes.LoadFile(cfg.LanguageCodesPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load language codes: %v\n", err)
			return 1
		}
		resolver = resolve.New(resolve.LanguageRules(), table, reporter)
	default:
		fmt.Fprintln(os.Stderr, "--kind must be country or language")
		return 2
	}

	code, ok := resolver.Resolve(name)
	if !ok {
		fmt.Printf("name=%q resolved=false\n", name)
		return 1
	}
	fmt.Printf("name=%q resolved=true code=%s\n", name, code)
	return 0
}
