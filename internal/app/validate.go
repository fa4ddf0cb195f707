package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"horse.fit/atlas/internal/cli"
	"horse.fit/atlas/internal/config"
	datasetschema "horse.fit/atlas/schema"
)

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	dataDir := fs.String("data-dir", "", "Directory holding the reference tables and dataset (default: ATLAS_DATA_DIR)")

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

	checks := []struct {
		path     string
		validate func([]byte) error
	}{
		{cfg.CountryCodesPath(), func(payload []byte) error {
			_, err := datasetschema.ValidateCodeTable(payload)
			return err
		}},
		{cfg.LanguageCodesPath(), func(payload []byte) error {
			_, err := datasetschema.ValidateCodeTable(payload)
			return err
		}},
		{cfg.DatasetPath(), func(payload []byte) error {
			_, err := datasetschema.ValidateDataset(payload)
			return err
		}},
	}

	failed := 0
	for _, check := range checks {
		name := filepath.Base(check.path)
		payload, err := os.ReadFile(filepath.Clean(check.path))
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		if err := check.validate(payload); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("OK   %s\n", name)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d file(s) failed validation\n", failed)
		return 1
	}
	return 0
}
