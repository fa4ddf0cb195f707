package app

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"horse.fit/atlas/internal/ingest"
)

func runIngest(args []string) int {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	filePath := fs.String("file", "", "Path to a saved almanac HTML country page (\"-\" for stdin)")
	pageURL := fs.String("url", "", "Original page URL, used to resolve relative links")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: atlas ingest -file <page.html> [-url <original url>]")
		return 2
	}

	source := os.Stdin
	if *filePath != "-" {
		file, err := os.Open(filepath.Clean(*filePath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open page: %v\n", err)
			return 1
		}
		defer file.Close()
		source = file
	}

	base := *pageURL
	if base == "" {
		base = "file://" + *filePath
	}
	parsedURL, err := url.Parse(base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid page URL: %v\n", err)
		return 2
	}

	descr, err := ingest.FromHTML(source, parsedURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		return 1
	}

	fmt.Println(descr)
	return 0
}
