package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"horse.fit/atlas/internal/langtext"
)

func runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	asJSON := fs.Bool("json", false, "Print entries as JSON instead of one line per entry")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	descr := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if descr == "" {
		fmt.Fprintln(os.Stderr, "Usage: atlas parse [-json] <description>")
		return 2
	}

	entries := langtext.Parse(descr)

	if *asJSON {
		encoded, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode entries: %v\n", err)
			return 1
		}
		fmt.Println(string(encoded))
		return 0
	}

	for _, entry := range entries {
		line := fmt.Sprintf("%d. %s", entry.Position, entry.Name)
		if entry.Percent != nil {
			line += fmt.Sprintf(" %.1f%%", *entry.Percent)
		}
		if entry.Official {
			line += " (official)"
		}
		fmt.Println(line)
	}
	return 0
}
