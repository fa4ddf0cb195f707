package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "build":
		return runBuild(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "parse":
		return runParse(args[1:])
	case "resolve":
		return runResolve(args[1:])
	case "ingest":
		return runIngest(args[1:])
	case "serve":
		return runServe(args[1:])
	case "health":
		return runHealth(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "atlas CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  atlas <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  build     Parse the country dataset and write per-country language records")
	fmt.Fprintln(os.Stderr, "  validate  Validate the reference tables and dataset against their schemas")
	fmt.Fprintln(os.Stderr, "  parse     Parse one language list description and print its entries")
	fmt.Fprintln(os.Stderr, "  resolve   Resolve one country or language name to its code")
	fmt.Fprintln(os.Stderr, "  ingest    Extract a languages description from a saved almanac HTML page")
	fmt.Fprintln(os.Stderr, "  serve     Start the Echo API server over a stored build")
	fmt.Fprintln(os.Stderr, "  health    Verify database connectivity")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"atlas <command> -h\" for command-specific flags.")
}
