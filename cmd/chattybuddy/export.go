package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"chattybuddy/internal/fsutil"
	"chattybuddy/internal/reports"
	"chattybuddy/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `chattybuddy export - Summarize the task list

USAGE:
    chattybuddy export [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    --data-dir DIR     Use the task file in DIR
    -h, --help         Show this help message

DESCRIPTION:
    Summarizes the task file: counts by kind and status, overdue
    deadlines, and anything due or starting within the next 7 days.

EXAMPLES:
    # Summary in Markdown
    chattybuddy export

    # JSON format
    chattybuddy export --format json

    # Save to file
    chattybuddy export --output tasks.md
`

// runExport handles the "chattybuddy export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	dataDirFlag := fs.String("data-dir", "", "directory holding the task file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}

	cfg := loadConfig()
	if *dataDirFlag != "" {
		cfg.DataDir = *dataDirFlag
	}

	store, err := storage.New(cfg.GetDataDir(), cfg.DataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	tasks, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	summary := reports.NewGenerator(nil).Generate(tasks)

	var output string
	if format == "json" {
		data, err := reports.FormatJSON(summary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
			os.Exit(1)
		}
		output = string(data)
	} else {
		output = reports.FormatMarkdown(summary)
	}

	if *outputFlag != "" {
		if dir := filepath.Dir(*outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Summary written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
