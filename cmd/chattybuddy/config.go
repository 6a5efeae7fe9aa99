package main

import (
	"flag"
	"fmt"
	"os"

	"chattybuddy/internal/config"
)

const configHelpText = `chattybuddy config - Show or create the config file

USAGE:
    chattybuddy config [OPTIONS]

OPTIONS:
    --init       Write the default config if no file exists yet
    -h, --help   Show this help message
`

// runConfig handles the "chattybuddy config" subcommand.
func runConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)

	initFlag := fs.Bool("init", false, "write the default config file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, configHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(configHelpText)
		os.Exit(0)
	}

	path := config.Path()

	if !*initFlag {
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("%s (not created; run 'chattybuddy config --init')\n", path)
			return
		}
		fmt.Println(path)
		return
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists: %s\n", path)
		return
	}

	if err := config.Default().Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote %s\n", path)
}
