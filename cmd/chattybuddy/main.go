// Package main is the entry point for chattybuddy.
// It loads configuration, opens the task file, and starts a chat shell.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"chattybuddy/internal/bot"
	"chattybuddy/internal/config"
	"chattybuddy/internal/console"
	"chattybuddy/internal/datetime"
	"chattybuddy/internal/logging"
	"chattybuddy/internal/storage"
	"chattybuddy/internal/task"
	"chattybuddy/internal/ui"

	"github.com/joho/godotenv"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `chattybuddy - A chatty task tracker for your terminal

USAGE:
    chattybuddy [OPTIONS]
    chattybuddy <command> [ARGS]

COMMANDS:
    backup           Create a backup of the task file
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Summarize tasks as Markdown
    export -f json   Summarize tasks as JSON
    remind           Desktop notification of overdue and upcoming tasks
    config           Show the config file path
    config --init    Write a config file with the defaults

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --console           Use the plain console instead of the chat window
    --data-dir DIR      Keep the task file in DIR

CHAT COMMANDS:
    todo <desc>                          Add a to-do
    deadline <desc> /by <date>           Add a deadline
    event <desc> /from <start> /to <end> Add an event
    list                                 Show all tasks
    find <word>                          Show tasks containing word
    mark <n> / unmark <n>                Mark task n done / not done
    delete <n>                           Remove task n
    bye                                  Say goodbye and exit

    Dates: 2019-10-15, 15 Oct 2019, 15/10/2019, 10/15/19, 15 Oct
    Times: 2019-10-15 1800, 2019-10-15 6PM

KEYBINDINGS (chat window):
    Enter          Send
    PgUp/PgDn, ↑/↓ Scroll the conversation
    F1             Command cheat sheet
    Esc, Ctrl+C    Quit without saying bye

DATA STORAGE:
    Tasks are stored in ~/.chattybuddy/chattybuddy.txt, one per line:
        T | 0 | read book
        D | 1 | submit report | 2019-10-15
        E | 0 | party | 2019-10-15 1800 | 2019-10-15 2200

CONFIGURATION:
    Optional config file: ~/.config/chattybuddy/config.yaml
    Environment: CHATTYBUDDY_DATA_DIR, CHATTYBUDDY_SHELL, DEBUG=true
    A .env file in the working directory is read first.

EXAMPLES:
    # Start chatting
    chattybuddy

    # Plain console, e.g. for scripts
    echo "list" | chattybuddy --console

    # Create a backup
    chattybuddy backup

    # Export a summary
    chattybuddy export -o tasks.md
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "config":
			runConfig(os.Args[2:])
			return
		case "remind":
			runRemind(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	useConsole := flag.Bool("console", false, "use the plain console shell")
	dataDir := flag.String("data-dir", "", "directory holding the task file")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("chattybuddy version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg := loadConfig()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *useConsole {
		cfg.Shell = config.ShellConsole
	}

	log, closer := openLog(cfg)
	defer closer.Close()
	mainLog := logging.For(log, "main")

	store, err := storage.New(cfg.GetDataDir(), cfg.DataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	store.SetLogger(log)

	tasks, err := store.LoadWithRecovery()
	switch {
	case errors.Is(err, storage.ErrRecovered):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	case err != nil:
		mainLog.Error("load failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		closer.Close()
		os.Exit(1)
	}

	b := bot.New(task.NewList(tasks), store, datetime.Default, log)
	mainLog.Info("session started", "version", version, "shell", cfg.Shell, "tasks", len(tasks), "path", store.Path())

	if cfg.Shell == config.ShellConsole {
		c := console.New(os.Stdin, os.Stdout, b, console.Options{
			Color:       console.IsTerminal(os.Stdout),
			ShowWelcome: cfg.UX.ShowWelcome,
			Logger:      log,
		})
		err = c.Run()
	} else {
		err = ui.Run(b, ui.NewStyles(cfg), ui.AppConfigFrom(cfg, log))
	}
	if err != nil {
		mainLog.Error("shell failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
	mainLog.Info("session ended")
}

// loadConfig reads .env, the config file and the environment, and exits on
// an invalid result.
func loadConfig() *config.Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: reading .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openLog opens the session log, falling back to discarding records.
func openLog(cfg *config.Config) (*slog.Logger, io.Closer) {
	log, closer, err := logging.Open(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.GetLogFile(),
		Debug: cfg.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return log, closer
}
