package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"chattybuddy/internal/backup"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `chattybuddy backup - Create and manage backups

USAGE:
    chattybuddy backup [OPTIONS]

OPTIONS:
    -l, --list         List available backups
    --prune N          Delete all but the N most recent backups
    --delete NAME      Delete one backup
    --data-dir DIR     Use the task file in DIR
    -h, --help         Show this help message

DESCRIPTION:
    Creates a timestamped backup of your task file.
    Backups are stored in ~/.chattybuddy/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    chattybuddy backup

    # List all available backups
    chattybuddy backup --list

    # Keep only the five newest backups
    chattybuddy backup --prune 5
`

// runBackup handles the "chattybuddy backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", -1, "keep only the N most recent backups")
	deleteFlag := fs.String("delete", "", "delete one backup")
	dataDirFlag := fs.String("data-dir", "", "directory holding the task file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	manager := newBackupManager(*dataDirFlag)

	switch {
	case *listFlag:
		listBackups(manager)
	case *deleteFlag != "":
		if err := manager.Delete(*deleteFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting backup: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Deleted backup %s\n", *deleteFlag)
	case *pruneFlag >= 0:
		n, err := manager.Prune(*pruneFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Pruned %d backup(s)\n", n)
	default:
		createBackup(manager)
	}
}

// newBackupManager builds a manager for the configured task file.
func newBackupManager(dataDir string) *backup.Manager {
	cfg := loadConfig()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return backup.NewManager(cfg.GetDataDir(), cfg.DataFile, version)
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Tasks: %d, Done: %d\n", info.Stats["tasks"], info.Stats["done"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'chattybuddy backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   Tasks: %d, Done: %d\n",
			b.Name, formatAge(time.Since(b.CreatedAt)), b.Stats["tasks"], b.Stats["done"])
	}
}

// formatAge returns a human-readable age string.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
