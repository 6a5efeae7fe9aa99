package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chattybuddy/internal/backup"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `chattybuddy restore - Restore the task file from a backup

USAGE:
    chattybuddy restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest        Restore from the most recent backup
    --force, -f     Skip confirmation prompt
    --data-dir DIR  Use the task file in DIR
    -h, --help      Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022_000)
                   Use 'chattybuddy backup --list' to see available backups.

DESCRIPTION:
    Restores the task file from a specific backup.
    A safety backup is automatically created before restoring, and the
    restored file is checked line by line.

EXAMPLES:
    # Restore from a specific backup
    chattybuddy restore 2025-12-15_143022_000

    # Restore from the most recent backup
    chattybuddy restore --latest

    # Restore without confirmation prompt
    chattybuddy restore --force 2025-12-15_143022_000
`

// runRestore handles the "chattybuddy restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")
	dataDirFlag := fs.String("data-dir", "", "directory holding the task file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	manager := newBackupManager(*dataDirFlag)

	var backupName string
	switch {
	case *latestFlag:
		backups, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, backup.ErrNoBackups.Error())
			os.Exit(1)
		}
		backupName = backups[0].Name
	case fs.NArg() > 0:
		backupName = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'chattybuddy restore BACKUP_NAME' or 'chattybuddy restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'chattybuddy backup --list' to see available backups.")
		os.Exit(1)
	}

	info, err := manager.GetBackup(backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Tasks: %d, Done: %d\n", info.Stats["tasks"], info.Stats["done"])
	fmt.Println()

	if !*forceFlag {
		ok, err := confirm(bufio.NewReader(os.Stdin))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(backupName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
}

// confirm asks before overwriting. End of input counts as no.
func confirm(r *bufio.Reader) (bool, error) {
	fmt.Println("⚠ This will overwrite your current tasks.")
	fmt.Print("Continue? [y/N] ")

	response, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
