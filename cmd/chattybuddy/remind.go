package main

import (
	"flag"
	"fmt"
	"os"

	"chattybuddy/internal/notify"
	"chattybuddy/internal/reports"
	"chattybuddy/internal/storage"
)

const remindHelpText = `chattybuddy remind - Desktop reminder of what is due

USAGE:
    chattybuddy remind [OPTIONS]

OPTIONS:
    -p, --print      Print the reminder instead of sending it
    --data-dir DIR   Use the task file in DIR
    -h, --help       Show this help message

DESCRIPTION:
    Sends one desktop notification listing overdue deadlines and events
    starting within the next 7 days. Nothing is sent when nothing is due.
    Uses osascript on macOS and notify-send on Linux.

EXAMPLES:
    # Remind every morning (crontab)
    0 9 * * * chattybuddy remind
`

// runRemind handles the "chattybuddy remind" subcommand.
func runRemind(args []string) {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)

	printFlag := fs.Bool("print", false, "print instead of notifying")
	fs.BoolVar(printFlag, "p", false, "print instead of notifying (shorthand)")
	dataDirFlag := fs.String("data-dir", "", "directory holding the task file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, remindHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(remindHelpText)
		os.Exit(0)
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

	n, ok := notify.Reminder(reports.NewGenerator(nil).Generate(tasks))
	if !ok {
		if *printFlag {
			fmt.Println("Nothing due. Enjoy!")
		}
		return
	}

	notifier := notify.New()
	if *printFlag || !notifier.IsSupported() {
		fmt.Println(n.Title)
		fmt.Println(n.Body)
		return
	}
	if err := notifier.Send(n); err != nil {
		fmt.Fprintf(os.Stderr, "Error sending notification: %v\n", err)
		os.Exit(1)
	}
}
