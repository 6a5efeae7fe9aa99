//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return linuxNotifier{}
}

func (linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (linuxNotifier) Send(n Notification) error {
	if err := exec.Command("notify-send", linuxArgs(n)...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

func linuxArgs(n Notification) []string {
	urgency := "--urgency=normal"
	if n.Urgent {
		urgency = "--urgency=critical"
	}
	return []string{"--app-name=chattybuddy", urgency, n.Title, n.Body}
}
