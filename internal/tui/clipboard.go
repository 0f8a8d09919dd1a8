package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ReadClipboard returns the system clipboard text.
func ReadClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard: no clipboard utility found")
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// WriteClipboard replaces the system clipboard text.
func WriteClipboard(s string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard utility found")
	}
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
