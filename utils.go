package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

func (m *model) currentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

// initLogging points the standard logger at ~/.boxwire.log so diagnostics
// (missing anchors, defensive state-machine checks) never corrupt the
// terminal UI.
func initLogging() *os.File {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(homeDir, ".boxwire.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	log.SetOutput(f)
	return f
}

func copyLabelToClipboard(n *Node) error {
	if n == nil {
		return nil
	}
	return clipboard.WriteAll(n.Label())
}

// readClipboardLabel pulls clipboard text and normalizes it into something
// usable as a node label.
func readClipboardLabel() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return cleanClipboardText(text), nil
}

func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
