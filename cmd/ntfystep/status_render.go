package main

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"ntfystep/internal/notifications"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// buildLogWriter forwards build log lines, colouring the final status line
// when the destination is a terminal. The dispatcher writes one line per call.
type buildLogWriter struct {
	out      io.Writer
	colorize bool
}

func newBuildLogWriter(out io.Writer) io.Writer {
	return &buildLogWriter{out: out, colorize: shouldColorize(out)}
}

var (
	deliveredPrefix = []byte(notifications.LogDelivered)
	failedPrefix    = []byte("Request failed")
)

func (w *buildLogWriter) Write(p []byte) (int, error) {
	if !w.colorize {
		return w.out.Write(p)
	}
	color := ""
	switch {
	case bytes.HasPrefix(p, deliveredPrefix):
		color = ansiGreen
	case bytes.HasPrefix(p, failedPrefix):
		color = ansiRed
	}
	if color == "" {
		return w.out.Write(p)
	}
	line := bytes.TrimRight(p, "\n")
	if _, err := io.WriteString(w.out, color+string(line)+ansiReset+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

func colorizeLabel(label, color string, enabled bool) string {
	if !enabled || color == "" {
		return label
	}
	return color + label + ansiReset
}
