package progresslog

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger appends "<timestamp> : <message>" lines to a file. The file is
// opened on every call so it can be rotated or deleted between runs.
type Logger struct {
	path string
	now  func() time.Time
}

func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

func (l *Logger) Path() string {
	return l.path
}

func (l *Logger) Log(message string) error {
	line := fmt.Sprintf("%s : %s\n", l.now().Format(timestampLayout), message)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open progress log: %w", err)
	}
	_, err = f.WriteString(line)
	if err != nil {
		f.Close()
		return fmt.Errorf("write progress log: %w", err)
	}
	slog.Debug("progress", "message", message)
	return f.Close()
}
