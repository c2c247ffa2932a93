// Package logbook keeps the human-readable journey log shown in the TUI. Each
// line is "<RFC3339 time> <LEVEL> <message>".
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is one parsed logbook line.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String renders the entry in its on-disk form.
func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format(time.RFC3339), string(e.Level), e.Message)
}

// ParseEntry splits a logbook line. Lines that do not carry a timestamp and
// level come back as INFO messages with a zero time.
func ParseEntry(line string) Entry {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(fields) == 2 {
		if ts, err := time.Parse(time.RFC3339, fields[0]); err == nil {
			rest := strings.TrimLeft(fields[1], " ")
			level, msg, _ := strings.Cut(rest, " ")
			switch Level(level) {
			case LevelInfo, LevelWarn, LevelError:
				return Entry{Time: ts, Level: Level(level), Message: strings.TrimSpace(msg)}
			}
		}
	}
	return Entry{Level: LevelInfo, Message: strings.TrimSpace(line)}
}

// Option customizes a Logbook.
type Option func(*Logbook)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(l *Logbook) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// Logbook persists sign-off progress to a simple text file. It is shared by
// the TUI and the notification sinks, so appends are serialized.
type Logbook struct {
	path  string
	clock func() time.Time
	mu    sync.Mutex
}

// New creates a logbook that writes to the provided path.
func New(path string, opts ...Option) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure dir: %w", err)
	}
	l := &Logbook{path: path, clock: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry. Write failures are dropped: the logbook is
// a convenience view and must never interrupt the session.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := Entry{Time: l.clock().UTC(), Level: level, Message: strings.TrimSpace(message)}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(entry.String() + "\n")
}

// Tail returns up to maxLines of the most recent lines along with the total
// number of lines in the file.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if total > maxLines {
		lines = lines[total-maxLines:]
	}
	return lines, total
}

// Entries is Tail with each line parsed.
func (l *Logbook) Entries(maxLines int) ([]Entry, int) {
	lines, total := l.Tail(maxLines)
	if len(lines) == 0 {
		return nil, total
	}
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = ParseEntry(line)
	}
	return entries, total
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
