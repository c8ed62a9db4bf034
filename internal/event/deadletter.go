package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/osse101/stardust-engine/internal/logger"
)

// DeadLetterEntry is one line of the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events as JSON lines
type DeadLetterWriter struct {
	mu  sync.Mutex
	out io.WriteCloser
	now func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{out: f, now: time.Now}, nil
}

// Write appends one entry
func (w *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     w.now().UTC(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	logger.Warn(LogMsgEventDeadLettered, "event_type", event.Type, "attempts", attempts, "error", entry.LastError)

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.out.Write(append(line, '\n'))
	return err
}

func (w *DeadLetterWriter) Close() error {
	return w.out.Close()
}

// ReadDeadLetters parses every entry in a dead-letter file. A missing file
// yields no entries.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// ReplayResult counts the outcome of ReplayDeadLetters
type ReplayResult struct {
	Replayed int `json:"replayed"`
	Failed   int `json:"failed"`
}

// ReplayDeadLetters publishes every dead-lettered event in path onto bus once.
// Entries that fail again are reported in Failed and logged; the file itself
// is left untouched.
func ReplayDeadLetters(ctx context.Context, path string, bus Bus) (ReplayResult, error) {
	entries, err := ReadDeadLetters(path)
	if err != nil {
		return ReplayResult{}, err
	}

	var res ReplayResult
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := bus.Publish(ctx, e.Event); err != nil {
			res.Failed++
			logger.FromContext(ctx).Warn(LogMsgReplaySkipped, "event_type", e.Event.Type, "error", err)
			continue
		}
		res.Replayed++
	}
	return res, nil
}
