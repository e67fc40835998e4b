// Package export writes JSON snapshots of boards to a local directory or an
// S3 compatible bucket.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/tgienger/yusra/internal/models"
)

// Snapshot is the exported form of a board
type Snapshot struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Source     string          `json:"source,omitempty"`
	Board      models.Board    `json:"board"`
	Columns    []models.Column `json:"columns"`
}

// CardCount returns the number of cards across all columns
func (s Snapshot) CardCount() int {
	n := 0
	for _, col := range s.Columns {
		n += len(col.Cards)
	}
	return n
}

// Sink stores an exported object under key
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
	// Location describes where key ends up, for messages to the user
	Location(key string) string
}

// BoardGetter fetches a board with its columns and cards
type BoardGetter interface {
	GetBoard(ctx context.Context, id string) (*models.BoardDetail, error)
}

// Exporter fetches boards and writes them to a sink
type Exporter struct {
	boards BoardGetter
	sink   Sink
	source string
	log    *slog.Logger
	now    func() time.Time
}

// New creates an Exporter. source is recorded in every snapshot, usually the
// API base URL.
func New(boards BoardGetter, sink Sink, source string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{boards: boards, sink: sink, source: source, log: logger, now: time.Now}
}

// Key returns the object key for a board exported at t
func Key(boardID string, t time.Time) string {
	return path.Join("boards", boardID, t.UTC().Format("20060102T150405Z")+".json")
}

// Board exports one board and returns where it was written
func (e *Exporter) Board(ctx context.Context, boardID string) (string, error) {
	detail, err := e.boards.GetBoard(ctx, boardID)
	if err != nil {
		return "", fmt.Errorf("fetch board %s: %w", boardID, err)
	}
	snap := Snapshot{
		ExportedAt: e.now().UTC(),
		Source:     e.source,
		Board:      detail.Board,
		Columns:    detail.Columns,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode board %s: %w", boardID, err)
	}

	key := Key(boardID, snap.ExportedAt)
	if err := e.sink.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("write board %s: %w", boardID, err)
	}
	e.log.Info("board exported", "board", boardID, "key", key, "columns", len(snap.Columns), "cards", snap.CardCount())
	return e.sink.Location(key), nil
}

// FileSink writes objects below Dir, keys becoming relative paths
type FileSink struct {
	Dir string
}

func (s FileSink) Put(_ context.Context, key string, data []byte) error {
	dest := s.Location(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	return os.WriteFile(dest, data, 0644)
}

func (s FileSink) Location(key string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(key))
}
