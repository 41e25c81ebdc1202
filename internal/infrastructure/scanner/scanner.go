// Package scanner runs the attendance intake loop. It watches a drop
// directory for code images (a webcam capture tool or a phone sync writes
// them there), decodes each frame, and hands the decoded student id to the
// attendance recorder. Every frame is moved out of the drop directory after
// processing so nothing is scanned twice.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hadir-app/hadir/internal/domain/identity"
	"github.com/hadir-app/hadir/pkg/logger"
)

// settleDelay gives the producer time to finish writing a frame before we
// read it. Create events fire on open, not on close.
const settleDelay = 200 * time.Millisecond

// RecordFunc is called once per successfully decoded frame. Errors from it
// are logged and the loop continues.
type RecordFunc func(ctx context.Context, studentID int) error

// Scanner is the directory-watching intake loop.
type Scanner struct {
	dir     string
	decoder identity.CodeDecoder
	record  RecordFunc
	log     *logger.Logger
}

// New prepares the scanner. The drop directory and its processed/ subfolder
// are created if missing.
func New(dir string, decoder identity.CodeDecoder, record RecordFunc, log *logger.Logger) (*Scanner, error) {
	if err := os.MkdirAll(filepath.Join(dir, "processed"), 0o755); err != nil {
		return nil, fmt.Errorf("scanner: create dirs: %w", err)
	}
	return &Scanner{
		dir:     dir,
		decoder: decoder,
		record:  record,
		log:     log.With(logger.Component("scanner")),
	}, nil
}

// Run blocks until ctx is cancelled. Frames already in the drop directory at
// startup are swept first, then the watcher takes over.
func (s *Scanner) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scanner: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("scanner: watch %s: %w", s.dir, err)
	}

	s.sweep(ctx)
	s.log.Info("scanner started", logger.FilePath(s.dir))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scanner stopped")
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isFrame(event.Name) {
				continue
			}
			time.Sleep(settleDelay)
			s.process(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", logger.Err(err))
		}
	}
}

// sweep processes frames that landed before the watcher was up.
func (s *Scanner) sweep(ctx context.Context) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("initial sweep failed", logger.Err(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isFrame(entry.Name()) {
			continue
		}
		s.process(ctx, filepath.Join(s.dir, entry.Name()))
	}
}

// process decodes one frame and records attendance. All failure modes are
// logged, never returned: a bad frame must not take the loop down.
func (s *Scanner) process(ctx context.Context, path string) {
	frame, err := os.ReadFile(path)
	if err != nil {
		s.log.Error("read frame failed", logger.FilePath(path), logger.Err(err))
		return
	}

	id, ok, err := s.decoder.Decode(ctx, frame)
	switch {
	case err != nil:
		s.log.Warn("frame not decodable", logger.FilePath(path), logger.Err(err))
	case !ok:
		s.log.Debug("no code in frame", logger.FilePath(path))
	default:
		if err := s.record(ctx, id); err != nil {
			s.log.Warn("attendance not recorded", logger.StudentID(id), logger.Err(err))
		} else {
			s.log.Info("attendance recorded from frame", logger.StudentID(id), logger.FilePath(path))
		}
	}

	dest := filepath.Join(s.dir, "processed", filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		s.log.Error("move frame failed", logger.FilePath(path), logger.Err(err))
	}
}

func isFrame(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
