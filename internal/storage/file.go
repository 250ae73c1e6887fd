package storage

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fantasy-books/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	fileExt    = ".json"
	tempPrefix = ".tmp-"
)

// File keeps one JSON document per key inside a directory. Processes sharing
// the directory see each other's writes through Watch.
type File struct {
	dir string

	mu      sync.Mutex
	written map[string]writeMark
}

// writeMark remembers the last write this backend made to a key, so that
// the watcher can attribute the resulting filesystem event to its origin.
type writeMark struct {
	sum     [sha256.Size]byte
	deleted bool
	origin  string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{dir: dir, written: make(map[string]writeMark)}, nil
}

func (f *File) Name() string { return "file" }

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set writes to a temp file and renames it over the target, so readers never
// observe a half-written document.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}

	f.mark(key, writeMark{sum: sha256.Sum256(value), origin: OriginFrom(ctx)})

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	f.mark(key, writeMark{deleted: true, origin: OriginFrom(ctx)})

	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (f *File) mark(key string, m writeMark) {
	f.mu.Lock()
	f.written[key] = m
	f.mu.Unlock()
}

func (f *File) Watch(ctx context.Context) (<-chan Change, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	if err := w.Add(f.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", f.dir, err)
	}

	out := make(chan Change, watchBuffer)
	go func() {
		defer close(out)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				key, relevant := f.keyFor(ev)
				if !relevant {
					continue
				}
				select {
				case out <- Change{Key: key, Origin: f.originOf(key)}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.L().Error("file store watcher error", zap.Error(err))
			}
		}
	}()

	return out, nil
}

func (f *File) keyFor(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}

	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, tempPrefix) || !strings.HasSuffix(base, fileExt) {
		return "", false
	}

	key := strings.TrimSuffix(base, fileExt)
	return key, checkKey(key) == nil
}

// originOf compares the current file state with the last local write. A
// match means the event is the echo of that write.
func (f *File) originOf(key string) string {
	f.mu.Lock()
	m, ok := f.written[key]
	f.mu.Unlock()
	if !ok {
		return ""
	}

	data, err := os.ReadFile(f.path(key))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if m.deleted {
			return m.origin
		}
	case err == nil:
		if !m.deleted && sha256.Sum256(data) == m.sum {
			return m.origin
		}
	}
	return ""
}
