// Package checkpoint persists the write positions of the ring logs across restarts.
//
// The on-disk format is one non-negative integer per line, one line per slot.
// An empty file means every position is zero.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// ErrCorrupt is returned by Load when the file holds anything other than
// non-negative integers.
var ErrCorrupt = errors.New("checkpoint file is corrupt")

// File holds one position per slot. Positions live in memory and reach disk on Save.
type File struct {
	path      string
	mu        sync.Mutex
	positions []int
}

// Load reads the checkpoint at path, creating an empty file if it does not exist.
// Slots absent from the file start at zero; tokens past the last slot are ignored.
func Load(path string, slots int) (*File, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("checkpoint needs at least one slot, got %d", slots)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint %s: %w", path, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", path, err)
	}

	positions, err := parse(string(buf), slots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{path: path, positions: positions}, nil
}

func parse(content string, slots int) ([]int, error) {
	positions := make([]int, slots)
	for i, tok := range strings.Fields(content) {
		if i >= slots {
			break
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: %q is not an integer", ErrCorrupt, i, tok)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: slot %d: negative position %d", ErrCorrupt, i, n)
		}
		positions[i] = n
	}
	return positions, nil
}

// Path returns the file the checkpoint is saved to.
func (f *File) Path() string {
	return f.path
}

// Positions returns a copy of all slot positions.
func (f *File) Positions() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.positions...)
}

// Slot returns the cursor for slot i. It panics if i is out of range.
func (f *File) Slot(i int) *Cursor {
	if i < 0 || i >= len(f.positions) {
		panic(fmt.Sprintf("checkpoint: slot %d out of range [0,%d)", i, len(f.positions)))
	}
	return &Cursor{file: f, slot: i}
}

// Save atomically replaces the file with the current positions: the content is
// written to a temporary file in the same directory, synced, and renamed over path.
func (f *File) Save() error {
	f.mu.Lock()
	var b strings.Builder
	for _, p := range f.positions {
		b.WriteString(strconv.Itoa(p))
		b.WriteByte('\n')
	}
	f.mu.Unlock()

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace checkpoint %s: %w", f.path, err)
	}
	return nil
}

// Cursor is the position of one slot.
type Cursor struct {
	file *File
	slot int
}

// Get returns the stored position.
func (c *Cursor) Get() int {
	c.file.mu.Lock()
	defer c.file.mu.Unlock()
	return c.file.positions[c.slot]
}

// Set stores a new position. Negative values are clamped to zero.
func (c *Cursor) Set(pos int) {
	if pos < 0 {
		pos = 0
	}
	c.file.mu.Lock()
	c.file.positions[c.slot] = pos
	c.file.mu.Unlock()
}
