package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"prism/internal/diag"
	"prism/internal/project"
	"prism/internal/source"
)

// Bump when the DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file check results keyed by content hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiag is one diagnostic in serialized form. Spans are byte offsets
// into the file the cache key was derived from.
type CachedDiag struct {
	Severity  uint8
	Code      uint16
	Message   string
	StartByte uint32
	EndByte   uint32
}

// DiskPayload is the cached outcome of checking one file.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	Diags       []CachedDiag
}

// OpenDiskCache initializes a disk cache under dir, or the standard
// XDG location when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// a "checks" subdirectory keeps the cache easy to inspect and clear
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes and writes a payload, replacing any previous entry
// atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Entries with a stale schema count as misses.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// buildPayload converts a finished bag into its serialized form.
func buildPayload(file *source.File, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		ContentHash: file.Hash,
		Diags:       make([]CachedDiag, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		payload.Diags = append(payload.Diags, CachedDiag{
			Severity:  uint8(d.Severity),
			Code:      uint16(d.Code),
			Message:   d.Message,
			StartByte: d.Primary.Start,
			EndByte:   d.Primary.End,
		})
	}
	return payload
}

// restoreDiagnostics rehydrates cached diagnostics against the given file.
// Notes are not cached; the pretty format falls back to the primary span.
func restoreDiagnostics(bag *diag.Bag, payload *DiskPayload, fileID source.FileID) {
	for _, cd := range payload.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.StartByte, End: cd.EndByte},
		})
	}
}
