package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"isl/internal/diag"
	"isl/internal/source"
)

// diskCacheSchemaVersion invalidates stored payloads when their wire
// format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest keys the cache by content hash.
type Digest = [32]byte

// DiskCache stores per-file parse outcomes keyed by content digest, so
// directory walks skip files that have not changed. Safe for concurrent
// use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of parsing one file. The AST is not
// cached; restoring diagnostics and the OK verdict is what makes a
// repeat check cheap.
type DiskPayload struct {
	Schema uint16
	Path   string
	OK     bool
	Diags  []CachedDiag
}

// CachedDiag is the serializable subset of a diagnostic.
type CachedDiag struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
}

// OpenDiskCache initializes a disk cache at the standard user cache
// location under app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at dir. Used by tests
// and by project-local caches.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "parse", hex.EncodeToString(key[:])+".mp")
}

// Put serializes payload under key. The write is atomic: encode to a
// temp file, then rename into place.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get deserializes the payload stored under key. A miss, or a payload
// with a stale schema, reports false.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
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

// payloadOf converts a parse outcome into its cacheable form.
func payloadOf(res *DirResult) *DiskPayload {
	p := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   res.Path,
		OK:     res.OK,
	}
	for _, d := range res.Bag.Items() {
		p.Diags = append(p.Diags, CachedDiag{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return p
}

// restoreBag rebuilds a diagnostic bag from the cached form, rebinding
// spans to the freshly loaded file ID.
func (p *DiskPayload) restoreBag(maxDiagnostics int, id source.FileID) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range p.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: id, Start: d.Start, End: d.End},
		})
	}
	return bag
}
