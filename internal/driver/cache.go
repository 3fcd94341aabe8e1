package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"mmfront/internal/project"
	"mmfront/internal/source"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache remembers databases that were processed without a fault, keyed
// by top-level file, its content and the inclusion options. An entry is only
// reused when every file it lists still has the recorded hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cache entry.
type DiskPayload struct {
	Schema uint16

	Root        string
	Reinclusion uint8
	MaxDepth    int

	// Every file the database loaded, in load order.
	FilePaths  []string
	FileHashes []project.Digest

	Productions int
	Digest      project.Digest
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app, falling back to
// ~/.cache/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "db", hex.EncodeToString(key[:])+".mp")
}

// Put serializes payload and atomically replaces the entry for key.
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
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the entry for key into out. A missing entry is (false, nil).
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
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// rename first so a concurrent reader never sees a half-deleted tree
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey mixes the root's identity and the options that change the
// outcome into the root's content hash.
func cacheKey(root *source.File, opts Options) project.Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(root.Path))
	var buf [9]byte
	buf[0] = byte(opts.Reinclusion)
	binary.LittleEndian.PutUint64(buf[1:], uint64(max(opts.MaxDepth, 0))) // #nosec G115 -- clamped above
	_, _ = h.Write(buf[:])
	var id project.Digest
	copy(id[:], h.Sum(nil))
	return project.Combine(root.Hash, id)
}

// Store records a clean parse of the database rooted at path.
func (c *DiskCache) Store(path string, opts Options, pr *ParseResult) error {
	if c == nil || pr == nil || pr.Err != nil {
		return nil
	}
	root := pr.FileSet.Get(pr.Root)
	if root == nil {
		return nil
	}
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Root:        root.Path,
		Reinclusion: uint8(opts.Reinclusion),
		MaxDepth:    opts.MaxDepth,
		Productions: len(pr.Productions),
		Digest:      pr.Digest,
	}
	for i := range pr.FileSet.Len() {
		f := pr.FileSet.Get(source.FileID(i)) // #nosec G115 -- bounded by the arena size
		payload.FilePaths = append(payload.FilePaths, f.Path)
		payload.FileHashes = append(payload.FileHashes, f.Hash)
	}
	return c.Put(cacheKey(root, opts), payload)
}

// Lookup returns the cached result for the database rooted at path when
// every file it loaded last time is unchanged.
func (c *DiskCache) Lookup(path string, opts Options) (CheckResult, bool) {
	if c == nil {
		return CheckResult{}, false
	}
	fs := source.NewFileSet()
	rootID, err := fs.Load(path)
	if err != nil {
		return CheckResult{}, false
	}
	root := fs.Get(rootID)

	var p DiskPayload
	if ok, err := c.Get(cacheKey(root, opts), &p); !ok || err != nil {
		return CheckResult{}, false
	}
	if p.Schema != diskCacheSchemaVersion || p.Root != root.Path || len(p.FilePaths) != len(p.FileHashes) {
		return CheckResult{}, false
	}

	hashes := map[string]project.Digest{root.Path: root.Hash}
	for i, fp := range p.FilePaths {
		h, ok := hashes[fp]
		if !ok {
			h, ok = hashFile(fp)
			if !ok {
				return CheckResult{}, false
			}
			hashes[fp] = h
		}
		if h != p.FileHashes[i] {
			return CheckResult{}, false
		}
	}

	return CheckResult{
		Path:        path,
		FileSet:     fs,
		Bag:         opts.newBag(),
		Productions: p.Productions,
		Files:       len(p.FilePaths),
		Digest:      p.Digest,
		Cached:      true,
	}, true
}

// hashFile hashes path exactly as source.FileSet would after normalization.
func hashFile(path string) (project.Digest, bool) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return project.Digest{}, false
	}
	return fs.Get(id).Hash, true
}
