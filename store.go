// store.go — pluggable backends that fetch olo-document source text.
//
// A Store maps normalized slash-separated paths to document sources. Four
// backends ship here: MemoryStore (map-backed), FileStore (documents under
// a root directory), HTTPStore (read-only over GET) and BoltStore (bbolt
// file database). The Router (router.go) composes stores under mount
// prefixes and is itself a Store.
package olojs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound reports a path with no document behind it.
	ErrNotFound = errors.New("document not found")
	// ErrReadOnly reports a write against a read-only store.
	ErrReadOnly = errors.New("store is read-only")
	// ErrNotListable reports List against a store without it.
	ErrNotListable = errors.New("store does not support listing")
)

// Store fetches, enumerates and mutates document sources.
type Store interface {
	Read(ctx context.Context, path string) (string, error)
	List(ctx context.Context, path string) ([]string, error)
	Write(ctx context.Context, path string, source string) error
	Delete(ctx context.Context, path string) error
}

// NormalizePath cleans a document path to an absolute slash form.
func NormalizePath(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}

// listChildren extracts the immediate children of dir from a flat set of
// document paths; sub-directories carry a trailing '/'.
func listChildren(paths []string, dir string) []string {
	dir = NormalizePath(dir)
	if dir != "/" {
		dir += "/"
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range paths {
		if !strings.HasPrefix(p, dir) {
			continue
		}
		rest := p[len(dir):]
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i+1]
		}
		if rest != "" && !seen[rest] {
			seen[rest] = true
			out = append(out, rest)
		}
	}
	sort.Strings(out)
	return out
}

// ----- MemoryStore -----

// MemoryStore keeps documents in a mutex-guarded map.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryStore returns a store preloaded with docs (may be nil).
func NewMemoryStore(docs map[string]string) *MemoryStore {
	s := &MemoryStore{docs: map[string]string{}}
	for p, src := range docs {
		s.docs[NormalizePath(p)] = src
	}
	return s
}

func (s *MemoryStore) Read(_ context.Context, p string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.docs[NormalizePath(p)]
	if !ok {
		return "", ErrNotFound
	}
	return src, nil
}

func (s *MemoryStore) List(_ context.Context, p string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.docs))
	for dp := range s.docs {
		paths = append(paths, dp)
	}
	return listChildren(paths, p), nil
}

func (s *MemoryStore) Write(_ context.Context, p, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[NormalizePath(p)] = source
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	np := NormalizePath(p)
	if _, ok := s.docs[np]; !ok {
		return ErrNotFound
	}
	delete(s.docs, np)
	return nil
}

// ----- FileStore -----

// FileStore serves documents from files under a root directory. Document
// paths map to root-relative files with the configured extension.
type FileStore struct {
	Root string
	Ext  string // defaults to ".olo"
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{Root: dir, Ext: ".olo"} }

func (s *FileStore) ext() string {
	if s.Ext == "" {
		return ".olo"
	}
	return s.Ext
}

func (s *FileStore) filePath(p string) string {
	return filepath.Join(s.Root, filepath.FromSlash(NormalizePath(p))+s.ext())
}

func (s *FileStore) Read(_ context.Context, p string) (string, error) {
	data, err := os.ReadFile(s.filePath(p))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *FileStore) List(_ context.Context, p string) ([]string, error) {
	dir := filepath.Join(s.Root, filepath.FromSlash(NormalizePath(p)))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name()+"/")
			continue
		}
		if strings.HasSuffix(e.Name(), s.ext()) {
			out = append(out, strings.TrimSuffix(e.Name(), s.ext()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStore) Write(_ context.Context, p, source string) error {
	fp := s.filePath(p)
	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fp, []byte(source), 0o644)
}

func (s *FileStore) Delete(_ context.Context, p string) error {
	err := os.Remove(s.filePath(p))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// ----- HTTPStore -----

// HTTPStore reads documents from a remote base URL over GET. It is
// read-only and not listable.
type HTTPStore struct {
	URL    string
	Client *http.Client
}

// NewHTTPStore returns a store reading below baseURL.
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{URL: strings.TrimSuffix(baseURL, "/")}
}

func (s *HTTPStore) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *HTTPStore) Read(ctx context.Context, p string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+NormalizePath(p), nil)
	if err != nil {
		return "", err
	}
	res, err := s.client().Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case res.StatusCode != http.StatusOK:
		return "", fmt.Errorf("GET %s: %s", s.URL+NormalizePath(p), res.Status)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *HTTPStore) List(context.Context, string) ([]string, error) {
	return nil, ErrNotListable
}

func (s *HTTPStore) Write(context.Context, string, string) error { return ErrReadOnly }

func (s *HTTPStore) Delete(context.Context, string) error { return ErrReadOnly }

// ----- BoltStore -----

var boltBucket = []byte("documents")

// BoltStore persists documents in a bbolt database file, one bucket, key
// per normalized path.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file.
func NewBoltStore(file string) (*BoltStore, error) {
	db, err := bolt.Open(file, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Close releases the database file.
func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) Read(_ context.Context, p string) (string, error) {
	var src string
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(boltBucket).Get([]byte(NormalizePath(p))); v != nil {
			src, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return src, nil
}

func (s *BoltStore) List(_ context.Context, p string) ([]string, error) {
	var paths []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return listChildren(paths, p), nil
}

func (s *BoltStore) Write(_ context.Context, p, source string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(NormalizePath(p)), []byte(source))
	})
}

func (s *BoltStore) Delete(_ context.Context, p string) error {
	key := []byte(NormalizePath(p))
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}
