// router.go — dispatches document paths to stores by mount prefix.
package olojs

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Router maps mount prefixes to stores and routes every operation to the
// store with the longest matching prefix. It implements Store itself, so
// routers nest.
type Router struct {
	mu     sync.RWMutex
	mounts map[string]Store
}

// NewRouter returns an empty router. For paths with no matching mount,
// Read and Delete return ErrNotFound, Write returns ErrReadOnly and List
// returns an empty listing.
func NewRouter() *Router {
	return &Router{mounts: map[string]Store{}}
}

// Mount attaches a store under a path prefix, replacing any previous store
// at the same prefix.
func (r *Router) Mount(prefix string, store Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts[NormalizePath(prefix)] = store
}

// Unmount detaches the store at the given prefix.
func (r *Router) Unmount(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mounts, NormalizePath(prefix))
}

// route finds the longest mount prefix covering p and returns the mounted
// store together with the path rebased below the mount point.
func (r *Router) route(p string) (Store, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p = NormalizePath(p)

	prefixes := make([]string, 0, len(r.mounts))
	for prefix := range r.mounts {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, prefix := range prefixes {
		if p == prefix {
			return r.mounts[prefix], "/", true
		}
		base := prefix
		if base != "/" {
			base += "/"
		}
		if strings.HasPrefix(p, base) {
			return r.mounts[prefix], "/" + p[len(base):], true
		}
	}
	return nil, "", false
}

func (r *Router) Read(ctx context.Context, p string) (string, error) {
	store, sub, ok := r.route(p)
	if !ok {
		return "", ErrNotFound
	}
	return store.Read(ctx, sub)
}

func (r *Router) List(ctx context.Context, p string) ([]string, error) {
	store, sub, ok := r.route(p)
	if !ok {
		return nil, nil
	}
	return store.List(ctx, sub)
}

func (r *Router) Write(ctx context.Context, p, source string) error {
	store, sub, ok := r.route(p)
	if !ok {
		return ErrReadOnly
	}
	return store.Write(ctx, sub, source)
}

func (r *Router) Delete(ctx context.Context, p string) error {
	store, sub, ok := r.route(p)
	if !ok {
		return ErrNotFound
	}
	return store.Delete(ctx, sub)
}
