// Package source reads provider documents from local files, the embedded
// defaults and remote configuration stores.
//
// A reference is a URI whose scheme selects a Reader ("file", "builtin",
// "secretsmanager"). A reference without a scheme is a local path.
package source

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Reader fetches the raw bytes of a document.
type Reader interface {
	// Scheme returns the URI scheme this reader handles (e.g. "file").
	Scheme() string

	// Read returns the document named by the full reference.
	Read(ctx context.Context, reference string) ([]byte, error)
}

// Registry dispatches references to readers by scheme.
type Registry struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

// NewRegistry returns a registry holding readers.
func NewRegistry(readers ...Reader) *Registry {
	r := &Registry{readers: make(map[string]Reader)}
	for _, rd := range readers {
		r.Register(rd)
	}
	return r
}

// Default returns a registry with the file and builtin readers, plus
// Secrets Manager using the ambient AWS configuration.
func Default() *Registry {
	return NewRegistry(
		&FileReader{},
		&BuiltinReader{},
		&SecretsManagerReader{},
	)
}

// Register adds or replaces the reader for rd.Scheme().
func (r *Registry) Register(rd Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers[rd.Scheme()] = rd
}

// Schemes lists the registered schemes, sorted.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.readers))
	for s := range r.readers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Read dispatches reference to the reader for its scheme.
func (r *Registry) Read(ctx context.Context, reference string) ([]byte, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, &InvalidReferenceError{Reference: reference, Reason: "empty reference"}
	}

	scheme := parseScheme(reference)
	if scheme == "" {
		scheme = "file"
	}

	r.mu.RLock()
	rd, ok := r.readers[scheme]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedSchemeError{Scheme: scheme}
	}

	return rd.Read(ctx, reference)
}

// parseScheme extracts "file" from "file:///etc/gsp.json"; "" when absent.
func parseScheme(ref string) string {
	idx := strings.Index(ref, "://")
	if idx < 1 {
		return ""
	}
	return ref[:idx]
}
