// Package session maps opaque handles to live processors, giving callers
// that cannot hold a *wetext.Processor directly (boundary shims, pools,
// RPC surfaces) a safe create/use/destroy lifecycle. A destroyed or
// never-created handle degrades to empty results instead of failing.
package session

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/wetext/wetext-go/pkg/wetext"
)

// Handle identifies one live processor in a Registry. The zero value is
// never valid.
type Handle string

// NilHandle is the invalid handle returned when creation fails.
const NilHandle Handle = ""

// Registry owns a set of live processors addressed by handle. All methods
// are safe for concurrent use. Handles are ULIDs, so a stale or fabricated
// handle is simply absent from the map rather than aliasing another
// session.
type Registry struct {
	mu       sync.RWMutex
	entropy  *ulid.MonotonicEntropy
	sessions map[Handle]*wetext.Processor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entropy:  ulid.Monotonic(rand.Reader, 0),
		sessions: make(map[Handle]*wetext.Processor),
	}
}

// Create loads both grammars and registers a new session. On any failure
// it returns NilHandle rather than an error; this is the boundary
// convention for callers that cannot receive errors. Use Open to get the
// failure cause.
func (r *Registry) Create(ctx context.Context, taggerPath, verbalizerPath string) Handle {
	h, err := r.Open(ctx, wetext.Options{
		TaggerPath:     taggerPath,
		VerbalizerPath: verbalizerPath,
	})
	if err != nil {
		return NilHandle
	}
	return h
}

// Open loads both grammars and registers a new session, reporting failures.
func (r *Registry) Open(ctx context.Context, opts wetext.Options) (Handle, error) {
	proc, err := wetext.New(ctx, opts)
	if err != nil {
		return NilHandle, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h := Handle(ulid.MustNew(ulid.Now(), r.entropy).String())
	r.sessions[h] = proc
	return h, nil
}

// Destroy closes and removes a session. Destroying NilHandle, an unknown
// handle, or an already-destroyed handle is a no-op.
func (r *Registry) Destroy(h Handle) {
	if h == NilHandle {
		return
	}
	r.mu.Lock()
	proc, ok := r.sessions[h]
	delete(r.sessions, h)
	r.mu.Unlock()
	if ok {
		proc.Close()
	}
}

// Session returns the live processor for a handle.
func (r *Registry) Session(h Handle) (*wetext.Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	proc, ok := r.sessions[h]
	return proc, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Normalize runs the full pipeline on text. An invalid handle yields an
// empty string; callers seeing an empty result for non-empty input should
// check handle validity.
func (r *Registry) Normalize(h Handle, text string) string {
	proc, ok := r.Session(h)
	if !ok {
		return ""
	}
	out, err := proc.Normalize(text)
	if err != nil {
		return ""
	}
	return out
}

// Tag runs only the tagging stage. Same invalid-handle contract as
// Normalize.
func (r *Registry) Tag(h Handle, text string) string {
	proc, ok := r.Session(h)
	if !ok {
		return ""
	}
	out, err := proc.Tag(text)
	if err != nil {
		return ""
	}
	return out
}

// Verbalize runs only the verbalization stage on a serialized tagged form.
// Same invalid-handle contract as Normalize.
func (r *Registry) Verbalize(h Handle, tagged string) string {
	proc, ok := r.Session(h)
	if !ok {
		return ""
	}
	out, err := proc.Verbalize(tagged)
	if err != nil {
		return ""
	}
	return out
}

// Close destroys every live session.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for h, proc := range r.sessions {
		proc.Close()
		delete(r.sessions, h)
	}
	return nil
}
