package report

import (
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Renderer writes a report as a downloadable artifact.
type Renderer interface {
	ContentType() string
	FileExtension() string
	Render(w io.Writer, r *UtilizationReport) error
}

// Registry selects a Renderer by format name, case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// DefaultRegistry knows the "json" format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("json", JSONRenderer{})
	return r
}

func (r *Registry) Register(format string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[strings.ToLower(format)] = renderer
}

func (r *Registry) Get(format string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, ErrUnknownFormat
	}
	return renderer, nil
}

func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.renderers))
	for f := range r.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

type JSONRenderer struct{}

func (JSONRenderer) ContentType() string   { return "application/json" }
func (JSONRenderer) FileExtension() string { return "json" }

func (JSONRenderer) Render(w io.Writer, r *UtilizationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
