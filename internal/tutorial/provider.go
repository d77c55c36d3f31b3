package tutorial

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// Provider answers path lookups against a fixed section tree
type Provider struct {
	name     string
	sections []Node
	mode     RenderMode
}

// Option configures a Provider
type Option func(*Provider)

// WithSections replaces the built-in tree
func WithSections(sections []Node) Option {
	return func(p *Provider) {
		p.sections = slices.Clone(sections)
	}
}

// WithRenderMode selects full or shallow rendering
func WithRenderMode(mode RenderMode) Option {
	return func(p *Provider) {
		p.mode = mode
	}
}

// WithName sets the provider's display name
func WithName(name string) Option {
	return func(p *Provider) {
		p.name = name
	}
}

// NewProvider creates a provider over the built-in tutorial unless WithSections is given
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		name: "tutorial",
		mode: RenderFull,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sections == nil {
		p.sections = Sections()
	}
	return p
}

// Name returns the provider's display name
func (p *Provider) Name() string {
	return p.name
}

// Mode returns the render mode in use
func (p *Provider) Mode() RenderMode {
	return p.mode
}

// Lookup returns the children at path, ok=false when the path does not resolve
func (p *Provider) Lookup(path string) ([]Node, bool) {
	nodes, ok := Resolve(p.sections, ParsePath(path))
	if !ok {
		return nil, false
	}
	return slices.Clone(nodes), true
}

// Children returns the rendered children at path. A path that does not
// resolve yields an empty, non-nil slice.
func (p *Provider) Children(path string) []any {
	nodes, ok := Resolve(p.sections, ParsePath(path))
	if !ok {
		return []any{}
	}
	return p.mode.Render(nodes)
}

// MarshalChildren encodes Children(path) as a single JSON line without a trailing newline.
// HTML characters are left unescaped so markup in leaf text is passed through verbatim.
func (p *Provider) MarshalChildren(path string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p.Children(path)); err != nil {
		return nil, fmt.Errorf("failed to encode children of %s: %w", path, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON writes the children at path to w as one newline-terminated JSON line
func (p *Provider) WriteJSON(w io.Writer, path string) error {
	data, err := p.MarshalChildren(path)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
