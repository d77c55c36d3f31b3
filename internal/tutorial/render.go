package tutorial

import "fmt"

// RenderMode selects how nested branches are serialized
type RenderMode string

const (
	// RenderFull expands every branch recursively
	RenderFull RenderMode = "full"
	// RenderShallow renders every branch as {label: []}, the legacy output
	RenderShallow RenderMode = "shallow"
)

// ParseRenderMode maps a mode name to a RenderMode. Empty means RenderFull.
func ParseRenderMode(s string) (RenderMode, error) {
	switch RenderMode(s) {
	case "", RenderFull:
		return RenderFull, nil
	case RenderShallow:
		return RenderShallow, nil
	default:
		return "", fmt.Errorf("unknown render mode: %s", s)
	}
}

// Render converts nodes to a JSON-ready array. Leaves become their text and
// branches become single-key objects mapping the label to the rendered children.
func Render(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case KindLeaf:
			out = append(out, n.text)
		case KindBranch:
			out = append(out, map[string]any{n.label: Render(n.children)})
		}
	}
	return out
}

// RenderFlat is Render without recursion: branches always map to an empty array
func RenderFlat(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case KindLeaf:
			out = append(out, n.text)
		case KindBranch:
			out = append(out, map[string]any{n.label: []any{}})
		}
	}
	return out
}

// Render dispatches to the renderer for this mode
func (m RenderMode) Render(nodes []Node) []any {
	if m == RenderShallow {
		return RenderFlat(nodes)
	}
	return Render(nodes)
}
