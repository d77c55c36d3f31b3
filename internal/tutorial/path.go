package tutorial

import "strings"

// RootPath addresses the top-level section list
const RootPath = "/"

// ParsePath splits a slash-delimited path into its segments.
// Example: "/Navigation/Modes" -> ["Navigation", "Modes"]
// Empty segments from leading, trailing or repeated slashes are dropped, so
// "", "/" and "//" all address the root. Labels containing "/" cannot be addressed.
func ParsePath(raw string) []string {
	if raw == "" || raw == RootPath {
		return []string{}
	}
	parts := strings.Split(raw, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// JoinPath is the inverse of ParsePath for display purposes
func JoinPath(segments []string) string {
	return RootPath + strings.Join(segments, "/")
}

// Resolve descends nodes by matching each segment against branch labels.
// The first branch whose label equals the segment exactly wins; leaves never
// match. If any segment matches nothing the whole lookup fails with ok=false.
func Resolve(nodes []Node, segments []string) ([]Node, bool) {
	if len(segments) == 0 {
		return nodes, true
	}
	head, rest := segments[0], segments[1:]
	for _, n := range nodes {
		switch n.kind {
		case KindBranch:
			if n.label == head {
				return Resolve(n.children, rest)
			}
		case KindLeaf:
			// leaves carry no children
		}
	}
	return nil, false
}
