// Package safety provides filtering, confirmation, and audit logging for
// destructive operations exposed through the MCP server.
package safety

import (
	"path/filepath"
	"strings"
)

// Filter controls access to named resources using an allowlist and a denylist.
// Glob patterns (as understood by filepath.Match) are supported in both lists
// and are matched case-insensitively, so "zelda*" protects "Zelda: BotW".
//
// Rules:
//   - If both lists are empty (or nil), every resource is allowed.
//   - Denylist always takes priority over the allowlist.
//   - If a non-empty allowlist is present, a resource must match at least one
//     allowlist pattern to be permitted (after the denylist check).
type Filter struct {
	allowlist []string
	denylist  []string
}

// NewFilter constructs a Filter from the provided allowlist and denylist
// pattern slices. Either or both may be nil or empty.
func NewFilter(allowlist, denylist []string) *Filter {
	return &Filter{
		allowlist: lowerAll(allowlist),
		denylist:  lowerAll(denylist),
	}
}

func lowerAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToLower(p)
	}
	return out
}

// IsAllowed reports whether name is permitted by this filter. A nil Filter
// allows everything.
func (f *Filter) IsAllowed(name string) bool {
	if f == nil {
		return true
	}
	name = strings.ToLower(name)

	for _, pattern := range f.denylist {
		if matchGlob(pattern, name) {
			return false
		}
	}

	if len(f.allowlist) == 0 {
		return true
	}
	for _, pattern := range f.allowlist {
		if matchGlob(pattern, name) {
			return true
		}
	}
	return false
}

// matchGlob returns true when name matches the given glob pattern.
// filepath.Match errors (malformed patterns) are treated as non-matching.
func matchGlob(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return false
	}
	return matched
}
