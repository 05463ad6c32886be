package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandGlob resolves a local log location. Plain paths are returned as-is so
// that open errors name the file; patterns must match at least one file.
// Matches are sorted so rotated logs (network-rank.1, network-rank.2, ...) are
// read in a deterministic order.
func ExpandGlob(location string) ([]string, error) {
	if !strings.ContainsAny(location, "*?[") {
		return []string{location}, nil
	}

	matches, err := filepath.Glob(location)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", location, err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no log files matched %q", location)
	}

	sort.Strings(matches)
	return matches, nil
}
