package client

import (
	"strings"
)

// FilterGames returns the subset of list whose title, genre or platform
// contains q case-insensitively. An empty query returns the list as-is
// (already in title order). Pure; never touches the backend.
func FilterGames(list []Game, q string) []Game {
	q = strings.ToLower(q)
	if q == "" {
		return list
	}

	out := []Game{}
	for _, g := range list {
		if strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Genre), q) ||
			strings.Contains(strings.ToLower(g.Platform), q) {
			out = append(out, g)
		}
	}
	return out
}
