package router

import "github.com/katalvlaran/consentflow/core"

// Tally counts routes and how many of them are blocked.
type Tally struct {
	Total   int
	Blocked int
}

// Summary aggregates a route set by destination category.
type Summary struct {
	Total      int
	Blocked    int
	Fallback   int
	ByCategory map[core.Category]Tally
}

// Summarize counts routes, blocked routes and fallbacks.
func Summarize(routes []Route) Summary {
	s := Summary{ByCategory: make(map[core.Category]Tally, len(core.Categories))}
	for i := range routes {
		r := &routes[i]
		t := s.ByCategory[r.DestinationCategory]
		t.Total++
		s.Total++
		if r.Blocked() {
			t.Blocked++
			s.Blocked++
		}
		if r.Fallback {
			s.Fallback++
		}
		s.ByCategory[r.DestinationCategory] = t
	}

	return s
}
