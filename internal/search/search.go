// Package search filters a user's own trips and guides by free-text
// query and builds the route and hotel summaries shown alongside the
// results.
package search

import (
	"strings"

	"backend-wandermap/internal/guide"
	"backend-wandermap/internal/trip"
)

// MatchTrips returns the trips whose country, destination, or any
// activity contains the query, case-insensitively. A blank query
// matches nothing.
func MatchTrips(trips []trip.Trip, query string) []trip.Trip {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []trip.Trip
	for _, t := range trips {
		if strings.Contains(strings.ToLower(t.Country), q) ||
			strings.Contains(strings.ToLower(t.Destination), q) ||
			anyContains(t.Activities, q) {
			out = append(out, t)
		}
	}
	return out
}

// MatchGuides returns the guides whose title or location contains the
// query, case-insensitively. A blank query matches nothing.
func MatchGuides(guides []guide.Guide, query string) []guide.Guide {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []guide.Guide
	for _, g := range guides {
		if strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Location), q) {
			out = append(out, g)
		}
	}
	return out
}

func anyContains(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// RouteSummary describes a planned route between two free-text
// places, substituting placeholder labels for blank endpoints.
func RouteSummary(from, to string) string {
	fromLabel := strings.TrimSpace(from)
	if fromLabel == "" {
		fromLabel = "Your location"
	}
	toLabel := strings.TrimSpace(to)
	if toLabel == "" {
		toLabel = "Destination"
	}
	return "route: " + fromLabel + " → " + toLabel + " · 25 min drive (sample)"
}

// HotelSummary condenses a hotel query into a single display line,
// substituting sample labels for blank fields.
func HotelSummary(where, when, travelers string) string {
	whereLabel := strings.TrimSpace(where)
	if whereLabel == "" {
		whereLabel = "Tokyo, Japan"
	}
	whenLabel := strings.TrimSpace(when)
	if whenLabel == "" {
		whenLabel = "Nov 22 — Nov 24"
	}
	travLabel := strings.TrimSpace(travelers)
	if travLabel == "" {
		travLabel = "2 guests · 1 room"
	}
	return whereLabel + " · " + whenLabel + " · " + travLabel
}
