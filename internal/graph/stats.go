package graph

import "github.com/tenderflow/engine/internal/link"

// Statistics tallies a link snapshot by status and type.
type Statistics struct {
	TotalLinks        int               `json:"total_links"`
	ActiveLinks       int               `json:"active_links"`
	InactiveLinks     int               `json:"inactive_links"`
	ArchivedLinks     int               `json:"archived_links"`
	LinkTypeBreakdown map[link.Type]int `json:"link_type_breakdown"`
}

// LinkStatistics computes simple O(n) tallies over the snapshot.
func LinkStatistics(links []link.Link) Statistics {
	stats := Statistics{
		TotalLinks:        len(links),
		LinkTypeBreakdown: make(map[link.Type]int),
	}
	for _, l := range links {
		switch l.Status {
		case link.StatusActive:
			stats.ActiveLinks++
		case link.StatusInactive:
			stats.InactiveLinks++
		case link.StatusArchived:
			stats.ArchivedLinks++
		}
		stats.LinkTypeBreakdown[l.Type]++
	}
	return stats
}
