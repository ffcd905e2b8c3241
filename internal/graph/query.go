// Package graph provides read-only queries over a snapshot of links:
// neighbor lookup, shortest-path search, cycle detection, chain
// auditing, progress computation and reporting.
//
// Every function takes the link collection as an explicit argument and
// performs pure computation over it; the package owns no storage and
// is safe for concurrent use.
package graph

import (
	"time"

	"github.com/tenderflow/engine/internal/link"
)

// LinkedEntity is one neighbor of an entity in the link graph.
type LinkedEntity struct {
	EntityID  string    `json:"entity_id"`
	LinkType  link.Type `json:"link_type"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// LinkedEntities returns the targets of every active link whose source
// is sourceID, optionally restricted to the given types. Results keep
// the insertion order of the input; they are never re-sorted.
func LinkedEntities(sourceID string, links []link.Link, typeFilter ...link.Type) []LinkedEntity {
	var out []LinkedEntity
	for _, l := range links {
		if l.Status != link.StatusActive || l.SourceID != sourceID {
			continue
		}
		if !matchesFilter(l.Type, typeFilter) {
			continue
		}
		out = append(out, LinkedEntity{
			EntityID:  l.TargetID,
			LinkType:  l.Type,
			CreatedAt: l.CreatedAt,
			CreatedBy: l.CreatedBy,
		})
	}
	return out
}

// ReverseLinks returns the sources of every active link whose target is
// targetID, optionally restricted to the given types. Symmetric to
// LinkedEntities.
func ReverseLinks(targetID string, links []link.Link, typeFilter ...link.Type) []LinkedEntity {
	var out []LinkedEntity
	for _, l := range links {
		if l.Status != link.StatusActive || l.TargetID != targetID {
			continue
		}
		if !matchesFilter(l.Type, typeFilter) {
			continue
		}
		out = append(out, LinkedEntity{
			EntityID:  l.SourceID,
			LinkType:  l.Type,
			CreatedAt: l.CreatedAt,
			CreatedBy: l.CreatedBy,
		})
	}
	return out
}

func matchesFilter(t link.Type, filter []link.Type) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if t == f {
			return true
		}
	}
	return false
}
