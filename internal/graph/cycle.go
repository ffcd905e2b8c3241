package graph

import "github.com/tenderflow/engine/internal/link"

// CircularReference flags a pair of links forming a direct 2-node
// cycle: one link a→b and one link b→a.
type CircularReference struct {
	Entities  [2]string    `json:"entities"`
	LinkTypes [2]link.Type `json:"link_types"`
}

// DetectCircularReferences scans every pair of links for opposing
// directions. Each qualifying pair is reported exactly once.
//
// Only direct 2-cycles are detected; longer cycles pass unnoticed.
// The O(n²) pairwise scan is fine at the expected scale of tens of
// links per procurement.
func DetectCircularReferences(links []link.Link) []CircularReference {
	var out []CircularReference
	for i := 0; i < len(links); i++ {
		for j := i + 1; j < len(links); j++ {
			a, b := links[i], links[j]
			if a.SourceID == b.TargetID && a.TargetID == b.SourceID {
				out = append(out, CircularReference{
					Entities:  [2]string{a.SourceID, a.TargetID},
					LinkTypes: [2]link.Type{a.Type, b.Type},
				})
			}
		}
	}
	return out
}
