package graph

import "github.com/tenderflow/engine/internal/link"

// PathResult is the outcome of a shortest-path search.
type PathResult struct {
	PathExists bool     `json:"path_exists"`
	Path       []string `json:"path"`
	Distance   int      `json:"distance"`
}

// FindPath runs a breadth-first search for the shortest directed path
// (by edge count) from startID to endID over ALL supplied links,
// regardless of status.
//
// The path includes both endpoints; Distance is len(Path)-1. The
// visited set guarantees termination on cyclic graphs with O(V+E)
// work. A missing path is an ordinary result, never an error.
func FindPath(startID, endID string, links []link.Link) PathResult {
	if startID == endID {
		return PathResult{PathExists: true, Path: []string{startID}, Distance: 0}
	}

	adjacency := make(map[string][]string)
	for _, l := range links {
		adjacency[l.SourceID] = append(adjacency[l.SourceID], l.TargetID)
	}

	visited := map[string]bool{startID: true}
	parent := make(map[string]string)
	queue := []string{startID}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, next := range adjacency[node] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = node

			if next == endID {
				path := reconstruct(parent, startID, endID)
				return PathResult{
					PathExists: true,
					Path:       path,
					Distance:   len(path) - 1,
				}
			}
			queue = append(queue, next)
		}
	}

	return PathResult{PathExists: false, Path: []string{}}
}

// reconstruct walks parent pointers back from end to start.
func reconstruct(parent map[string]string, startID, endID string) []string {
	var reversed []string
	for node := endID; ; node = parent[node] {
		reversed = append(reversed, node)
		if node == startID {
			break
		}
	}
	path := make([]string, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path
}
