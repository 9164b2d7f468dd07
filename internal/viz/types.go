// Package viz renders the topic co-occurrence network as a
// self-contained HTML page using Cytoscape.js.
package viz

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a topic in the network.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Frequency is the number of papers mentioning the topic.
	Frequency int `json:"frequency"`
	// Centrality is the topic's degree in the co-occurrence network.
	Centrality int `json:"centrality"`
}

// Edge links two topics that appear together in papers.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	// Weight is the number of papers containing both topics.
	Weight int `json:"weight"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
