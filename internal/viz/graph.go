package viz

import (
	"sort"

	"github.com/topiclens/topiclens/internal/trend"
)

// BuildGraph converts a topic relationship report into graph data for
// visualization. Topics with no papers are dropped; each co-occurring
// pair produces one undirected edge. Node and edge order is
// deterministic.
func BuildGraph(report *trend.RelationshipReport) *GraphData {
	graph := &GraphData{}

	topicList := make([]string, len(report.Topics))
	copy(topicList, report.Topics)
	sort.Strings(topicList)

	for _, topic := range topicList {
		if report.TopicFrequencies[topic] == 0 {
			continue
		}
		graph.Nodes = append(graph.Nodes, Node{
			ID:         topic,
			Label:      topic,
			Frequency:  report.TopicFrequencies[topic],
			Centrality: report.Centrality[topic],
		})
	}

	seen := make(map[string]bool)
	for _, source := range topicList {
		neighbors := make([]string, 0, len(report.Cooccurrence[source]))
		for target := range report.Cooccurrence[source] {
			neighbors = append(neighbors, target)
		}
		sort.Strings(neighbors)

		for _, target := range neighbors {
			key := pairKey(source, target)
			if seen[key] {
				continue
			}
			seen[key] = true
			graph.Edges = append(graph.Edges, Edge{
				Source: source,
				Target: target,
				Weight: report.Cooccurrence[source][target],
			})
		}
	}

	return graph
}

// pairKey canonicalizes an undirected topic pair.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}
