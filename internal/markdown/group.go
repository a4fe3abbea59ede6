package markdown

import (
	"sort"

	"github.com/ppiankov/refdocs/internal/model"
)

// Group is the facts of one category
type Group struct {
	Label string
	Facts []model.Fact
}

// GroupFacts buckets facts by Category and returns the non-empty groups in
// the given order. Facts in a group are sorted by name, then by source.
// Categories missing from order are appended in first-seen order.
func GroupFacts(facts []model.Fact, order []string) []Group {
	buckets := make(map[string][]model.Fact)
	var seen []string
	for _, f := range facts {
		if _, ok := buckets[f.Category]; !ok {
			seen = append(seen, f.Category)
		}
		buckets[f.Category] = append(buckets[f.Category], f)
	}

	known := make(map[string]bool, len(order))
	labels := make([]string, 0, len(order))
	for _, label := range order {
		known[label] = true
		labels = append(labels, label)
	}
	for _, label := range seen {
		if !known[label] {
			labels = append(labels, label)
		}
	}

	var groups []Group
	for _, label := range labels {
		bucket := buckets[label]
		if len(bucket) == 0 {
			continue
		}
		SortFacts(bucket)
		groups = append(groups, Group{Label: label, Facts: bucket})
	}
	return groups
}

// SortFacts sorts facts by name, then source, keeping source order for ties
func SortFacts(facts []model.Fact) {
	sort.SliceStable(facts, func(i, j int) bool {
		if facts[i].Name != facts[j].Name {
			return facts[i].Name < facts[j].Name
		}
		return facts[i].Source < facts[j].Source
	})
}
