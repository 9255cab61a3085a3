package analyzer

import (
	"sort"

	"github.com/mcncl/jun/internal/config"
	"github.com/mcncl/jun/internal/models"
	"github.com/mcncl/jun/internal/node"
)

// Analyzer computes read-only statistics over JUN documents
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: config.NewConfig(), // Use default config if none provided
	}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze walks a decoded tree.
func (a *Analyzer) Analyze(root node.Node) models.TreeStats {
	stats := models.TreeStats{
		Variants:   make(map[string]int),
		CommonKeys: make(map[string]int),
	}

	root.Walk(func(n node.Node, depth int) bool {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if n.ChildCount() == 0 {
			stats.Leaves++
			if n.HasChildren() {
				stats.EmptyChildren++
			}
		}
		stats.Variants[n.Variant().String()]++
		for _, key := range n.Common().SetKeys() {
			stats.CommonKeys[key]++
		}
		return true
	})

	return stats
}

// AnalyzeDocument decodes root with the configured dialect and adds what
// only the source shows: legacy field names and unrecognized types.
func (a *Analyzer) AnalyzeDocument(root models.JSONValue) (models.TreeStats, error) {
	dialect, err := a.config.ResolveDialect()
	if err != nil {
		return models.TreeStats{}, err
	}

	tree, err := node.Decode(root, node.WithDialect(dialect), node.WithMaxDepth(a.config.MaxDepth))
	if err != nil {
		return models.TreeStats{}, err
	}

	stats := a.Analyze(tree)
	stats.LegacyFields = make(map[string]int)
	stats.UnknownTypes = make(map[string]int)
	scanSource(root, dialect.Registry(), &stats)
	return stats, nil
}

// scanSource runs only on documents that decoded, so its recursion is bounded
// by the decode depth limit.
func scanSource(v models.JSONValue, registry *node.Registry, stats *models.TreeStats) {
	obj, ok := models.AsObject(v)
	if !ok {
		return
	}

	typ, _ := obj["type"].(string)
	if codec, ok := registry.Lookup(typ); ok {
		props, _ := models.AsObject(obj["properties"])
		for _, field := range codec.Fields {
			for _, alias := range field.Aliases {
				if _, present := props[alias]; present {
					stats.LegacyFields[codec.Canonical()+"."+alias]++
				}
			}
		}
	} else {
		stats.UnknownTypes[typ]++
	}

	children, _ := models.AsArray(obj["children"])
	for _, child := range children {
		scanSource(child, registry, stats)
	}
}

// SortedKeys returns the keys of counts ordered by descending count, then by
// name.
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
