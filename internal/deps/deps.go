// Package deps builds the cross-database dependency graph. A field that
// carries the reserved external-reference key anywhere in its definition
// points at another database; scanning every loaded file tree for that key
// yields the direct dependencies, and iterative closure with a visited set
// yields the transitive ones. The closure is cycle-safe in both directions.
//
// Dependency detection is advisory: scan problems are never errors, worst
// case a reference goes unreported.
package deps

import (
	"sort"

	"github.com/nxlens/nxlens/internal/rawval"
	"github.com/nxlens/nxlens/internal/schema"
)

// RefKey is the reserved attribute name that marks a cross-database
// reference; its value is the referenced database's identifier.
const RefKey = "dbId"

// MaxScanDepth bounds the recursive key scan to guard against malformed or
// pathological input.
const MaxScanDepth = 20

// Edge is one direct dependency: Source references Target. Self-loops are
// never emitted.
type Edge struct {
	Source string
	Target string
}

// DirectRefs scans every raw file tree of db for the reserved reference
// key and returns the set of directly-referenced external database ids,
// sorted. Self-references are excluded.
func DirectRefs(db *schema.Database) []string {
	seen := make(map[string]struct{})
	for _, tree := range db.RawFiles {
		for _, v := range rawval.FindKey(tree, RefKey, MaxScanDepth) {
			id, ok := rawval.AsString(v)
			if !ok || id == "" || id == db.ID {
				continue
			}
			seen[id] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Graph holds forward ("depends on") and reverse ("is depended on by")
// adjacency for one set of databases. A Graph is built once and never
// mutated afterwards, so it is safe to share between readers.
type Graph struct {
	forward map[string][]string
	reverse map[string][]string
}

// Build scans each database once and assembles both adjacency maps in a
// single pass; reverse queries never trigger a re-scan.
func Build(dbs []*schema.Database) *Graph {
	g := &Graph{
		forward: make(map[string][]string),
		reverse: make(map[string][]string),
	}
	for _, db := range dbs {
		for _, target := range DirectRefs(db) {
			g.forward[db.ID] = append(g.forward[db.ID], target)
			g.reverse[target] = append(g.reverse[target], db.ID)
		}
	}
	for id := range g.forward {
		sort.Strings(g.forward[id])
	}
	for id := range g.reverse {
		sort.Strings(g.reverse[id])
	}
	return g
}

// Edges returns every direct dependency edge, sorted by source then
// target.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, src := range sortedMapKeys(g.forward) {
		for _, dst := range g.forward[src] {
			edges = append(edges, Edge{Source: src, Target: dst})
		}
	}
	return edges
}

// Direct returns the directly-referenced database ids of id, sorted.
func (g *Graph) Direct(id string) []string {
	return append([]string(nil), g.forward[id]...)
}

// DependsOn returns the transitive closure of databases id depends on,
// sorted. A reference cycle terminates and never includes id itself.
func (g *Graph) DependsOn(id string) []string {
	return closure(g.forward, id)
}

// Dependents returns the transitive closure of databases that depend on
// id, sorted: everything that would be affected by removing it.
func (g *Graph) Dependents(id string) []string {
	return closure(g.reverse, id)
}

// closure walks adjacency iteratively from start. The visited set makes
// cycles terminate with the correct finite result; start never appears in
// its own closure.
func closure(adjacency map[string][]string, start string) []string {
	visited := map[string]struct{}{start: {}}
	result := make(map[string]struct{})
	queue := append([]string(nil), adjacency[start]...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, done := visited[id]; done {
			continue
		}
		visited[id] = struct{}{}
		result[id] = struct{}{}
		queue = append(queue, adjacency[id]...)
	}
	delete(result, start)
	return sortedKeys(result)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedMapKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
