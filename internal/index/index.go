// Package index provides pure, stateless query operations over a list of
// extracted code locations: filtering, searching, grouping and statistics.
// All functions are safe to call concurrently on independent inputs.
package index

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nxlens/nxlens/internal/extract"
)

// Sentinel bucket names used by GroupByTable for locations that do not
// belong to a table node.
const (
	DatabaseBucket = "(Database)"
	ViewsBucket    = "[Views]"
	ReportsBucket  = "[Reports]"
)

// Filter describes the query dimensions. A zero-valued dimension is a
// wildcard: Matches with an empty Filter is true for every location.
type Filter struct {
	// Text matches case-insensitively against both path and code.
	Text       string
	Categories []extract.Category
	CodeTypes  []string
	Levels     []extract.Level
	Tables     []string
}

// Matches reports whether loc satisfies the conjunction of all provided
// filter dimensions.
func Matches(loc *extract.Location, f Filter) bool {
	if f.Text != "" {
		q := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(loc.Path()), q) &&
			!strings.Contains(strings.ToLower(loc.Code), q) {
			return false
		}
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, loc.Category) {
		return false
	}
	if len(f.CodeTypes) > 0 && !containsString(f.CodeTypes, loc.CodeType) {
		return false
	}
	if len(f.Levels) > 0 && !containsLevel(f.Levels, loc.Level) {
		return false
	}
	if len(f.Tables) > 0 && !containsString(f.Tables, loc.TableName) {
		return false
	}
	return true
}

// Apply returns the locations matching f, preserving input order.
func Apply(locs []extract.Location, f Filter) []extract.Location {
	var out []extract.Location
	for i := range locs {
		if Matches(&locs[i], f) {
			out = append(out, locs[i])
		}
	}
	return out
}

// Search returns the locations whose path or code contains query,
// case-insensitively. An empty query returns the input unchanged.
func Search(locs []extract.Location, query string) []extract.Location {
	if query == "" {
		return locs
	}
	return Apply(locs, Filter{Text: query})
}

// FuzzySearch ranks locations by fuzzy match of query against their paths
// and returns the best limit results. limit <= 0 means no limit. An empty
// query returns the input unchanged.
func FuzzySearch(locs []extract.Location, query string, limit int) []extract.Location {
	if query == "" {
		return locs
	}
	paths := make([]string, len(locs))
	for i := range locs {
		paths[i] = locs[i].Path()
	}
	ranked := fuzzy.Find(query, paths)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]extract.Location, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, locs[m.Index])
	}
	return out
}

// GroupByTable partitions locations into buckets keyed by table name.
// Node-less (database-level) locations land in the "(Database)" bucket;
// view and report locations carry their "[Views]"/"[Reports]" sentinel
// table names from extraction. Every location appears in exactly one
// bucket.
func GroupByTable(locs []extract.Location) map[string][]extract.Location {
	groups := make(map[string][]extract.Location)
	for i := range locs {
		table := locs[i].TableName
		if table == "" {
			table = DatabaseBucket
		}
		groups[table] = append(groups[table], locs[i])
	}
	return groups
}

// GroupByCategory partitions locations into buckets keyed by category.
func GroupByCategory(locs []extract.Location) map[extract.Category][]extract.Location {
	groups := make(map[extract.Category][]extract.Location)
	for i := range locs {
		groups[locs[i].Category] = append(groups[locs[i].Category], locs[i])
	}
	return groups
}

// Stats summarizes a location list.
type Stats struct {
	Total      int
	ByLevel    map[string]int
	ByCategory map[string]int
	ByType     map[string]int
	ByTable    map[string]int
	TotalLines int
}

// Statistics computes Stats in a single pass.
func Statistics(locs []extract.Location) Stats {
	s := Stats{
		Total:      len(locs),
		ByLevel:    make(map[string]int),
		ByCategory: make(map[string]int),
		ByType:     make(map[string]int),
		ByTable:    make(map[string]int),
	}
	for i := range locs {
		loc := &locs[i]
		s.ByLevel[loc.Level.String()]++
		s.ByCategory[loc.CategoryName()]++
		s.ByType[loc.CodeType]++
		table := loc.TableName
		if table == "" {
			table = DatabaseBucket
		}
		s.ByTable[table]++
		s.TotalLines += loc.LineCount
	}
	return s
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsCategory(haystack []extract.Category, needle extract.Category) bool {
	for _, c := range haystack {
		if c == needle {
			return true
		}
	}
	return false
}

func containsLevel(haystack []extract.Level, needle extract.Level) bool {
	for _, l := range haystack {
		if l == needle {
			return true
		}
	}
	return false
}
