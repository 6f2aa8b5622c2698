package deps

import (
	"reflect"
	"sync"
	"testing"

	"github.com/nxlens/nxlens/internal/schema"
)

// ---------------------------------------------------------------------------
// Helper: databases with raw trees carrying references
// ---------------------------------------------------------------------------

// refDB builds a database whose raw tree references the given targets.
func refDB(id string, targets ...string) *schema.Database {
	fields := make(map[string]any)
	for i, target := range targets {
		fields[string(rune('a'+i))] = map[string]any{
			"base": "ref",
			"dbId": target,
		}
	}
	return &schema.Database{
		ID: id,
		RawFiles: map[string]any{
			"database.yaml": map[string]any{
				"schema": map[string]any{
					"types": map[string]any{
						"T": map[string]any{"fields": fields},
					},
				},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// 1. DirectRefs
// ---------------------------------------------------------------------------

func TestDirectRefs(t *testing.T) {
	db := refDB("a", "b", "c", "b") // duplicate target
	got := DirectRefs(db)
	if !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("DirectRefs = %v, want [b c]", got)
	}
}

func TestDirectRefsExcludesSelf(t *testing.T) {
	db := refDB("a", "a", "b")
	got := DirectRefs(db)
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("DirectRefs = %v, want [b]", got)
	}
}

func TestDirectRefsIgnoresNonStringValues(t *testing.T) {
	db := &schema.Database{
		ID: "a",
		RawFiles: map[string]any{
			"f.yaml": map[string]any{
				"dbId": 42, // wrong type, skipped
				"nested": []any{
					map[string]any{"dbId": "b"},
					map[string]any{"dbId": ""},
				},
			},
		},
	}
	got := DirectRefs(db)
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("DirectRefs = %v, want [b]", got)
	}
}

func TestDirectRefsEmpty(t *testing.T) {
	db := &schema.Database{ID: "a", RawFiles: map[string]any{}}
	if got := DirectRefs(db); len(got) != 0 {
		t.Errorf("DirectRefs = %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// 2. Graph closures
// ---------------------------------------------------------------------------

func TestChainClosure(t *testing.T) {
	g := Build([]*schema.Database{
		refDB("a", "b"),
		refDB("b", "c"),
		refDB("c"),
	})

	if got := g.Direct("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Direct(a) = %v, want [b]", got)
	}
	if got := g.DependsOn("a"); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("DependsOn(a) = %v, want [b c]", got)
	}
	if got := g.DependsOn("c"); len(got) != 0 {
		t.Errorf("DependsOn(c) = %v, want empty", got)
	}
	if got := g.Dependents("c"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Dependents(c) = %v, want [a b]", got)
	}
}

func TestCycleTerminates(t *testing.T) {
	g := Build([]*schema.Database{
		refDB("a", "b"),
		refDB("b", "a"),
	})

	// The closure is finite and never contains the start itself.
	if got := g.DependsOn("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("DependsOn(a) = %v, want [b]", got)
	}
	if got := g.Dependents("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Dependents(a) = %v, want [b]", got)
	}
}

func TestSelfLoopNeverEmitted(t *testing.T) {
	g := Build([]*schema.Database{refDB("a", "a")})
	if edges := g.Edges(); len(edges) != 0 {
		t.Errorf("edges = %v, want none", edges)
	}
}

func TestEdgesSorted(t *testing.T) {
	g := Build([]*schema.Database{
		refDB("b", "z", "a"),
		refDB("a", "x"),
	})
	want := []Edge{
		{Source: "a", Target: "x"},
		{Source: "b", Target: "a"},
		{Source: "b", Target: "z"},
	}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
}

func TestDiamondClosure(t *testing.T) {
	// a -> b, a -> c, b -> d, c -> d: d must appear once.
	g := Build([]*schema.Database{
		refDB("a", "b", "c"),
		refDB("b", "d"),
		refDB("c", "d"),
	})
	if got := g.DependsOn("a"); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Errorf("DependsOn(a) = %v, want [b c d]", got)
	}
	if got := g.Dependents("d"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Dependents(d) = %v, want [a b c]", got)
	}
}

func TestUnknownID(t *testing.T) {
	g := Build([]*schema.Database{refDB("a", "b")})
	if got := g.DependsOn("nope"); len(got) != 0 {
		t.Errorf("DependsOn(nope) = %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// 3. Cache
// ---------------------------------------------------------------------------

func TestCachePutGetInvalidate(t *testing.T) {
	c := NewCache()
	if _, ok := c.Graph("team1"); ok {
		t.Error("empty cache returned a graph")
	}

	g := Build([]*schema.Database{refDB("a", "b")})
	c.Put("team1", g)

	got, ok := c.Graph("team1")
	if !ok || got != g {
		t.Error("cached graph not returned")
	}
	if deps := c.DependsOn("team1", "a"); !reflect.DeepEqual(deps, []string{"b"}) {
		t.Errorf("DependsOn = %v, want [b]", deps)
	}

	c.Invalidate("team1")
	if _, ok := c.Graph("team1"); ok {
		t.Error("graph survived invalidation")
	}
	if deps := c.DependsOn("team1", "a"); deps != nil {
		t.Errorf("DependsOn after invalidate = %v, want nil", deps)
	}
}

func TestCacheTeamsIndependent(t *testing.T) {
	c := NewCache()
	c.Put("t1", Build([]*schema.Database{refDB("a", "b")}))
	c.Put("t2", Build([]*schema.Database{refDB("a", "c")}))

	c.Invalidate("t1")
	if _, ok := c.Graph("t2"); !ok {
		t.Error("invalidating t1 dropped t2")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()
	g := Build([]*schema.Database{refDB("a", "b")})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Put("team", g)
				c.Graph("team")
				c.DependsOn("team", "a")
				c.Invalidate("team")
			}
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------
// 4. Scan depth
// ---------------------------------------------------------------------------

func TestScanDepthCap(t *testing.T) {
	// A reference buried below MaxScanDepth levels is ignored.
	var deep any = map[string]any{"dbId": "hidden"}
	for range MaxScanDepth + 2 {
		deep = map[string]any{"wrap": deep}
	}
	db := &schema.Database{ID: "a", RawFiles: map[string]any{"f.yaml": deep}}
	if got := DirectRefs(db); len(got) != 0 {
		t.Errorf("DirectRefs = %v, want empty past depth cap", got)
	}

	// A shallow reference is found.
	db2 := refDB("a", "b")
	if got := DirectRefs(db2); len(got) != 1 {
		t.Errorf("shallow DirectRefs = %v, want [b]", got)
	}
}
