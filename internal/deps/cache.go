package deps

import "sync"

// Cache holds one built Graph per team, published atomically: readers
// either see the previous fully-built graph or the new one, never a
// half-written map. Concurrent rebuilds for the same team race harmlessly;
// recomputation is idempotent and last writer wins.
//
// Invalidation is explicit, called by the host after a resync of that
// team. There is no time-based expiry: staleness on a timer would silently
// hide newly introduced cross-database references.
type Cache struct {
	mu     sync.RWMutex
	graphs map[string]*Graph
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{graphs: make(map[string]*Graph)}
}

// Graph returns the cached graph for team, if present.
func (c *Cache) Graph(team string) (*Graph, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.graphs[team]
	return g, ok
}

// Put publishes a fully-built graph for team.
func (c *Cache) Put(team string, g *Graph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.graphs[team] = g
}

// Invalidate drops the cached graph for team. Call after any resync of
// that team.
func (c *Cache) Invalidate(team string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.graphs, team)
}

// DependsOn returns the transitive forward closure for (team, database),
// or nil when no graph is cached for the team.
func (c *Cache) DependsOn(team, databaseID string) []string {
	g, ok := c.Graph(team)
	if !ok {
		return nil
	}
	return g.DependsOn(databaseID)
}

// Dependents returns the transitive reverse closure for (team, database),
// or nil when no graph is cached for the team.
func (c *Cache) Dependents(team, databaseID string) []string {
	g, ok := c.Graph(team)
	if !ok {
		return nil
	}
	return g.Dependents(databaseID)
}
