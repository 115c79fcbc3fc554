package stats

import (
	"sort"
	"time"

	"github.com/mileusna/useragent"

	"traefik-monitor/internal/models"
)

// clientEntry holds the running counters for one client IP. Entries are never
// evicted: unbounded cardinality is an accepted simplification of this tool.
type clientEntry struct {
	requests uint64
	paths    map[string]uint64
}

// Collector accumulates per-client request statistics one record at a time
// and answers ranked top-N queries without rescanning history. It is owned
// exclusively by the poll loop and needs no locking; concurrent readers get
// immutable snapshots instead (see Snapshot).
//
// Invariant: TotalRequests always equals the sum of per-client request counts.
type Collector struct {
	clients       map[string]*clientEntry
	agents        map[string]uint64
	totalRequests uint64
}

func NewCollector() *Collector {
	return &Collector{
		clients: make(map[string]*clientEntry),
		agents:  make(map[string]uint64),
	}
}

// Ingest adds one decoded record to the statistics. Records without a usable
// client identifier are dropped; the return value reports whether the record
// was counted. Ingest never fails.
func (c *Collector) Ingest(entry *models.AccessEntry) bool {
	ip, ok := entry.ClientIP()
	if !ok {
		return false
	}

	client := c.clients[ip]
	if client == nil {
		client = &clientEntry{paths: make(map[string]uint64)}
		c.clients[ip] = client
	}

	client.requests++
	client.paths[entry.Path()]++
	c.totalRequests++

	if agent := entry.Agent(); agent != "" {
		c.agents[normalizeAgent(agent)]++
	}

	return true
}

// TotalRequests returns the number of records counted so far.
func (c *Collector) TotalRequests() uint64 {
	return c.totalRequests
}

// UniqueClients returns the number of distinct client identifiers seen.
func (c *Collector) UniqueClients() int {
	return len(c.clients)
}

// TopClients returns up to n clients sorted by request count descending,
// each with its share of total traffic as a percentage (0 when nothing has
// been counted). Equal counts are ordered by IP ascending so rankings are
// deterministic across runs.
func (c *Collector) TopClients(n int) []models.RankedClient {
	ranked := make([]models.RankedClient, 0, len(c.clients))
	for ip, client := range c.clients {
		percent := 0.0
		if c.totalRequests > 0 {
			percent = float64(client.requests) / float64(c.totalRequests) * 100.0
		}
		ranked = append(ranked, models.RankedClient{
			IP:       ip,
			Requests: client.requests,
			Percent:  percent,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Requests != ranked[j].Requests {
			return ranked[i].Requests > ranked[j].Requests
		}
		return ranked[i].IP < ranked[j].IP
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopPaths returns up to n of ip's most requested paths, count descending
// with path ascending as tie-break. Returns nil for an unknown ip.
func (c *Collector) TopPaths(ip string, n int) []models.PathCount {
	client := c.clients[ip]
	if client == nil {
		return nil
	}

	ranked := rankCounts(client.paths, n)
	paths := make([]models.PathCount, len(ranked))
	for i, r := range ranked {
		paths[i] = models.PathCount{Path: r.key, Requests: r.count}
	}
	return paths
}

// TopAgents returns up to n user-agent families by request count.
func (c *Collector) TopAgents(n int) []models.AgentCount {
	ranked := rankCounts(c.agents, n)
	agents := make([]models.AgentCount, len(ranked))
	for i, r := range ranked {
		agents[i] = models.AgentCount{Agent: r.key, Requests: r.count}
	}
	return agents
}

// Snapshot builds an immutable point-in-time view for rendering and export.
// The snapshot shares no state with the collector, so it may cross goroutine
// boundaries freely while ingestion continues.
func (c *Collector) Snapshot(topN, pathsPerClient, topAgents int) *models.StatsSnapshot {
	clients := c.TopClients(topN)
	for i := range clients {
		clients[i].TopPaths = c.TopPaths(clients[i].IP, pathsPerClient)
	}

	return &models.StatsSnapshot{
		GeneratedAt:   time.Now().UTC(),
		TopN:          topN,
		TotalRequests: c.totalRequests,
		UniqueClients: len(c.clients),
		Clients:       clients,
		TopAgents:     c.TopAgents(topAgents),
	}
}

type rankedCount struct {
	key   string
	count uint64
}

// rankCounts sorts a counter map descending by count (key ascending on ties)
// and keeps the first n entries.
func rankCounts(counts map[string]uint64, n int) []rankedCount {
	ranked := make([]rankedCount, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, rankedCount{key: key, count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].key < ranked[j].key
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// normalizeAgent reduces a raw User-Agent header to its browser family, or
// the raw string when parsing yields nothing.
func normalizeAgent(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
