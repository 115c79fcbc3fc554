package models

import "time"

// PathCount is one (path, request count) pair in a per-client ranking.
type PathCount struct {
	Path     string `json:"path"`
	Requests uint64 `json:"requests"`
}

// AgentCount is one (user-agent family, request count) pair.
type AgentCount struct {
	Agent    string `json:"agent"`
	Requests uint64 `json:"requests"`
}

// RankedClient is one client's entry in a top-N ranking.
type RankedClient struct {
	IP       string      `json:"ip"`
	Requests uint64      `json:"requests"`
	Percent  float64     `json:"percent"`
	TopPaths []PathCount `json:"topPaths,omitempty"`
}

// StatsSnapshot is a read-only, point-in-time view of the aggregate state.
// It is what the dashboard renders, what the ops server serves, and what the
// snapshot archive persists; it never shares mutable state with the collector.
type StatsSnapshot struct {
	GeneratedAt   time.Time      `json:"generatedAt"`
	TopN          int            `json:"topN"`
	TotalRequests uint64         `json:"totalRequests"`
	UniqueClients int            `json:"uniqueClients"`
	Clients       []RankedClient `json:"clients"`
	TopAgents     []AgentCount   `json:"topAgents,omitempty"`
}
