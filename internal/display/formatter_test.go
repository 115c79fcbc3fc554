package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"traefik-monitor/internal/models"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "123", formatNumber(123))
	assert.Equal(t, "1,234", formatNumber(1234))
	assert.Equal(t, "12,345", formatNumber(12345))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/api/users", truncate("/api/users", 20))

	long := "/very/long/path/that/exceeds/the-budget" // 39 chars
	got := truncate(long, 20)
	assert.Equal(t, long[:17]+"...", got)
	assert.Len(t, got, 20)

	exact := strings.Repeat("a", 20)
	assert.Equal(t, exact, truncate(exact, 20))
}

func TestRender_EmptySnapshot(t *testing.T) {
	t.Parallel()

	formatter := NewFormatter(&bytes.Buffer{}, 55)
	output := formatter.Render(&models.StatsSnapshot{TopN: 10})

	assert.Contains(t, output, "Waiting for log entries")
	assert.Contains(t, output, "Total Requests: 0")
	assert.Contains(t, output, "Top 10 IPs")
}

func TestRender_RankedClients(t *testing.T) {
	t.Parallel()

	snap := &models.StatsSnapshot{
		GeneratedAt:   time.Now().UTC(),
		TopN:          5,
		TotalRequests: 1500,
		UniqueClients: 2,
		Clients: []models.RankedClient{
			{
				IP:       "192.168.1.1",
				Requests: 1125,
				Percent:  75.0,
				TopPaths: []models.PathCount{{Path: "/api/users", Requests: 1000}},
			},
			{
				IP:       "192.168.1.2",
				Requests: 375,
				Percent:  25.0,
			},
		},
		TopAgents: []models.AgentCount{{Agent: "Chrome", Requests: 1200}},
	}

	formatter := NewFormatter(&bytes.Buffer{}, 55)
	output := formatter.Render(snap)

	assert.Contains(t, output, "Total Requests: 1,500 | Unique IPs: 2")
	assert.Contains(t, output, "1. 192.168.1.1")
	assert.Contains(t, output, "Requests: 1,125 (75.0%)")
	assert.Contains(t, output, "• /api/users (1,000)")
	assert.Contains(t, output, "2. 192.168.1.2")
	assert.Contains(t, output, "Requests: 375 (25.0%)")
	assert.Contains(t, output, "Top Agents: Chrome (1,200)")
}

func TestPresent_ClearsScreenFirst(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	formatter := NewFormatter(&buf, 55)
	formatter.Present(&models.StatsSnapshot{TopN: 10})

	assert.True(t, strings.HasPrefix(buf.String(), clearScreen))
	assert.Contains(t, buf.String(), "Waiting for log entries")
}
