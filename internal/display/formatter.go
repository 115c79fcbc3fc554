package display

import (
	"fmt"
	"io"
	"strings"

	"traefik-monitor/internal/models"
)

// ANSI clear-and-home; the dashboard owns the whole screen.
const clearScreen = "\x1b[2J\x1b[H"

const divider = "────────────────────────────────────────────────────────────────"

// Formatter turns a StatsSnapshot into the full-screen dashboard text. Pure
// presentation: it holds no aggregate state of its own.
type Formatter struct {
	out       io.Writer
	pathWidth int
}

// NewFormatter creates a Formatter writing to out, truncating displayed paths
// to pathWidth characters.
func NewFormatter(out io.Writer, pathWidth int) *Formatter {
	return &Formatter{out: out, pathWidth: pathWidth}
}

// Present clears the screen and writes the rendered snapshot.
func (f *Formatter) Present(snap *models.StatsSnapshot) {
	fmt.Fprint(f.out, clearScreen)
	fmt.Fprintln(f.out, f.Render(snap))
}

// Render builds the dashboard text for one snapshot.
func (f *Formatter) Render(snap *models.StatsSnapshot) string {
	var b strings.Builder

	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	fmt.Fprintf(&b, "║        Traefik Access Log Monitor - Top %2d IPs                 ║\n", snap.TopN)
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total Requests: %s | Unique IPs: %s\n",
		formatNumber(snap.TotalRequests),
		formatNumber(uint64(snap.UniqueClients)))
	fmt.Fprintf(&b, "Showing top %d IPs | Type a number and press Enter to change\n\n", snap.TopN)

	if snap.TotalRequests == 0 {
		b.WriteString("⏳ Waiting for log entries...\n")
		b.WriteString("\nMonitoring the access log for new requests.\n")
		b.WriteString("Press Ctrl+C to exit.\n")
		return b.String()
	}

	b.WriteString("Top IPs by Request Count:\n")
	b.WriteString(divider + "\n\n")

	for rank, client := range snap.Clients {
		fmt.Fprintf(&b, "%d. %s\n", rank+1, client.IP)
		fmt.Fprintf(&b, "   Requests: %s (%.1f%%)\n", formatNumber(client.Requests), client.Percent)

		if len(client.TopPaths) > 0 {
			b.WriteString("   Top Paths:\n")
			for _, path := range client.TopPaths {
				fmt.Fprintf(&b, "   • %s (%s)\n", truncate(path.Path, f.pathWidth), formatNumber(path.Requests))
			}
		}

		b.WriteString("\n")
	}

	if len(snap.TopAgents) > 0 {
		agents := make([]string, len(snap.TopAgents))
		for i, agent := range snap.TopAgents {
			agents[i] = fmt.Sprintf("%s (%s)", agent.Agent, formatNumber(agent.Requests))
		}
		fmt.Fprintf(&b, "Top Agents: %s\n\n", strings.Join(agents, " | "))
	}

	b.WriteString(divider + "\n")
	b.WriteString("Press Ctrl+C to exit.\n")

	return b.String()
}

// formatNumber renders n with thousands separators.
func formatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// truncate shortens s to max characters, replacing the tail with "..." when
// it does not fit.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
