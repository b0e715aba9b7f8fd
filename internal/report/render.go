package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const barWidth = 40

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	barColor    = color.New(color.FgGreen)
	nodeColor   = color.New(color.FgYellow)
)

// WriteTopClients renders the ranking as a table with bars scaled to the
// leading client.
func WriteTopClients(w io.Writer, counts []ClientCount) error {
	if _, err := headerColor.Fprintln(w, "Top clients by orders"); err != nil {
		return err
	}
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "  no orders")
		return err
	}

	width, peak := 0, 0
	for _, c := range counts {
		width = max(width, len([]rune(c.Name)))
		peak = max(peak, c.Orders)
	}
	for i, c := range counts {
		pad := strings.Repeat(" ", width-len([]rune(c.Name)))
		if _, err := fmt.Fprintf(w, "%2d. %s%s %4d ", i+1, c.Name, pad, c.Orders); err != nil {
			return err
		}
		if _, err := barColor.Fprintln(w, bar(c.Orders, peak)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTimeline renders orders per day, one line per day.
func WriteTimeline(w io.Writer, days []DayCount) error {
	if _, err := headerColor.Fprintln(w, "Orders per day"); err != nil {
		return err
	}
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, "  no orders")
		return err
	}

	peak := 0
	for _, d := range days {
		peak = max(peak, d.Orders)
	}
	for _, d := range days {
		if _, err := fmt.Fprintf(w, "%s %4d ", d.Day.Format("2006-01-02"), d.Orders); err != nil {
			return err
		}
		if _, err := barColor.Fprintln(w, bar(d.Orders, peak)); err != nil {
			return err
		}
	}
	return nil
}

// WriteGraph renders the graph as an adjacency list.
func WriteGraph(w io.Writer, g Graph) error {
	if _, err := headerColor.Fprintf(w, "Client graph: %d clients, %d links\n", len(g.Nodes), len(g.Edges)); err != nil {
		return err
	}
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		if e.From != e.To {
			adj[e.To] = append(adj[e.To], e.From)
		}
	}
	for _, n := range g.Nodes {
		if _, err := nodeColor.Fprintf(w, "  %s", n); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " -> %s\n", strings.Join(adj[n], ", ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteDOT renders the graph in Graphviz DOT.
func WriteDOT(w io.Writer, g Graph) error {
	var sb strings.Builder
	sb.WriteString("graph clients {\n")
	sb.WriteString("\tnode [shape=ellipse, style=filled, fillcolor=lightblue];\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "\t%s;\n", dotID(n))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "\t%s -- %s;\n", dotID(e.From), dotID(e.To))
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotID quotes s as a DOT string; only quotes and backslashes are escaped.
func dotID(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func bar(n, peak int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	return strings.Repeat("#", max(1, n*barWidth/peak))
}
