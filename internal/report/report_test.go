package report

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
)

func named(names ...string) []Projection {
	ps := make([]Projection, len(names))
	for i, n := range names {
		ps[i] = Projection{OrderID: int64(i + 1), ClientName: n, Date: "2024-01-01 10:00:00"}
	}
	return ps
}

func TestProject(t *testing.T) {
	c := client.New("Alice", "+1234567", "alice@example.com")
	require.NoError(t, c.SetID(7))
	laptop := product.New("Laptop", "", decimal.NewFromInt(75000))
	require.NoError(t, laptop.SetID(1))
	phone := product.New("Phone", "", decimal.NewFromInt(35000))
	require.NoError(t, phone.SetID(2))
	draft := product.New("Draft", "", decimal.NewFromInt(1))

	o := order.NewSpecial(c, []order.Line{
		{Product: phone, Quantity: 1},
		{Product: laptop, Quantity: 1},
		{Product: phone, Quantity: 3},
		{Product: draft, Quantity: 1},
	}, "2024-03-05 12:30:00", decimal.NewFromInt(10))
	require.NoError(t, o.SetID(3))

	ps := Project([]order.Order{o})
	require.Len(t, ps, 1)
	assert.Equal(t, Projection{
		OrderID:    3,
		ClientID:   7,
		ClientName: "Alice",
		Date:       "2024-03-05 12:30:00",
		ProductIDs: []int64{2, 1},
	}, ps[0])
}

func TestTopClients(t *testing.T) {
	ps := named("A", "B", "A", "C", "B", "B", "D")

	got := TopClients(ps, DefaultTop)
	assert.Equal(t, []ClientCount{
		{Name: "B", Orders: 3},
		{Name: "A", Orders: 2},
		{Name: "C", Orders: 1},
		{Name: "D", Orders: 1},
	}, got)

	assert.Equal(t, []ClientCount{{Name: "B", Orders: 3}, {Name: "A", Orders: 2}}, TopClients(ps, 2))
	assert.Len(t, TopClients(ps, 0), 4)
	assert.Empty(t, TopClients(nil, DefaultTop))
}

func TestTopClients_Cyrillic(t *testing.T) {
	ps := named("Алиса", "Боб", "Алиса", "Дмитрий", "Боб", "Боб", "Елена")
	got := TopClients(ps, DefaultTop)
	require.Len(t, got, 4)
	assert.Equal(t, ClientCount{Name: "Боб", Orders: 3}, got[0])
	assert.Equal(t, ClientCount{Name: "Алиса", Orders: 2}, got[1])
}

func TestOrdersPerDay(t *testing.T) {
	ps := []Projection{
		{OrderID: 1, Date: "2024-01-02 09:00:00"},
		{OrderID: 2, Date: "2024-01-01 23:59:59"},
		{OrderID: 3, Date: "2024-01-02 18:00:00"},
		{OrderID: 4, Date: "2023-12-31 00:00:00"},
	}
	got, err := OrdersPerDay(ps)
	require.NoError(t, err)

	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, []DayCount{
		{Day: day(2023, time.December, 31), Orders: 1},
		{Day: day(2024, time.January, 1), Orders: 1},
		{Day: day(2024, time.January, 2), Orders: 2},
	}, got)
}

func TestOrdersPerDay_BadDate(t *testing.T) {
	_, err := OrdersPerDay([]Projection{{OrderID: 9, Date: "yesterday"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order 9")
}

func TestClientGraph(t *testing.T) {
	ps := []Projection{
		{ClientName: "A", ProductIDs: []int64{1, 2}},
		{ClientName: "B", ProductIDs: []int64{2}},
		{ClientName: "C", ProductIDs: []int64{3}},
		{ClientName: "A", ProductIDs: []int64{1}},
		{ClientName: "D", ProductIDs: nil},
		{ClientName: "B", ProductIDs: []int64{3, 2}},
	}
	g := ClientGraph(ps)

	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Nodes)
	assert.Equal(t, []Edge{
		{From: "A", To: "A"},
		{From: "A", To: "B"},
		{From: "B", To: "B"},
		{From: "B", To: "C"},
	}, g.Edges)
}

func TestClientGraph_SingleOrderHasNoLoop(t *testing.T) {
	g := ClientGraph([]Projection{{ClientName: "A", ProductIDs: []int64{1, 1, 2}}})
	assert.Equal(t, []string{"A"}, g.Nodes)
	assert.Empty(t, g.Edges)
}

// pairwiseGraph compares every two orders directly.
func pairwiseGraph(ps []Projection) Graph {
	b := newGraphBuilder(ps)
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if slices.ContainsFunc(ps[i].ProductIDs, func(id int64) bool {
				return slices.Contains(ps[j].ProductIDs, id)
			}) {
				b.link(i, j)
			}
		}
	}
	return b.graph()
}

func TestClientGraph_MatchesPairwise(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	names := []string{"Ann", "Bob", "Cid", "Dan", "Eve", "Fay", "Gus"}

	for round := 0; round < 50; round++ {
		ps := make([]Projection, rnd.IntN(30))
		for i := range ps {
			ps[i].ClientName = names[rnd.IntN(len(names))]
			for k := rnd.IntN(4); k > 0; k-- {
				id := int64(rnd.IntN(12))
				if !slices.Contains(ps[i].ProductIDs, id) {
					ps[i].ProductIDs = append(ps[i].ProductIDs, id)
				}
			}
		}
		require.Equal(t, pairwiseGraph(ps), ClientGraph(ps), "round %d", round)
	}
}

func TestRender(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, WriteTopClients(&buf, TopClients(named("A", "B", "A"), DefaultTop)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " 1. A    2 "+strings.Repeat("#", barWidth), lines[1])
	assert.Equal(t, " 2. B    1 "+strings.Repeat("#", barWidth/2), lines[2])

	buf.Reset()
	days, err := OrdersPerDay(named("A", "B"))
	require.NoError(t, err)
	require.NoError(t, WriteTimeline(&buf, days))
	assert.Contains(t, buf.String(), "2024-01-01    2 ")

	g := Graph{Nodes: []string{"A", "B", "C"}, Edges: []Edge{{From: "A", To: "B"}}}
	buf.Reset()
	require.NoError(t, WriteGraph(&buf, g))
	assert.Contains(t, buf.String(), "  B -> A\n")
	assert.Contains(t, buf.String(), "  C -> \n")

	buf.Reset()
	require.NoError(t, WriteDOT(&buf, g))
	assert.Equal(t, "graph clients {\n"+
		"\tnode [shape=ellipse, style=filled, fillcolor=lightblue];\n"+
		"\t\"A\";\n\t\"B\";\n\t\"C\";\n"+
		"\t\"A\" -- \"B\";\n"+
		"}\n", buf.String())
}

func TestWriteDOT_Escaping(t *testing.T) {
	g := Graph{
		Nodes: []string{"Bob \"B\"\tJr", `C:\shop`, "Ёлка"},
		Edges: []Edge{{From: "Bob \"B\"\tJr", To: `C:\shop`}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, g))

	out := buf.String()
	assert.Contains(t, out, "\t\"Bob \\\"B\\\"\tJr\";\n")
	assert.Contains(t, out, "\t\"C:\\\\shop\";\n")
	assert.Contains(t, out, "\t\"Ёлка\";\n")
	assert.Contains(t, out, "\t\"Bob \\\"B\\\"\tJr\" -- \"C:\\\\shop\";\n")
	assert.NotContains(t, out, `\t`)
}
