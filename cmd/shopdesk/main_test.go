package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/shopdesk/internal/domain/client"
)

type noopTelemetry struct{}

func (noopTelemetry) TracerProvider() trace.TracerProvider { return tracenoop.NewTracerProvider() }
func (noopTelemetry) MeterProvider() metric.MeterProvider  { return metricnoop.NewMeterProvider() }

// run executes one command line against db and returns its output.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	c := &cli{lg: zaptest.NewLogger(t), m: noopTelemetry{}}
	root := c.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", db}, args...))
	defer c.close()

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := run(t, db, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_Workflow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "shop.db")

	out := mustRun(t, db, "client", "add", "--name", "Ivan", "--phone", "+1234567890", "--email", "ivan@example.com")
	assert.Equal(t, "Added Client(id=1, name=Ivan)\n", out)
	mustRun(t, db, "client", "add", "--name", "Anna", "--phone", "1234567", "--email", "anna@example.org")

	out = mustRun(t, db, "client", "list")
	assert.Contains(t, out, "Client(id=2, name=Anna) phone=1234567 email=anna@example.org")

	out = mustRun(t, db, "product", "list")
	assert.Contains(t, out, "Product(id=1, name=Laptop")
	assert.Contains(t, out, "Product(id=2, name=Smartphone")

	out = mustRun(t, db, "order", "create", "--client", "1", "--item", "1", "--item", "2:2",
		"--discount", "10", "--date", "2024-01-01 10:00:00")
	assert.Contains(t, out, "SpecialOrder(id=1, client=Ivan, date=2024-01-01 10:00:00")
	assert.Contains(t, out, "Order for client Ivan costs 130500.00")

	mustRun(t, db, "order", "create", "--client", "2", "--item", "2", "--date", "2024-01-03 09:30:00")
	mustRun(t, db, "order", "create", "--client", "1", "--item", "1", "--date", "2024-01-03 18:00:00")

	out = mustRun(t, db, "order", "list")
	assert.Contains(t, out, "Order(id=2, client=Anna, date=2024-01-03 09:30:00, total_cost=35000")

	out = mustRun(t, db, "report", "top-clients")
	assert.Contains(t, out, " 1. Ivan    2 ")
	assert.Contains(t, out, " 2. Anna    1 ")

	out = mustRun(t, db, "report", "timeline")
	assert.Contains(t, out, "2024-01-01    1 ")
	assert.Contains(t, out, "2024-01-03    2 ")

	out = mustRun(t, db, "report", "graph", "--dot")
	assert.Contains(t, out, "\t\"Ivan\" -- \"Ivan\";\n")
	assert.Contains(t, out, "\t\"Ivan\" -- \"Anna\";\n")
}

func TestCLI_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "shop.db")

	_, err := run(t, db, "client", "add", "--name", "Petr", "--phone", "12345", "--email", "petr@example.com")
	var invalid *client.InvalidContactError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, invalid.Phone)

	_, err = run(t, db, "order", "create", "--client", "1", "--item", "x:1")
	require.Error(t, err)

	_, err = run(t, db, "order", "create", "--client", "1")
	require.Error(t, err, "an order needs items")

	_, err = run(t, db, "export", filepath.Join(t.TempDir(), "clients.xml"))
	require.Error(t, err)
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	dump := filepath.Join(dir, "clients.json.gz")

	mustRun(t, src, "client", "add", "--name", "Ivan", "--phone", "+1234567890", "--email", "ivan@example.com")
	_, err := run(t, src, "client", "add", "--name", "Petr", "--phone", "12345", "--email", "petr")
	require.Error(t, err)

	out := mustRun(t, dst, "import", "--skip-invalid", filepath.Join("testdata", "clients.csv"))
	assert.Equal(t, "Imported 1 clients, skipped 1\n  record 2: name is empty\n", out)

	out = mustRun(t, src, "export", dump)
	assert.Equal(t, "Exported 1 clients to "+dump+"\n", out)

	out = mustRun(t, dst, "import", "--skip-existing", dump)
	assert.Equal(t, "Imported 0 clients, skipped 1\n  record 1: email already stored\n", out)
}
