package loader

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/artie-labs/synapse-writer/clients/synapse/dialect"
	"github.com/artie-labs/synapse-writer/lib/abslib"
	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/destination"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
	"github.com/artie-labs/synapse-writer/lib/sql"
	"github.com/artie-labs/synapse-writer/lib/staging"
	"github.com/artie-labs/synapse-writer/lib/telemetry/metrics"
)

type row map[string]string

type memoryTable struct {
	columns []string
	rows    []row
}

// memoryWarehouse is a [destination.Writer] that applies loads to in-memory tables.
type memoryWarehouse struct {
	tables map[string]*memoryTable
	// extract holds the CSV records the next bulk import reads, in header order.
	extract [][]string

	failSwap  bool
	failMerge bool

	calls       []string
	copyQueries []string
}

var _ destination.Writer = (*memoryWarehouse)(nil)

func newMemoryWarehouse() *memoryWarehouse {
	return &memoryWarehouse{tables: map[string]*memoryTable{}}
}

func (m *memoryWarehouse) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *memoryWarehouse) Dialect() sql.Dialect {
	return dialect.SynapseDialect{}
}

func (m *memoryWarehouse) IdentifierFor(table string) sql.TableIdentifier {
	return dialect.NewTableIdentifier("dbo", table)
}

func (m *memoryWarehouse) Create(_ context.Context, tableID sql.TableIdentifier, columns []config.Column, _ []string) error {
	m.record("create %s", tableID.Table())
	if _, ok := m.tables[tableID.Table()]; ok {
		return loaderr.NewWarehouseExecutionError("CREATE TABLE", fmt.Errorf("there is already an object named %q", tableID.Table()))
	}

	var names []string
	for _, column := range columns {
		if !column.IsIgnored() {
			names = append(names, column.DBName)
		}
	}
	m.tables[tableID.Table()] = &memoryTable{columns: names}
	return nil
}

func (m *memoryWarehouse) CreateIfNotExists(ctx context.Context, tableID sql.TableIdentifier, columns []config.Column, primaryKeys []string) (bool, error) {
	if _, ok := m.tables[tableID.Table()]; ok {
		return false, nil
	}
	return true, m.Create(ctx, tableID, columns, primaryKeys)
}

func (m *memoryWarehouse) Drop(_ context.Context, tableID sql.TableIdentifier) error {
	m.record("drop %s", tableID.Table())
	delete(m.tables, tableID.Table())
	return nil
}

func (m *memoryWarehouse) LoadFromStaging(ctx context.Context, tableID sql.TableIdentifier, adapter staging.Adapter, columns []staging.ImportColumn) error {
	query, err := adapter.GenerateImportToStageSQL(ctx, tableID.FullyQualifiedName(), columns)
	if err != nil {
		return err
	}
	m.record("copy %s", tableID.Table())
	m.copyQueries = append(m.copyQueries, query)

	table, ok := m.tables[tableID.Table()]
	if !ok {
		return loaderr.NewWarehouseExecutionError(query, fmt.Errorf("invalid object name %q", tableID.Table()))
	}

	for _, record := range m.extract {
		r := row{}
		for _, column := range columns {
			r[strings.Trim(column.EscapedName, `"`)] = record[column.FieldNumber-1]
		}
		table.rows = append(table.rows, r)
	}
	return nil
}

func matches(a, b row, primaryKeys []string) bool {
	for _, key := range primaryKeys {
		// NULL never equals anything.
		if a[key] == "" || b[key] == "" || a[key] != b[key] {
			return false
		}
	}
	return true
}

func (m *memoryWarehouse) Upsert(_ context.Context, target, stagingTableID sql.TableIdentifier, columns []string, primaryKeys []string) error {
	m.record("upsert %s", target.Table())
	if m.failMerge {
		return loaderr.NewWarehouseExecutionError("UPDATE", fmt.Errorf("deadlock"))
	}

	dest := m.tables[target.Table()]
	stage := m.tables[stagingTableID.Table()]

	var remaining []row
	for _, stagedRow := range stage.rows {
		var updated bool
		if len(primaryKeys) > 0 {
			for _, destRow := range dest.rows {
				if matches(destRow, stagedRow, primaryKeys) {
					for _, column := range columns {
						destRow[column] = stagedRow[column]
					}
					updated = true
				}
			}
		}
		if !updated {
			remaining = append(remaining, stagedRow)
		}
	}

	dest.rows = append(dest.rows, remaining...)
	delete(m.tables, stagingTableID.Table())
	return nil
}

func (m *memoryWarehouse) Swap(_ context.Context, target, stagingTableID, swapTableID sql.TableIdentifier) error {
	m.record("swap %s via %s", target.Table(), swapTableID.Table())
	if m.failSwap {
		return loaderr.NewWarehouseExecutionError("RENAME OBJECT", fmt.Errorf("lock request time out period exceeded"))
	}

	delete(m.tables, swapTableID.Table())
	m.tables[swapTableID.Table()] = m.tables[target.Table()]
	m.tables[target.Table()] = m.tables[stagingTableID.Table()]
	m.tables[stagingTableID.Table()] = m.tables[swapTableID.Table()]
	delete(m.tables, swapTableID.Table())
	return nil
}

func (m *memoryWarehouse) TestConnection(_ context.Context) error {
	return nil
}

func (m *memoryWarehouse) CurrentUser(_ context.Context) (string, error) {
	return "loader", nil
}

func (m *memoryWarehouse) Close() error {
	return nil
}

func (m *memoryWarehouse) rows(table string) []row {
	t, ok := m.tables[table]
	if !ok {
		return nil
	}

	rows := slices.Clone(t.rows)
	slices.SortFunc(rows, func(a, b row) int {
		return strings.Compare(a["id"], b["id"])
	})
	return rows
}

type memoryBlobStore struct {
	blobs map[string]string
}

// recordingMetrics keeps the counters, everything else is discarded.
type recordingMetrics struct {
	metrics.NullMetricsProvider
	counts map[string]int64
}

func (r *recordingMetrics) Count(name string, value int64, _ map[string]string) {
	if r.counts == nil {
		r.counts = map[string]int64{}
	}
	r.counts[name] += value
}

func (b memoryBlobStore) CheckBlob(_ context.Context, container, path string) error {
	if _, ok := b.blobs[container+"/"+path]; !ok {
		return fmt.Errorf("blob %q in container %q is not available: BlobNotFound (HTTP 404)", path, container)
	}
	return nil
}

func (b memoryBlobStore) GetBlob(_ context.Context, container, path string) (io.ReadCloser, error) {
	content, ok := b.blobs[container+"/"+path]
	if !ok {
		return nil, fmt.Errorf("failed to download blob %q from container %q: BlobNotFound (HTTP 404)", path, container)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (b memoryBlobStore) newBlobStore(_ abslib.ConnectionString) (abslib.BlobStore, error) {
	return b, nil
}
