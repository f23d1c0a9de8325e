package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artie-labs/synapse-writer/lib/config"
	"github.com/artie-labs/synapse-writer/lib/loaderr"
)

const absManifest = `{
  "id": "in.c-main.orders",
  "columns": ["id", "name", "date"],
  "abs": {
    "is_sliced": true,
    "region": "westeurope",
    "container": "exp-2-export-test",
    "name": "orders.csv.gzmanifest",
    "credentials": {
      "sas_connection_string": "BlobEndpoint=https://acc.blob.core.windows.net;SharedAccessSignature=sv=2017-11-09&sig=abc",
      "expiration": "2030-01-01T00:00:00+0000"
    }
  }
}`

func TestPath(t *testing.T) {
	assert.Equal(t, "/data/in/tables/in.c-main.orders.csv.manifest", Path("/data", "in.c-main.orders"))
}

func TestParse(t *testing.T) {
	{
		m, err := Parse([]byte(absManifest))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "date"}, m.Columns)
		assert.False(t, m.HasS3())
		require.NotNil(t, m.ABS)
		assert.True(t, m.ABS.IsSliced)
		assert.Equal(t, "exp-2-export-test", m.ABS.Container)
		assert.Equal(t, "orders.csv.gzmanifest", m.ABS.Name)
		assert.Equal(t, "2030-01-01T00:00:00+0000", m.ABS.Credentials.Expiration)
		assert.Contains(t, m.ABS.Credentials.SASConnectionString, "SharedAccessSignature=")
	}
	{
		m, err := Parse([]byte(`{"columns": ["id"], "s3": {"bucket": "b", "key": "k"}}`))
		require.NoError(t, err)
		assert.True(t, m.HasS3())
		assert.Nil(t, m.ABS)
	}
	{
		m, err := Parse([]byte(`{"columns": ["id"], "s3": null}`))
		require.NoError(t, err)
		assert.False(t, m.HasS3())
	}
	{
		_, err := Parse([]byte(`{"columns": `))
		assert.True(t, loaderr.IsConfigurationError(err))
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	{
		// Missing manifest
		_, err := Read(dir, "in.c-main.orders")
		assert.True(t, loaderr.IsConfigurationError(err))
		assert.ErrorContains(t, err, `manifest for table "in.c-main.orders" was not found`)
	}
	{
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "in", "tables"), 0o755))
		require.NoError(t, os.WriteFile(Path(dir, "in.c-main.orders"), []byte(absManifest), 0o644))

		m, err := Read(dir, "in.c-main.orders")
		require.NoError(t, err)
		assert.Equal(t, "in.c-main.orders", m.ID)
	}
}

func names(columns []config.Column) []string {
	var out []string
	for _, column := range columns {
		out = append(out, column.Name)
	}
	return out
}

func TestReconcile(t *testing.T) {
	id := config.Column{Name: "id", DBName: "id", Type: "int"}
	name := config.Column{Name: "name", DBName: "name", Type: "nvarchar", Size: "255"}
	date := config.Column{Name: "date", DBName: "created_at", Type: "datetime2"}
	secret := config.Column{Name: "secret", DBName: "secret", Type: "IGNORE"}

	{
		// Follows the header, not the configured order
		reconciled := Reconcile([]string{"id", "name", "date"}, []config.Column{date, id, name})
		assert.Equal(t, []string{"id", "name", "date"}, names(reconciled))
		assert.Equal(t, 1, reconciled[0].Position)
		assert.Equal(t, 2, reconciled[1].Position)
		assert.Equal(t, 3, reconciled[2].Position)
	}
	{
		// Every permutation of the configured items gives the same output
		header := []string{"date", "id", "name"}
		expected := Reconcile(header, []config.Column{id, name, date})
		for _, items := range [][]config.Column{
			{name, id, date},
			{date, name, id},
			{id, date, name},
		} {
			assert.Equal(t, expected, Reconcile(header, items))
		}
	}
	{
		// Items absent from the header are dropped, not appended
		reconciled := Reconcile([]string{"id", "date"}, []config.Column{id, name, date})
		assert.Equal(t, []string{"id", "date"}, names(reconciled))
		assert.Equal(t, 2, reconciled[1].Position)
	}
	{
		// Ignored columns are dropped but keep their slot in the header
		reconciled := Reconcile([]string{"id", "secret", "name"}, []config.Column{id, secret, name})
		assert.Equal(t, []string{"id", "name"}, names(reconciled))
		assert.Equal(t, 1, reconciled[0].Position)
		assert.Equal(t, 3, reconciled[1].Position)
	}
	{
		// Header columns without a configured item are skipped
		reconciled := Reconcile([]string{"extra", "id"}, []config.Column{id})
		assert.Equal(t, []string{"id"}, names(reconciled))
		assert.Equal(t, 2, reconciled[0].Position)
	}
	{
		// No overlap
		assert.Empty(t, Reconcile([]string{"a", "b"}, []config.Column{id, name}))
		assert.Empty(t, Reconcile(nil, []config.Column{id}))
		assert.Empty(t, Reconcile([]string{"id"}, nil))
	}
	{
		// The input slice is not mutated
		items := []config.Column{id}
		_ = Reconcile([]string{"x", "id"}, items)
		assert.Equal(t, 0, items[0].Position)
	}
}
