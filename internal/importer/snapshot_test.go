package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talotukku/edimport/internal/edi"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products", "lv.fin.json")

	loaded, err := loadSnapshotMap[*edi.Product](path)
	require.NoError(t, err)
	assert.Empty(t, loaded, "missing snapshot is an empty one")

	p, _, err := edi.DecodeProduct(productEntry("123456789", "fin", "COPPER PIPE 15MM"), nil)
	require.NoError(t, err)
	require.NoError(t, writeSnapshot(path, map[string]*edi.Product{p.Identifier: p}))

	loaded, err = loadSnapshotMap[*edi.Product](path)
	require.NoError(t, err)
	require.Contains(t, loaded, "123456789")
	assert.Equal(t, "COPPER PIPE 15MM", loaded["123456789"].Name)
	assert.Equal(t, edi.OperationAdded, loaded["123456789"].Operation)
}

func TestSnapshotCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lv.fin.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := loadSnapshotMap[*edi.Product](path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse snapshot")
}

func TestSnapshotOverlayAcrossDeliveries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	path := env.stage(t, "first.txt",
		buyerHeader(), sellerHeader(),
		productEntry("123456789", "fin", "COPPER PIPE 15MM"),
	)
	_, _, err := env.im.ImportFile(ctx, path, "first.txt")
	require.NoError(t, err)

	// A later delivery carrying only a new identifier must not drop the
	// earlier one from the snapshot.
	path = env.stage(t, "second.txt",
		buyerHeader(), sellerHeader(),
		productEntry("222222222", "fin", "COPPER PIPE 22MM"),
	)
	_, _, err = env.im.ImportFile(ctx, path, "second.txt")
	require.NoError(t, err)

	snapshot := filepath.Join(env.sellerDir(), "products", "lv.fin.json")
	loaded, err := loadSnapshotMap[*edi.Product](snapshot)
	require.NoError(t, err)
	assert.Contains(t, loaded, "123456789")
	assert.Contains(t, loaded, "222222222")
}
