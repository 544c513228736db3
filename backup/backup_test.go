package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
	"github.com/FluidWallet/fluid/storage"
)

func testManager(t *testing.T) (*Manager, storage.Store) {
	log, err := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	require.NoError(t, err)

	store := storage.NewStore(storage.BackendType_Memdb, log, "", "")
	return NewManager(tplogcmm.NoLevel, log, store), store
}

func TestExportRestoreRoundTrip(t *testing.T) {
	mgr, store := testManager(t)
	syncer := NewFileSyncer(t.TempDir())

	blob := []byte(`{"cipher":"3q2+7w==","salt":"AAAA","iv":"BBBB"}`)
	require.NoError(t, store.Set(storage.KeyVault, blob))

	require.NoError(t, mgr.Export(syncer))

	require.NoError(t, store.Remove(storage.KeyVault))

	require.NoError(t, mgr.Restore(syncer))
	restored, err := store.Get(storage.KeyVault)
	require.NoError(t, err)
	assert.Equal(t, blob, restored)
}

func TestExportNoVault(t *testing.T) {
	mgr, _ := testManager(t)
	syncer := NewFileSyncer(t.TempDir())

	assert.Error(t, mgr.Export(syncer))
}

func TestRestoreMissingBackup(t *testing.T) {
	mgr, _ := testManager(t)
	syncer := NewFileSyncer(t.TempDir())

	assert.Error(t, mgr.Restore(syncer))
}
