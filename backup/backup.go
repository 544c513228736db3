package backup

import (
	"errors"
	"fmt"

	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
	"github.com/FluidWallet/fluid/storage"
)

const MOD_NAME = "backup"

// BlobName is the artifact name used for the vault blob on every
// syncer.
const BlobName = "vault.dat"

// Syncer moves an opaque named artifact to and from a backup location.
// Only ciphertext ever crosses this boundary; the blob is already
// password-protected and the syncer never sees a key.
type Syncer interface {
	Push(name string, content []byte) error

	Pull(name string) ([]byte, error)
}

type Manager struct {
	log   tplog.Logger
	store storage.Store
}

func NewManager(level tplogcmm.LogLevel, log tplog.Logger, store storage.Store) *Manager {
	bLog := tplog.CreateModuleLogger(level, MOD_NAME, log)
	return &Manager{
		log:   bLog,
		store: store,
	}
}

// Export pushes the persisted vault blob through the syncer.
func (m *Manager) Export(syncer Syncer) error {
	blobBytes, err := m.store.Get(storage.KeyVault)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return fmt.Errorf("no vault to export")
		}
		return err
	}

	if err := syncer.Push(BlobName, blobBytes); err != nil {
		m.log.Errorf("push vault backup failed: %v", err)
		return err
	}

	m.log.Info("vault backup exported")

	return nil
}

// Restore pulls a previously exported blob and installs it as the
// persisted vault. The caller still needs the original password to
// unlock it.
func (m *Manager) Restore(syncer Syncer) error {
	blobBytes, err := syncer.Pull(BlobName)
	if err != nil {
		m.log.Errorf("pull vault backup failed: %v", err)
		return err
	}

	if err := m.store.Set(storage.KeyVault, blobBytes); err != nil {
		return err
	}

	m.log.Info("vault backup restored")

	return nil
}
