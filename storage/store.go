package storage

import (
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
	"github.com/FluidWallet/fluid/storage/badger"
	stcmm "github.com/FluidWallet/fluid/storage/common"
	"github.com/FluidWallet/fluid/storage/leveldb"
	"github.com/FluidWallet/fluid/storage/memdb"
)

type BackendType int

const (
	BackendType_Unknown BackendType = iota
	BackendType_Badger
	BackendType_Leveldb
	BackendType_Memdb
)

const (
	DefaultCacheSize = 1024
)

// Well-known keys the vault session persists under.
const (
	KeyVault              = "vault"
	KeySelectedIndex      = "selectedIndex"
	KeySecondFactorConfig = "secondFactorConfig"
)

var ErrKeyNotFound = stcmm.ErrKeyNotFound

// Store is the durable key-value collaborator: string keys, opaque
// values, last write wins, read-your-writes within the process.
type Store interface {
	Set(key string, value []byte) error

	// Get returns ErrKeyNotFound for absent keys.
	Get(key string) ([]byte, error)

	Has(key string) (bool, error)

	Remove(key string) error

	Close() error
}

func NewStore(backendType BackendType, log tplog.Logger, path string, name string) Store {
	sLog := tplog.CreateModuleLogger(tplogcmm.InfoLevel, "storage", log)

	switch backendType {
	case BackendType_Badger:
		return badger.NewBadgerStore(sLog, name, path, DefaultCacheSize)
	case BackendType_Leveldb:
		return leveldb.NewLeveldbStore(sLog, name, path)
	case BackendType_Memdb:
		return memdb.NewMemStore(sLog)
	default:
		sLog.Panicf("invalid storage backend type %d", backendType)
	}

	return nil
}
