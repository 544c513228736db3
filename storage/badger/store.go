package badger

import (
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	lru "github.com/hashicorp/golang-lru"

	fcmm "github.com/FluidWallet/fluid/common"
	tplog "github.com/FluidWallet/fluid/log"
	stcmm "github.com/FluidWallet/fluid/storage/common"
)

type BadgerStore struct {
	log   tplog.Logger
	name  string
	cache *lru.ARCCache
	db    *badger.DB
}

func NewBadgerStore(log tplog.Logger, name string, path string, cacheSize int) *BadgerStore {
	pathWithName := filepath.Join(path, name+".db")
	if err := os.MkdirAll(pathWithName, 0755); err != nil {
		log.Panicf("can't create the path %s: %v", pathWithName, err)
		return nil
	}

	opts := badger.DefaultOptions(pathWithName)
	opts.SyncWrites = false
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		log.Panicf("can't open badger: path=%s, err=%v", pathWithName, err)
		return nil
	}

	cache, _ := lru.NewARC(cacheSize)
	return &BadgerStore{
		log:   log,
		name:  name,
		cache: cache,
		db:    db,
	}
}

func (b *BadgerStore) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return err
	}

	b.cache.Add(key, fcmm.BytesCopy(value))
	return nil
}

func (b *BadgerStore) Get(key string) ([]byte, error) {
	if cached, ok := b.cache.Get(key); ok {
		return fcmm.BytesCopy(cached.([]byte)), nil
	}

	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return stcmm.ErrKeyNotFound
		} else if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	b.cache.Add(key, fcmm.BytesCopy(val))
	return val, nil
}

func (b *BadgerStore) Has(key string) (bool, error) {
	if b.cache.Contains(key) {
		return true, nil
	}

	_, err := b.Get(key)
	if err == stcmm.ErrKeyNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (b *BadgerStore) Remove(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return err
	}

	b.cache.Remove(key)
	return nil
}

func (b *BadgerStore) Close() error {
	b.cache.Purge()
	return b.db.Close()
}
