package leveldb

import (
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"

	tplog "github.com/FluidWallet/fluid/log"
	stcmm "github.com/FluidWallet/fluid/storage/common"
)

type LeveldbStore struct {
	log  tplog.Logger
	name string
	db   *leveldb.DB
}

func NewLeveldbStore(log tplog.Logger, name string, path string) *LeveldbStore {
	pathWithName := filepath.Join(path, name+".db")

	db, err := leveldb.OpenFile(pathWithName, nil)
	if err != nil {
		log.Panicf("can't open leveldb: path=%s, err=%v", pathWithName, err)
		return nil
	}

	return &LeveldbStore{
		log:  log,
		name: name,
		db:   db,
	}
}

func (l *LeveldbStore) Set(key string, value []byte) error {
	return l.db.Put([]byte(key), value, nil)
}

func (l *LeveldbStore) Get(key string) ([]byte, error) {
	val, err := l.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, stcmm.ErrKeyNotFound
	} else if err != nil {
		return nil, err
	}
	return val, nil
}

func (l *LeveldbStore) Has(key string) (bool, error) {
	return l.db.Has([]byte(key), nil)
}

func (l *LeveldbStore) Remove(key string) error {
	return l.db.Delete([]byte(key), nil)
}

func (l *LeveldbStore) Close() error {
	return l.db.Close()
}
