package memdb

import (
	"sync"

	fcmm "github.com/FluidWallet/fluid/common"
	tplog "github.com/FluidWallet/fluid/log"
	stcmm "github.com/FluidWallet/fluid/storage/common"
)

// MemStore keeps everything in process memory. Used by tests and as a
// throwaway backend; it offers the same last-write-wins contract as the
// durable backends.
type MemStore struct {
	log   tplog.Logger
	mutex sync.RWMutex
	items map[string][]byte
}

func NewMemStore(log tplog.Logger) *MemStore {
	return &MemStore{
		log:   log,
		items: make(map[string][]byte),
	}
}

func (m *MemStore) Set(key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.items[key] = fcmm.BytesCopy(value)
	return nil
}

func (m *MemStore) Get(key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	val, ok := m.items[key]
	if !ok {
		return nil, stcmm.ErrKeyNotFound
	}
	return fcmm.BytesCopy(val), nil
}

func (m *MemStore) Has(key string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, ok := m.items[key]
	return ok, nil
}

func (m *MemStore) Remove(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.items, key)
	return nil
}

func (m *MemStore) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.items = make(map[string][]byte)
	return nil
}
