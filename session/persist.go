package session

import (
	"strconv"
	"sync"

	"github.com/FluidWallet/fluid/account"
	"github.com/FluidWallet/fluid/codec"
	fcmm "github.com/FluidWallet/fluid/common"
	tplog "github.com/FluidWallet/fluid/log"
	"github.com/FluidWallet/fluid/storage"
	"github.com/FluidWallet/fluid/vault"
)

const persistQueueDepth = 16

// snapshot is one encrypt-and-persist request: a copy of the account
// list and the password taken at mutation time.
type snapshot struct {
	accounts []account.Account
	selected int
	password []byte

	flush chan struct{} // non-nil: barrier only, nothing to write
}

// persistQueue serializes blob rewrites. One owned goroutine drains
// snapshots in submission order, so the last completed write is always
// the latest snapshot; a failed write is logged and the next mutation
// resubmits the then-current state.
type persistQueue struct {
	log       tplog.Logger
	store     storage.Store
	marshaler codec.Marshaler
	vc        *vault.Codec

	requests chan snapshot
	done     chan struct{}

	mu     sync.RWMutex // guards closed against in-flight submits
	closed bool
}

func newPersistQueue(log tplog.Logger, store storage.Store, marshaler codec.Marshaler, vc *vault.Codec) *persistQueue {
	q := &persistQueue{
		log:       log,
		store:     store,
		marshaler: marshaler,
		vc:        vc,
		requests:  make(chan snapshot, persistQueueDepth),
		done:      make(chan struct{}),
	}

	go q.run()

	return q
}

func (q *persistQueue) run() {
	defer close(q.done)

	for snap := range q.requests {
		if snap.flush != nil {
			close(snap.flush)
			continue
		}
		q.write(snap)
	}
}

// submit blocks only when the queue is saturated, which the worker
// drains quickly. After close it wipes the snapshot and drops it.
func (q *persistQueue) submit(snap snapshot) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		fcmm.ZeroBytes(snap.password)
		return
	}

	q.requests <- snap
}

func (q *persistQueue) write(snap snapshot) {
	defer fcmm.ZeroBytes(snap.password)

	blob, err := q.vc.Encrypt(snap.accounts, string(snap.password))
	if err != nil {
		q.log.Errorf("encrypt account list failed: %v", err)
		return
	}

	blobBytes, err := q.marshaler.Marshal(&blob)
	if err != nil {
		q.log.Errorf("marshal vault blob failed: %v", err)
		return
	}

	if err := q.store.Set(storage.KeyVault, blobBytes); err != nil {
		q.log.Errorf("persist vault blob failed: %v", err)
		return
	}

	if err := q.store.Set(storage.KeySelectedIndex, []byte(strconv.Itoa(snap.selected))); err != nil {
		q.log.Errorf("persist selected index failed: %v", err)
	}
}

// barrier returns once every snapshot submitted before it has been
// written. A no-op on a closed queue.
func (q *persistQueue) barrier() {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return
	}

	ack := make(chan struct{})
	q.requests <- snapshot{flush: ack}
	q.mu.RUnlock()

	<-ack
}

// close stops the worker after draining every submitted snapshot.
func (q *persistQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.requests)
	}
	q.mu.Unlock()

	<-q.done
}
