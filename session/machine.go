package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/subchen/go-trylock/v2"
	"go.uber.org/atomic"

	"github.com/FluidWallet/fluid/account"
	"github.com/FluidWallet/fluid/codec"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
	"github.com/FluidWallet/fluid/secondfactor"
	"github.com/FluidWallet/fluid/storage"
	"github.com/FluidWallet/fluid/vault"
)

const MOD_NAME = "session"

const mutateLockTimeout = 10 * time.Second

type SessionState uint32

const (
	SessionState_Unknown SessionState = iota
	SessionState_NoVault
	SessionState_Locked
	SessionState_AwaitingSecondFactor
	SessionState_Unlocked
)

func (s SessionState) String() string {
	switch s {
	case SessionState_NoVault:
		return "NoVault"
	case SessionState_Locked:
		return "Locked"
	case SessionState_AwaitingSecondFactor:
		return "AwaitingSecondFactor"
	case SessionState_Unlocked:
		return "Unlocked"
	default:
		return "Unknown"
	}
}

// Confirmer gates the destructive transitions (lock, reset). The
// terminal runner asks the user; tests answer directly.
type Confirmer interface {
	Confirm(action string) bool
}

// Machine drives the vault lifecycle:
//
//	NoVault -> Unlocked           (Setup)
//	Locked  -> Unlocked           (Unlock, no second factor)
//	Locked  -> AwaitingSecondFactor -> Unlocked (Unlock + SubmitCode)
//	Unlocked -> Locked            (Lock)
//	any     -> NoVault            (Reset)
//
// It owns the single live Session and every durable write to the vault
// blob. Mutations while Unlocked re-encrypt the whole account list and
// hand the snapshot to a single-writer persistence queue.
type Machine struct {
	log       tplog.Logger
	store     storage.Store
	marshaler codec.Marshaler
	vc        *vault.Codec
	accounts  *account.Store
	issuer    *secondfactor.EmailIssuer
	confirmer Confirmer

	mutex trylock.TryLocker
	state *atomic.Uint32

	sess     *Session
	pending  *Session
	verifier secondfactor.Verifier

	persist *persistQueue
}

func NewMachine(level tplogcmm.LogLevel, log tplog.Logger, store storage.Store, marshaler codec.Marshaler, accounts *account.Store, issuer *secondfactor.EmailIssuer, confirmer Confirmer) *Machine {
	sLog := tplog.CreateModuleLogger(level, MOD_NAME, log)
	vc := vault.NewCodec(level, log)

	// With the probe failing, Locked is the safe guess: Unlock then
	// surfaces the real storage error instead of a bogus ErrNoVault.
	initial := SessionState_NoVault
	hasVault, err := store.Has(storage.KeyVault)
	if err != nil {
		sLog.Errorf("probe vault blob failed: %v", err)
	}
	if hasVault || err != nil {
		initial = SessionState_Locked
	}

	return &Machine{
		log:       sLog,
		store:     store,
		marshaler: marshaler,
		vc:        vc,
		accounts:  accounts,
		issuer:    issuer,
		confirmer: confirmer,
		mutex:     trylock.New(),
		state:     atomic.NewUint32(uint32(initial)),
		persist:   newPersistQueue(sLog, store, marshaler, vc),
	}
}

func (m *Machine) State() SessionState {
	return SessionState(m.state.Load())
}

func (m *Machine) lockMutate() error {
	if ok := m.mutex.TryLockTimeout(mutateLockTimeout); !ok {
		err := fmt.Errorf("another vault operation is in progress")
		m.log.Errorf("%v", err)
		return err
	}
	return nil
}

// Setup completes onboarding: the initial accounts become the vault
// content, the password becomes the vault password, and the blob is
// persisted before Setup returns.
func (m *Machine) Setup(accs []account.Account, password string) error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_NoVault {
		return fmt.Errorf("vault already exists")
	}

	var list account.List
	for _, acc := range accs {
		list.Add(acc)
	}

	m.sess = newSession(password, list)

	snap := m.snapshot()
	m.persist.write(snap)

	m.state.Store(uint32(SessionState_Unlocked))
	m.log.Infof("vault created with %d account(s)", list.Len())

	return nil
}

// Unlock verifies the password by decrypting the blob. With a second
// factor configured the decrypted state is held aside and the machine
// parks in AwaitingSecondFactor; the accounts stay unexposed until
// SubmitCode succeeds.
func (m *Machine) Unlock(password string) error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	switch m.State() {
	case SessionState_NoVault:
		return ErrNoVault
	case SessionState_Unlocked:
		return nil
	case SessionState_AwaitingSecondFactor:
		return fmt.Errorf("second factor verification pending")
	}

	blobBytes, err := m.store.Get(storage.KeyVault)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return ErrNoVault
		}
		m.log.Errorf("read vault blob failed: %v", err)
		return err
	}

	var blob vault.Blob
	if err := m.marshaler.Unmarshal(blobBytes, &blob); err != nil {
		return ErrInvalidPassword
	}

	var accs []account.Account
	if err := m.vc.Decrypt(blob, password, &accs); err != nil {
		return ErrInvalidPassword
	}

	list := account.List{Accounts: accs, SelectedIndex: m.loadSelectedIndex(len(accs))}

	cfg, err := secondfactor.LoadConfig(m.store, m.marshaler)
	if err != nil {
		m.log.Errorf("load second factor config failed: %v", err)
		return err
	}

	if cfg.Kind == secondfactor.Kind_None {
		m.sess = newSession(password, list)
		m.state.Store(uint32(SessionState_Unlocked))
		m.log.Info("vault unlocked")
		return nil
	}

	m.pending = newSession(password, list)
	m.verifier = secondfactor.CreateVerifier(cfg, m.issuer)

	if cfg.Kind == secondfactor.Kind_Email {
		if err := m.issuer.Issue(cfg.Email); err != nil {
			m.log.Errorf("send verification code failed: %v", err)
		}
	}

	m.state.Store(uint32(SessionState_AwaitingSecondFactor))
	m.log.Infof("second factor required: %s", cfg.Kind)

	return nil
}

// SubmitCode completes a pending unlock. A mismatch keeps the machine
// in AwaitingSecondFactor; retries are unlimited.
func (m *Machine) SubmitCode(code string) error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_AwaitingSecondFactor {
		return fmt.Errorf("no second factor verification pending")
	}

	if m.verifier == nil || !m.verifier.Verify(code) {
		return ErrInvalidCode
	}

	m.sess = m.pending
	m.pending = nil
	m.verifier = nil

	m.state.Store(uint32(SessionState_Unlocked))
	m.log.Info("vault unlocked")

	return nil
}

// CancelSecondFactor abandons a pending unlock and discards the held
// password and accounts.
func (m *Machine) CancelSecondFactor() error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_AwaitingSecondFactor {
		return nil
	}

	m.pending.Drop()
	m.pending = nil
	m.verifier = nil

	m.state.Store(uint32(SessionState_Locked))

	return nil
}

// Lock drops the Session from memory; the persisted blob is untouched.
// Locking an already locked vault is a no-op.
func (m *Machine) Lock() error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_Unlocked {
		return nil
	}

	if !m.confirmer.Confirm("lock") {
		return nil
	}

	m.sess.Drop()
	m.sess = nil

	m.state.Store(uint32(SessionState_Locked))
	m.log.Info("vault locked")

	return nil
}

// Reset deletes the vault blob, the selected index and the second
// factor configuration, then drops any live or pending Session. All
// removal failures are aggregated and reported together.
func (m *Machine) Reset() error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if !m.confirmer.Confirm("reset") {
		return nil
	}

	m.persist.barrier()

	var merr *multierror.Error
	for _, key := range []string{storage.KeyVault, storage.KeySelectedIndex, storage.KeySecondFactorConfig} {
		if err := m.store.Remove(key); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			merr = multierror.Append(merr, err)
		}
	}

	if m.sess != nil {
		m.sess.Drop()
		m.sess = nil
	}
	if m.pending != nil {
		m.pending.Drop()
		m.pending = nil
	}
	m.verifier = nil

	m.state.Store(uint32(SessionState_NoVault))
	m.log.Info("vault reset")

	return merr.ErrorOrNil()
}

// CreateAccount generates a fresh account with a recovery phrase and
// schedules a blob rewrite.
func (m *Machine) CreateAccount() (account.Account, error) {
	return m.addAccount(func() (account.Account, error) {
		return m.accounts.Create()
	})
}

// CreateAccountFromExternalIdentity derives a deterministic account
// from a stable external identifier. No recovery phrase is produced.
func (m *Machine) CreateAccountFromExternalIdentity(id string) (account.Account, error) {
	return m.addAccount(func() (account.Account, error) {
		return m.accounts.CreateFromExternalIdentity(id)
	})
}

// ImportAccount accepts a recovery phrase or private key hex.
func (m *Machine) ImportAccount(secret string) (account.Account, error) {
	return m.addAccount(func() (account.Account, error) {
		return m.accounts.Import(secret)
	})
}

func (m *Machine) addAccount(create func() (account.Account, error)) (account.Account, error) {
	if err := m.lockMutate(); err != nil {
		return account.Account{}, err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_Unlocked {
		return account.Account{}, fmt.Errorf("vault is not unlocked")
	}

	acc, err := create()
	if err != nil {
		return account.Account{}, err
	}

	m.sess.accounts.Add(acc)
	m.persist.submit(m.snapshot())

	m.log.Infof("account added: %s", acc.Addr)

	return acc, nil
}

// SelectAccount moves the selection pointer and schedules persistence.
func (m *Machine) SelectAccount(index int) error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_Unlocked {
		return fmt.Errorf("vault is not unlocked")
	}

	if err := m.sess.accounts.Select(index); err != nil {
		return err
	}

	m.persist.submit(m.snapshot())

	return nil
}

// Accounts returns a copy of the account list. Only available while
// Unlocked.
func (m *Machine) Accounts() ([]account.Account, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.State() != SessionState_Unlocked {
		return nil, fmt.Errorf("vault is not unlocked")
	}

	accs := make([]account.Account, len(m.sess.accounts.Accounts))
	copy(accs, m.sess.accounts.Accounts)

	return accs, nil
}

func (m *Machine) SelectedAccount() (account.Account, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.State() != SessionState_Unlocked {
		return account.Account{}, fmt.Errorf("vault is not unlocked")
	}

	acc, ok := m.sess.accounts.Selected()
	if !ok {
		return account.Account{}, fmt.Errorf("vault holds no accounts")
	}

	return acc, nil
}

// SetSecondFactor replaces the second factor configuration. It takes
// effect on the next unlock.
func (m *Machine) SetSecondFactor(cfg secondfactor.Config) error {
	if err := m.lockMutate(); err != nil {
		return err
	}
	defer m.mutex.Unlock()

	if m.State() != SessionState_Unlocked {
		return fmt.Errorf("vault is not unlocked")
	}

	return secondfactor.SaveConfig(m.store, m.marshaler, cfg)
}

func (m *Machine) SecondFactor() (secondfactor.Config, error) {
	return secondfactor.LoadConfig(m.store, m.marshaler)
}

// Close drains the persistence queue and drops any live Session. The
// machine ends up Locked (or NoVault, untouched); operations needing an
// unlocked vault fail afterwards.
func (m *Machine) Close() {
	m.persist.close()

	if m.sess != nil {
		m.sess.Drop()
		m.sess = nil
	}
	if m.pending != nil {
		m.pending.Drop()
		m.pending = nil
	}
	m.verifier = nil

	switch m.State() {
	case SessionState_Unlocked, SessionState_AwaitingSecondFactor:
		m.state.Store(uint32(SessionState_Locked))
	}
}

// snapshot copies the live session state for the persistence queue.
// Caller holds the mutation lock.
func (m *Machine) snapshot() snapshot {
	accs := make([]account.Account, len(m.sess.accounts.Accounts))
	copy(accs, m.sess.accounts.Accounts)

	password := make([]byte, len(m.sess.password))
	copy(password, m.sess.password)

	return snapshot{
		accounts: accs,
		selected: m.sess.accounts.SelectedIndex,
		password: password,
	}
}

func (m *Machine) loadSelectedIndex(length int) int {
	raw, err := m.store.Get(storage.KeySelectedIndex)
	if err != nil {
		return 0
	}

	index, err := strconv.Atoi(string(raw))
	if err != nil || index < 0 || index >= length {
		return 0
	}

	return index
}
