package account

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"

	fcmm "github.com/FluidWallet/fluid/common"
	"github.com/FluidWallet/fluid/crypt"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
)

const MOD_NAME = "account"

const mnemonicEntropyBytes = 16 // 128 bits, 12 words

// externalIdentitySeedPrefix salts the seed derived from an external
// identifier so the same identifier on another product yields a
// different key.
const externalIdentitySeedPrefix = "FLUID_WALLET_SALT_"

var (
	ErrImport = errors.New("invalid recovery phrase or private key")

	errIndexOutOfRange = errors.New("account index out of range")
)

type Store struct {
	log tplog.Logger
	cs  crypt.CryptService
}

func NewStore(level tplogcmm.LogLevel, log tplog.Logger, cs crypt.CryptService) *Store {
	sLog := tplog.CreateModuleLogger(level, MOD_NAME, log)

	return &Store{
		log: sLog,
		cs:  cs,
	}
}

// Create generates a fresh key behind a 12-word recovery phrase.
func (s *Store) Create() (Account, error) {
	entropy := make([]byte, mnemonicEntropyBytes)
	if _, err := rand.Read(entropy); err != nil {
		return Account{}, err
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return Account{}, err
	}

	acc, err := s.fromMnemonic(mnemonic)
	if err != nil {
		return Account{}, err
	}
	return acc, nil
}

// CreateFromExternalIdentity derives a key deterministically from a
// stable external identifier (a social login subject, a passkey
// credential id). Same identifier, same account; no recovery phrase.
func (s *Store) CreateFromExternalIdentity(id string) (Account, error) {
	if id == "" {
		return Account{}, errors.New("empty external identity")
	}

	seed := sha256.Sum256([]byte(externalIdentitySeedPrefix + id))

	sec, pub, err := s.cs.GeneratePriPubKeyBySeed(seed[:])
	if err != nil {
		return Account{}, err
	}

	return s.newAccount(sec, pub, "")
}

// Import accepts either a recovery phrase (detected by whitespace) or a
// private key in hex. Anything else fails with ErrImport and no account
// is produced.
func (s *Store) Import(secret string) (Account, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return Account{}, ErrImport
	}

	if strings.Contains(secret, " ") {
		if !bip39.IsMnemonicValid(secret) {
			return Account{}, ErrImport
		}
		return s.fromMnemonic(secret)
	}

	keyHex := secret
	if fcmm.Has0xPrefix(keyHex) {
		keyHex = keyHex[2:]
	}
	if !fcmm.IsHex(keyHex) {
		return Account{}, ErrImport
	}

	sec, err := hex.DecodeString(keyHex)
	if err != nil {
		return Account{}, ErrImport
	}

	pub, err := s.cs.ConvertToPublic(sec)
	if err != nil {
		return Account{}, ErrImport
	}

	return s.newAccount(sec, pub, "")
}

func (s *Store) fromMnemonic(mnemonic string) (Account, error) {
	seed := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), 4096, 32, sha256.New)

	sec, pub, err := s.cs.GeneratePriPubKeyBySeed(seed)
	if err != nil {
		return Account{}, err
	}

	return s.newAccount(sec, pub, mnemonic)
}

func (s *Store) newAccount(sec, pub []byte, mnemonic string) (Account, error) {
	addr, err := s.cs.CreateAddress(pub)
	if err != nil {
		return Account{}, fmt.Errorf("create address err: %w", err)
	}

	return Account{
		Addr:     addr,
		PrivKey:  hex.EncodeToString(sec),
		Mnemonic: mnemonic,
	}, nil
}
