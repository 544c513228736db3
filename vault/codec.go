package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/FluidWallet/fluid/codec"
	fcmm "github.com/FluidWallet/fluid/common"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
)

const MOD_NAME = "vault"

// ErrVault is the single failure for any decryption problem. Wrong
// password and tampered ciphertext are indistinguishable on purpose:
// telling them apart would hand an oracle to whoever holds the blob.
var ErrVault = errors.New("invalid password or corrupted vault")

// Blob is the persisted ciphertext artifact. Salt and IV are fresh on
// every encryption and the blob carries no version or format tag.
type Blob struct {
	Cipher []byte `json:"cipher"`
	Salt   []byte `json:"salt"`
	IV     []byte `json:"iv"`
}

type Codec struct {
	log       tplog.Logger
	marshaler codec.Marshaler
}

func NewCodec(level tplogcmm.LogLevel, log tplog.Logger) *Codec {
	vLog := tplog.CreateModuleLogger(level, MOD_NAME, log)

	return &Codec{
		log:       vLog,
		marshaler: codec.CreateMarshaler(codec.CodecType_JSON),
	}
}

// Encrypt serializes payload and seals it under a key derived from
// password. The caller persists the returned blob.
func (c *Codec) Encrypt(payload interface{}, password string) (Blob, error) {
	plaintext, err := c.marshaler.Marshal(payload)
	if err != nil {
		return Blob{}, fmt.Errorf("marshal vault payload err: %w", err)
	}
	defer fcmm.ZeroBytes(plaintext)

	salt := make([]byte, SaltBytes)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return Blob{}, fmt.Errorf("generate salt err: %w", err)
	}
	iv := make([]byte, IVBytes)
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return Blob{}, fmt.Errorf("generate iv err: %w", err)
	}

	key := DeriveKey(password, salt)
	defer fcmm.ZeroBytes(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return Blob{}, err
	}

	return Blob{
		Cipher: aesGCM.Seal(nil, iv, plaintext, nil),
		Salt:   salt,
		IV:     iv,
	}, nil
}

// Decrypt derives the key from the blob's salt and the supplied
// password, opens the ciphertext and deserializes into out. Every
// failure collapses to ErrVault with no detail about which check broke.
func (c *Codec) Decrypt(blob Blob, password string, out interface{}) error {
	if len(blob.Salt) != SaltBytes || len(blob.IV) != IVBytes || len(blob.Cipher) == 0 {
		return ErrVault
	}

	key := DeriveKey(password, blob.Salt)
	defer fcmm.ZeroBytes(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return ErrVault
	}

	plaintext, err := aesGCM.Open(nil, blob.IV, blob.Cipher, nil)
	if err != nil {
		return ErrVault
	}
	defer fcmm.ZeroBytes(plaintext)

	if err = c.marshaler.Unmarshal(plaintext, out); err != nil {
		return ErrVault
	}

	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher err: %w", err)
	}
	return cipher.NewGCM(block)
}
