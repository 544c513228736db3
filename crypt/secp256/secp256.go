package secp256

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"

	fcmm "github.com/FluidWallet/fluid/common"
	tpcrtypes "github.com/FluidWallet/fluid/crypt/types"
	tplog "github.com/FluidWallet/fluid/log"
)

const (
	PublicKeyBytes      = 33 //33 bytes, compressed form
	PrivateKeyBytes     = 32 //32 bytes
	SeedBytes           = 32 //32 bytes
	maxLoopCreateSeckey = 3
)

type CryptServiceSecp256 struct {
	log tplog.Logger
}

func New(log tplog.Logger) *CryptServiceSecp256 {
	return &CryptServiceSecp256{log}
}

func (c *CryptServiceSecp256) CryptType() tpcrtypes.CryptType {
	return tpcrtypes.CryptType_Secp256
}

func (c *CryptServiceSecp256) GeneratePriPubKey() (tpcrtypes.PrivateKey, tpcrtypes.PublicKey, error) {
	priKey, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, nil, err
	}

	return priKey.Serialize(), priKey.PubKey().SerializeCompressed(), nil
}

func (c *CryptServiceSecp256) GeneratePriPubKeyBySeed(seed []byte) (tpcrtypes.PrivateKey, tpcrtypes.PublicKey, error) {
	if len(seed) != SeedBytes {
		return nil, nil, errors.New("seed length incorrect")
	}

	seckey := sha256.Sum256(seed)
	for i := 0; i < maxLoopCreateSeckey; i++ {
		if seckeyValid(seckey[:]) {
			break
		}
		seckey = sha256.Sum256(seckey[:])
	}
	if !seckeyValid(seckey[:]) {
		return nil, nil, errors.New("can't derive a valid seckey from seed")
	}

	priKey, pubKey := btcec.PrivKeyFromBytes(btcec.S256(), seckey[:])

	return priKey.Serialize(), pubKey.SerializeCompressed(), nil
}

func (c *CryptServiceSecp256) ConvertToPublic(priKey tpcrtypes.PrivateKey) (tpcrtypes.PublicKey, error) {
	if len(priKey) != PrivateKeyBytes {
		return nil, errors.New("secp256 ConvertToPublic input seckey incorrect")
	}

	_, pubKey := btcec.PrivKeyFromBytes(btcec.S256(), priKey)

	return pubKey.SerializeCompressed(), nil
}

func (c *CryptServiceSecp256) Sign(priKey tpcrtypes.PrivateKey, msg []byte) (tpcrtypes.Signature, error) {
	if len(priKey) != PrivateKeyBytes || len(msg) == 0 {
		return nil, errors.New("input invalid argument")
	}

	sk, _ := btcec.PrivKeyFromBytes(btcec.S256(), priKey)
	digest := sha256.Sum256(msg)

	sig, err := sk.Sign(digest[:])
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

func (c *CryptServiceSecp256) Verify(pubKey tpcrtypes.PublicKey, msg []byte, signData tpcrtypes.Signature) (bool, error) {
	if len(pubKey) != PublicKeyBytes || len(msg) == 0 || len(signData) == 0 {
		return false, errors.New("input invalid argument")
	}

	pk, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return false, err
	}
	sig, err := btcec.ParseDERSignature(signData, btcec.S256())
	if err != nil {
		return false, err
	}

	digest := sha256.Sum256(msg)

	return sig.Verify(digest[:], pk), nil
}

func (c *CryptServiceSecp256) CreateAddress(pubKey tpcrtypes.PublicKey) (tpcrtypes.Address, error) {
	addressHash := fcmm.NewBlake2bHasher(tpcrtypes.AddressLen_Secp256).Compute(string(pubKey))
	if len(addressHash) != tpcrtypes.AddressLen_Secp256 {
		return tpcrtypes.UndefAddress, fmt.Errorf("invalid addressHash: len %d, expected %d", len(addressHash), tpcrtypes.AddressLen_Secp256)
	}
	return tpcrtypes.NewAddress(tpcrtypes.CryptType_Secp256, addressHash)
}

func seckeyValid(seckey []byte) bool {
	sk, _ := btcec.PrivKeyFromBytes(btcec.S256(), seckey)
	if sk.D.Sign() == 0 {
		return false
	}
	return sk.D.Cmp(btcec.S256().N) < 0
}
