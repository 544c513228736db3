package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tpcrtypes "github.com/FluidWallet/fluid/crypt/types"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
)

func testLogger() tplog.Logger {
	testLog, _ := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	return testLog
}

func TestSecp256Addr(t *testing.T) {
	cryptService := CreateCryptService(testLogger(), tpcrtypes.CryptType_Secp256)

	_, pubKey, err := cryptService.GeneratePriPubKey()
	assert.Equal(t, nil, err)

	addr, err := cryptService.CreateAddress(pubKey)
	assert.Equal(t, nil, err)

	t.Log(addr)

	cType, err := addr.CryptType()
	assert.Equal(t, nil, err)
	assert.Equal(t, tpcrtypes.CryptType_Secp256, cType)

	payload, err := addr.Payload()
	assert.Equal(t, nil, err)
	assert.Equal(t, tpcrtypes.AddressLen_Secp256, len(payload))
}

func TestEd25519Addr(t *testing.T) {
	cryptService := CreateCryptService(testLogger(), tpcrtypes.CryptType_Ed25519)

	sec, pub, err := cryptService.GeneratePriPubKey()
	assert.Equal(t, nil, err)

	pubConv, err := cryptService.ConvertToPublic(sec)
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte(pub), []byte(pubConv))

	addr, err := cryptService.CreateAddress(pub)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, addr.IsValid())

	cType, err := addr.CryptType()
	assert.Equal(t, nil, err)
	assert.Equal(t, tpcrtypes.CryptType_Ed25519, cType)
}

func TestAddrDeterministicBySeed(t *testing.T) {
	cryptService := CreateCryptService(testLogger(), tpcrtypes.CryptType_Ed25519)

	seed := make([]byte, 32)
	copy(seed, "a stable external identity seed!")

	_, pub1, err := cryptService.GeneratePriPubKeyBySeed(seed)
	assert.Equal(t, nil, err)
	_, pub2, err := cryptService.GeneratePriPubKeyBySeed(seed)
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte(pub1), []byte(pub2))

	addr1, err := cryptService.CreateAddress(pub1)
	assert.Equal(t, nil, err)
	addr2, err := cryptService.CreateAddress(pub2)
	assert.Equal(t, nil, err)
	assert.Equal(t, addr1, addr2)
}

func TestSignVerify(t *testing.T) {
	for _, ct := range []tpcrtypes.CryptType{tpcrtypes.CryptType_Ed25519, tpcrtypes.CryptType_Secp256} {
		cryptService := CreateCryptService(testLogger(), ct)

		sec, pub, err := cryptService.GeneratePriPubKey()
		assert.Equal(t, nil, err)

		sig, err := cryptService.Sign(sec, []byte("msg to sign"))
		assert.Equal(t, nil, err)

		ok, err := cryptService.Verify(pub, []byte("msg to sign"), sig)
		assert.Equal(t, nil, err)
		assert.Equal(t, true, ok)

		ok, _ = cryptService.Verify(pub, []byte("another msg"), sig)
		assert.Equal(t, false, ok)
	}
}
