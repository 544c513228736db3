package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FluidWallet/fluid/crypt"
	tpcrtypes "github.com/FluidWallet/fluid/crypt/types"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
)

func testStore(t *testing.T) *Store {
	testLog, err := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	assert.Equal(t, nil, err)

	cs := crypt.CreateCryptService(testLog, tpcrtypes.CryptType_Ed25519)
	return NewStore(tplogcmm.NoLevel, testLog, cs)
}

func TestCreate(t *testing.T) {
	s := testStore(t)

	acc, err := s.Create()
	assert.Equal(t, nil, err)
	assert.Equal(t, true, acc.Addr.IsValid())
	assert.NotEqual(t, "", acc.PrivKey)
	assert.Equal(t, 12, len(strings.Fields(acc.Mnemonic)))
}

func TestCreateFromExternalIdentity(t *testing.T) {
	s := testStore(t)

	acc1, err := s.CreateFromExternalIdentity("user-42")
	assert.Equal(t, nil, err)
	assert.Equal(t, "", acc1.Mnemonic)

	acc2, err := s.CreateFromExternalIdentity("user-42")
	assert.Equal(t, nil, err)
	assert.Equal(t, acc1.Addr, acc2.Addr)

	acc3, err := s.CreateFromExternalIdentity("user-43")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, acc1.Addr, acc3.Addr)

	_, err = s.CreateFromExternalIdentity("")
	assert.NotEqual(t, nil, err)
}

func TestImportMnemonic(t *testing.T) {
	s := testStore(t)

	acc, err := s.Create()
	assert.Equal(t, nil, err)

	imported, err := s.Import(acc.Mnemonic)
	assert.Equal(t, nil, err)
	assert.Equal(t, acc.Addr, imported.Addr)
	assert.Equal(t, acc.PrivKey, imported.PrivKey)
}

func TestImportPrivKeyHex(t *testing.T) {
	s := testStore(t)

	acc, err := s.Create()
	assert.Equal(t, nil, err)

	imported, err := s.Import(acc.PrivKey)
	assert.Equal(t, nil, err)
	assert.Equal(t, acc.Addr, imported.Addr)
	assert.Equal(t, "", imported.Mnemonic)

	imported, err = s.Import("0x" + acc.PrivKey)
	assert.Equal(t, nil, err)
	assert.Equal(t, acc.Addr, imported.Addr)

	imported, err = s.Import("0X" + strings.ToUpper(acc.PrivKey))
	assert.Equal(t, nil, err)
	assert.Equal(t, acc.Addr, imported.Addr)
}

func TestImportInvalid(t *testing.T) {
	s := testStore(t)

	acc, err := s.Create()
	assert.Equal(t, nil, err)

	// corrupt one word of an otherwise valid phrase
	words := strings.Fields(acc.Mnemonic)
	words[3] = "notaword"
	_, err = s.Import(strings.Join(words, " "))
	assert.Equal(t, ErrImport, err)

	_, err = s.Import("zznothex")
	assert.Equal(t, ErrImport, err)

	_, err = s.Import("")
	assert.Equal(t, ErrImport, err)

	_, err = s.Import("abcd") // valid hex, wrong key length
	assert.Equal(t, ErrImport, err)

	_, err = s.Import("abc") // odd-length hex
	assert.Equal(t, ErrImport, err)

	_, err = s.Import("0x") // prefix with nothing behind it
	assert.Equal(t, ErrImport, err)
}

func TestListAddSelect(t *testing.T) {
	s := testStore(t)

	var l List

	_, ok := l.Selected()
	assert.Equal(t, false, ok)

	acc1, err := s.Create()
	assert.Equal(t, nil, err)
	l.Add(acc1)
	assert.Equal(t, "Account 1", l.Accounts[0].Name)
	assert.Equal(t, 0, l.SelectedIndex)

	acc2, err := s.Create()
	assert.Equal(t, nil, err)
	l.Add(acc2)
	assert.Equal(t, "Account 2", l.Accounts[1].Name)
	assert.Equal(t, 1, l.SelectedIndex)

	err = l.Select(0)
	assert.Equal(t, nil, err)
	sel, ok := l.Selected()
	assert.Equal(t, true, ok)
	assert.Equal(t, acc1.Addr, sel.Addr)

	err = l.Select(2)
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, l.SelectedIndex)

	err = l.Select(-1)
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, l.SelectedIndex)
}
