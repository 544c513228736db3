package account

import (
	"fmt"

	tpcrtypes "github.com/FluidWallet/fluid/crypt/types"
)

// Account carries one credential. Addr is always the deterministic
// derivation of PrivKey and is never stored independently of it.
// Accounts are replaced wholesale, never mutated in place.
type Account struct {
	Name     string            `json:"name"`
	Addr     tpcrtypes.Address `json:"address"`
	PrivKey  string            `json:"privateKey"` // canonical hex
	Mnemonic string            `json:"mnemonic,omitempty"`
}

// List is an ordered account collection; insertion order is creation
// order. SelectedIndex is meaningless while the list is empty.
type List struct {
	Accounts      []Account `json:"accounts"`
	SelectedIndex int       `json:"selectedIndex"`
}

func defaultName(n int) string {
	return fmt.Sprintf("Account %d", n)
}

func (l *List) Len() int {
	return len(l.Accounts)
}

// Add appends acc and selects it. An empty name defaults to
// "Account N" where N is the new length. Names are display only and
// carry no uniqueness: the address is the identity key.
func (l *List) Add(acc Account) {
	if acc.Name == "" {
		acc.Name = defaultName(len(l.Accounts) + 1)
	}
	l.Accounts = append(l.Accounts, acc)
	l.SelectedIndex = len(l.Accounts) - 1
}

// Select moves the selection pointer. Out-of-range indexes leave the
// list untouched.
func (l *List) Select(index int) error {
	if index < 0 || index >= len(l.Accounts) {
		return errIndexOutOfRange
	}
	l.SelectedIndex = index
	return nil
}

func (l *List) Selected() (Account, bool) {
	if len(l.Accounts) == 0 {
		return Account{}, false
	}
	return l.Accounts[l.SelectedIndex], true
}
