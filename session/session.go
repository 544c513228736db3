package session

import (
	"github.com/FluidWallet/fluid/account"
	fcmm "github.com/FluidWallet/fluid/common"
)

// Session holds the unlocked-only state: the vault password and the
// decrypted account list. At most one Session exists at a time; it is
// owned by the machine and dropped on every transition out of Unlocked.
type Session struct {
	password []byte
	accounts account.List
}

func newSession(password string, accounts account.List) *Session {
	return &Session{
		password: []byte(password),
		accounts: accounts,
	}
}

func (s *Session) Password() string {
	return string(s.password)
}

// Drop wipes the password bytes and releases the accounts. The Session
// must not be used afterwards.
func (s *Session) Drop() {
	fcmm.ZeroBytes(s.password)
	s.password = nil
	s.accounts = account.List{}
}
