package service

import (
	"github.com/FluidWallet/fluid/account"
	"github.com/FluidWallet/fluid/secondfactor"
	"github.com/FluidWallet/fluid/session"
)

// VaultService is the narrow surface the surrounding application
// consumes. Collaborators (balance polling, broadcasting, signing)
// only ever receive account material through it, and only while the
// vault is unlocked.
type VaultService interface {
	State() session.SessionState

	Setup(accs []account.Account, password string) error

	Unlock(password string) error

	SubmitCode(code string) error

	CancelSecondFactor() error

	Lock() error

	Reset() error

	CreateAccount() (account.Account, error)

	CreateAccountFromExternalIdentity(id string) (account.Account, error)

	ImportAccount(secret string) (account.Account, error)

	SelectAccount(index int) error

	Accounts() ([]account.Account, error)

	SelectedAccount() (account.Account, error)

	SetSecondFactor(cfg secondfactor.Config) error

	SecondFactor() (secondfactor.Config, error)
}

func NewVaultService(m *session.Machine) VaultService {
	return &vaultService{m}
}

type vaultService struct {
	*session.Machine
}
