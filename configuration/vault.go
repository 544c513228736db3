package configuration

import (
	tpcrtypes "github.com/FluidWallet/fluid/crypt/types"
	"github.com/FluidWallet/fluid/storage"
)

type VaultConfiguration struct {
	StoreBackend storage.BackendType
	StoreName    string
	CryptType    tpcrtypes.CryptType
	TOTPIssuer   string
	BackupDir    string
}

func DefVaultConfiguration() *VaultConfiguration {
	return &VaultConfiguration{
		StoreBackend: storage.BackendType_Badger,
		StoreName:    "vault",
		CryptType:    tpcrtypes.CryptType_Secp256,
		TOTPIssuer:   "Fluid",
		BackupDir:    "backup",
	}
}
