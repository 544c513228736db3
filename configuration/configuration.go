package configuration

import (
	"sync"
)

var config *Configuration
var once sync.Once

type Configuration struct {
	NodeConfig  *NodeConfiguration
	VaultConfig *VaultConfiguration
}

func GetConfiguration() *Configuration {
	once.Do(func() {
		config = &Configuration{
			NodeConfig:  DefNodeConfiguration(),
			VaultConfig: DefVaultConfiguration(),
		}
	})

	return config
}
