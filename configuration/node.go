package configuration

import (
	"os"
	"path/filepath"
)

type NodeConfiguration struct {
	RootPath string
}

func DefNodeConfiguration() *NodeConfiguration {
	homeDir, _ := os.UserHomeDir()
	return &NodeConfiguration{
		RootPath: filepath.Join(homeDir, ".fluid"),
	}
}
