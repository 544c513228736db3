package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/FluidWallet/fluid/cmd"
)

var mainCmd = &cobra.Command{Use: "fluid"}

func main() {
	mainCmd.AddCommand(cmd.VaultCmd(), cmd.AccountsCmd(), cmd.SecondFactorCmd(), cmd.BackupCmd())

	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}
