package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FluidWallet/fluid/account"
)

const (
	vaultFuncName = "vault"
	vaultCmdDes   = "Operate the vault: init, unlock, lock, reset."
)

var vaultInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates a new vault with a first account.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("trailing args detected")
		}
		cmd.SilenceUsage = true

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		password, err := promptPassword("Choose a password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := a.svc.Setup(nil, password); err != nil {
			return err
		}

		acc, err := a.svc.CreateAccount()
		if err != nil {
			return err
		}

		fmt.Printf("Vault created.\nAddress:  %s\nRecovery phrase: %s\n", acc.Addr, acc.Mnemonic)
		fmt.Println("Write the recovery phrase down and keep it offline.")

		return nil
	},
}

var vaultUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlocks the vault and lists its accounts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.unlock(); err != nil {
			return err
		}

		accs, err := a.svc.Accounts()
		if err != nil {
			return err
		}

		printAccounts(accs, selectedIndexOf(a, accs))

		return nil
	},
}

var vaultLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Locks the vault.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.svc.Lock(); err != nil {
			return err
		}

		fmt.Printf("Vault state: %s\n", a.svc.State())

		return nil
	},
}

var vaultResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Deletes the vault and every stored credential.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.svc.Reset(); err != nil {
			return err
		}

		fmt.Printf("Vault state: %s\n", a.svc.State())

		return nil
	},
}

var vaultCmd = &cobra.Command{
	Use:   vaultFuncName,
	Short: vaultCmdDes,
	Long:  vaultCmdDes,
}

func VaultCmd() *cobra.Command {
	vaultCmd.AddCommand(vaultInitCmd, vaultUnlockCmd, vaultLockCmd, vaultResetCmd)

	return vaultCmd
}

func printAccounts(accs []account.Account, selected int) {
	for i, acc := range accs {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Printf("%s %d  %-12s %s\n", marker, i, acc.Name, acc.Addr)
	}
}

func selectedIndexOf(a *app, accs []account.Account) int {
	sel, err := a.svc.SelectedAccount()
	if err != nil {
		return -1
	}
	for i, acc := range accs {
		if acc.Addr == sel.Addr {
			return i
		}
	}
	return -1
}
