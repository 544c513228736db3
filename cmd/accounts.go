package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const (
	accountsFuncName = "accounts"
	accountsCmdDes   = "Manage vault accounts: list, create, import, select."
)

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the vault's accounts.",
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

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generates a fresh account with a recovery phrase.",
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

		acc, err := a.svc.CreateAccount()
		if err != nil {
			return err
		}

		fmt.Printf("Address:  %s\nRecovery phrase: %s\n", acc.Addr, acc.Mnemonic)

		return nil
	},
}

var accountsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Imports a recovery phrase or private key.",
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

		secret, err := promptPassword("Recovery phrase or private key: ")
		if err != nil {
			return err
		}

		acc, err := a.svc.ImportAccount(secret)
		if err != nil {
			return err
		}

		fmt.Printf("Address:  %s\n", acc.Addr)

		return nil
	},
}

var accountsSelectCmd = &cobra.Command{
	Use:   "select <index>",
	Short: "Selects the account at the given index.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %s", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.unlock(); err != nil {
			return err
		}

		if err := a.svc.SelectAccount(index); err != nil {
			return err
		}

		sel, err := a.svc.SelectedAccount()
		if err != nil {
			return err
		}

		fmt.Printf("Selected: %s\n", sel.Addr)

		return nil
	},
}

var accountsCmd = &cobra.Command{
	Use:   accountsFuncName,
	Short: accountsCmdDes,
	Long:  accountsCmdDes,
}

func AccountsCmd() *cobra.Command {
	accountsCmd.AddCommand(accountsListCmd, accountsCreateCmd, accountsImportCmd, accountsSelectCmd)

	return accountsCmd
}
