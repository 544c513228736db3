package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FluidWallet/fluid/configuration"
	"github.com/FluidWallet/fluid/secondfactor"
)

const (
	secondFactorFuncName = "2fa"
	secondFactorCmdDes   = "Configure the unlock second factor: email, totp, off."
)

var secondFactorEmailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Requires an emailed code on every unlock.",
	Args:  cobra.ExactArgs(1),
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

		err = a.svc.SetSecondFactor(secondfactor.Config{
			Kind:  secondfactor.Kind_Email,
			Email: args[0],
		})
		if err != nil {
			return err
		}

		fmt.Printf("Email verification enabled for %s\n", args[0])

		return nil
	},
}

var secondFactorTOTPCmd = &cobra.Command{
	Use:   "totp <account-name>",
	Short: "Requires an authenticator code on every unlock.",
	Args:  cobra.ExactArgs(1),
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

		cfg := configuration.GetConfiguration()

		prov, err := secondfactor.ProvisionTOTP(cfg.VaultConfig.TOTPIssuer, args[0])
		if err != nil {
			return err
		}

		qrPath := filepath.Join(cfg.NodeConfig.RootPath, "totp-qr.png")
		if err := os.WriteFile(qrPath, prov.QRPNG, 0600); err != nil {
			return err
		}

		err = a.svc.SetSecondFactor(secondfactor.Config{
			Kind:       secondfactor.Kind_TOTP,
			TOTPSecret: prov.Secret,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Scan %s with your authenticator, or enter the secret manually:\n%s\n", qrPath, prov.Secret)

		return nil
	},
}

var secondFactorOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disables the second factor.",
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

		if err := a.svc.SetSecondFactor(secondfactor.Config{Kind: secondfactor.Kind_None}); err != nil {
			return err
		}

		fmt.Println("Second factor disabled")

		return nil
	},
}

var secondFactorCmd = &cobra.Command{
	Use:   secondFactorFuncName,
	Short: secondFactorCmdDes,
	Long:  secondFactorCmdDes,
}

func SecondFactorCmd() *cobra.Command {
	secondFactorCmd.AddCommand(secondFactorEmailCmd, secondFactorTOTPCmd, secondFactorOffCmd)

	return secondFactorCmd
}
