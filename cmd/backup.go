package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FluidWallet/fluid/backup"
	"github.com/FluidWallet/fluid/configuration"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
)

const (
	backupFuncName = "backup"
	backupCmdDes   = "Export or restore the encrypted vault blob."
)

func backupSyncer() *backup.FileSyncer {
	cfg := configuration.GetConfiguration()
	return backup.NewFileSyncer(filepath.Join(cfg.NodeConfig.RootPath, cfg.VaultConfig.BackupDir))
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copies the encrypted vault blob to the backup directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		mgr := backup.NewManager(tplogcmm.WarnLevel, a.log, a.store)
		if err := mgr.Export(backupSyncer()); err != nil {
			return err
		}

		fmt.Println("Backup written; it stays encrypted under your vault password.")

		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Installs a previously exported blob as the vault.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		mgr := backup.NewManager(tplogcmm.WarnLevel, a.log, a.store)
		if err := mgr.Restore(backupSyncer()); err != nil {
			return err
		}

		fmt.Println("Backup restored; unlock with its original password.")

		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   backupFuncName,
	Short: backupCmdDes,
	Long:  backupCmdDes,
}

func BackupCmd() *cobra.Command {
	backupCmd.AddCommand(backupExportCmd, backupRestoreCmd)

	return backupCmd
}
