package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

var (
	installOpts   []string
	uninstallOpts []string
)

func init() {
	installCmd.Flags().StringSliceVar(&installOpts, "opt", nil,
		`Extra adb install options, e.g. --opt "-r" to replace an existing app`)
	uninstallCmd.Flags().StringSliceVar(&uninstallOpts, "opt", nil,
		`Extra adb uninstall options, e.g. --opt "-k" to keep app data`)

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}

var installCmd = &cobra.Command{
	Use:   "install APK",
	Short: "Install an apk on the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Install(args[0], installOpts...)
		})
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall PACKAGE",
	Short: "Uninstall an app by package name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Uninstall(args[0], uninstallOpts...)
		})
	},
}
