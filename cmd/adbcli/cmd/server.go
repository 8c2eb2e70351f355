package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

func init() {
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage the host adb server daemon",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the adb server daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.StartServer()
		})
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the adb server daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.KillServer()
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the adb client version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Version()
		})
	},
}
