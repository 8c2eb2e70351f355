package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

func init() {
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(execOutCmd)
	rootCmd.AddCommand(syncCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell CMD [ARGS...]",
	Short: "Run a command on the device and wait for it to finish",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Shell(args...)
		})
	},
}

var execOutCmd = &cobra.Command{
	Use:   "exec-out CMD [ARGS...]",
	Short: "Run a command on the device without a pty, for raw output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.ExecOut(args...)
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Flush device filesystem buffers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Sync()
		})
	},
}
