package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

func init() {
	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(reverseCmd)
}

var forwardCmd = &cobra.Command{
	Use:   "forward LOCAL REMOTE",
	Short: "Forward a host socket to a device socket",
	Long:  `Forwards a host socket to a device socket, e.g. "adbcli forward tcp:8000 tcp:9000". Arguments are passed to "adb forward" as-is, so listing ("--list") and removal ("--remove") work too.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Forward(args...)
		})
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse REMOTE LOCAL",
	Short: "Forward a device socket to a host socket",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Reverse(args...)
		})
	},
}
