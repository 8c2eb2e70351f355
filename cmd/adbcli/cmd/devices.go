package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

var devicesLong bool

func init() {
	devicesCmd.Flags().BoolVarP(&devicesLong, "long", "l", false,
		"Also list device qualifiers")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(serialnoCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(emuCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices and emulators",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []string
		if devicesLong {
			opts = append(opts, "-l")
		}
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Devices(opts...)
		})
	},
}

var serialnoCmd = &cobra.Command{
	Use:   "serialno",
	Short: "Print the serial number of the target device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.GetSerialno()
		})
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the connection state of the target device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.GetState()
		})
	},
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the target device is online",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.WaitForDevice()
		})
	},
}

var emuCmd = &cobra.Command{
	Use:   "emu COMMAND [ARGS...]",
	Short: "Send a command to the emulator console",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Emu(args...)
		})
	},
}
