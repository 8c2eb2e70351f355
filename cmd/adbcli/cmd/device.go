package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

var bugreportOut string

func init() {
	bugreportCmd.Flags().StringVar(&bugreportOut, "out", "bugreport.txt",
		"File to write the bug report to")

	rootCmd.AddCommand(rebootCmd)
	rootCmd.AddCommand(adbRootCmd)
	rootCmd.AddCommand(bugreportCmd)
}

var rebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Restart the target device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Reboot()
		})
	},
}

var adbRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Restart adbd on the device with root permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(func(client *adb.Adb) (string, error) {
			return client.Root()
		})
	},
}

var bugreportCmd = &cobra.Command{
	Use:   "bugreport",
	Short: "Capture a bug report from the device into a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := createAdbClient()
		if err != nil {
			return err
		}

		if err := client.Bugreport(bugreportOut); err != nil {
			return err
		}
		log.Infof("Bug report written to %s", bugreportOut)
		return nil
	},
}
