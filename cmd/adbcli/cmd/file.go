package cmd

import (
	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	pushOpts []string
	pullOpts []string
)

func init() {
	pushCmd.Flags().StringSliceVar(&pushOpts, "opt", nil,
		`Extra adb push options, e.g. --opt "-z"`)
	pullCmd.Flags().StringSliceVar(&pullOpts, "opt", nil,
		"Extra adb pull options")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push SRC... DEST",
	Short: "Copy files or directories to the device",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := createAdbClient()
		if err != nil {
			return err
		}

		srcs, dest := args[:len(args)-1], args[len(args)-1]

		bar := pb.StartNew(len(srcs))
		defer bar.Finish()

		for _, src := range srcs {
			out, err := client.Push([]string{src}, dest, pushOpts...)
			if err != nil {
				return err
			}
			log.Debugf("pushed %s: %s", src, out)
			bar.Increment()
		}
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull SRC... DEST",
	Short: "Copy files or directories from the device",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := createAdbClient()
		if err != nil {
			return err
		}

		srcs, dest := args[:len(args)-1], args[len(args)-1]

		bar := pb.StartNew(len(srcs))
		defer bar.Finish()

		for _, src := range srcs {
			out, err := client.Pull([]string{src}, dest, pullOpts...)
			if err != nil {
				return err
			}
			log.Debugf("pulled %s: %s", src, out)
			bar.Increment()
		}
		return nil
	},
}
