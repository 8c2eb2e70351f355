package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

func init() {
	rootCmd.AddCommand(logcatCmd)
}

var logcatCmd = &cobra.Command{
	Use:   "logcat [ARGS...]",
	Short: "Stream device logs until interrupted",
	Long: `Streams "adb logcat" line by line. Extra arguments are passed through,
e.g. "adbcli logcat -- -s MyTag". Stop with Ctrl-C; the poll timeout from
the configuration bounds how quickly the stream reacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := clientFromConfig(cfg)
		if err != nil {
			return err
		}

		var stop atomic.Bool
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
		go func() {
			<-interrupts
			log.Debug("interrupt received, stopping logcat")
			stop.Store(true)
		}()

		return client.PollLogcat(cfg.PollTimeout(), func(ev adb.Event) bool {
			if ev.Kind == adb.EventLine {
				fmt.Println(ev.Line)
			}
			return stop.Load()
		}, args...)
	},
}
