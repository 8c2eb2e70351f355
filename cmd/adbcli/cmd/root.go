package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jarijaas/go-adbexec/pkg/adb"
	"github.com/jarijaas/go-adbexec/pkg/config"
)

var (
	cfgFile string
	adbPath string
	serial  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "adbcli",
	Short: "Command line wrapper around the Android Debug Bridge",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file, defaults to ~/.adbcli/config.yaml")
	rootCmd.PersistentFlags().StringVar(&adbPath, "adb", "",
		"Path to the adb executable")
	rootCmd.PersistentFlags().StringVarP(&serial, "serial", "s", "",
		"Target device serial. Alternatively, set env var ANDROID_SERIAL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug messages")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.GetConfigFilePath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Check env variables and flags, they override the file.
	if adbPath != "" {
		cfg.Executable = adbPath
	}
	if serial == "" {
		serial = os.Getenv("ANDROID_SERIAL")
	}
	if serial != "" {
		cfg.Serial = serial
	}
	return cfg, nil
}

func clientFromConfig(cfg *config.Config) (*adb.Adb, error) {
	client, err := adb.CreateClient(cfg.ClientConfig())
	if err != nil {
		return nil, err
	}

	if cfg.Serial != "" {
		if err := client.Connect(cfg.Serial); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func createAdbClient() (*adb.Adb, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return clientFromConfig(cfg)
}

// runSimple executes one client call and prints its output.
func runSimple(call func(client *adb.Adb) (string, error)) error {
	client, err := createAdbClient()
	if err != nil {
		return err
	}

	out, err := call(client)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}
