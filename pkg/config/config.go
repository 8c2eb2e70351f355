package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jarijaas/go-adbexec/pkg/adb"
)

// DefaultPollTimeout bounds each poll of a streaming command.
const DefaultPollTimeout = 500 * time.Millisecond

const (
	configDirName  = ".adbcli"
	configFileName = "config.yaml"
)

// Config is the on-disk configuration shared by the CLI and embedding
// programs.
type Config struct {
	// Executable overrides the adb binary to invoke.
	Executable string `yaml:"executable"`

	// Serial pins a target device for every command.
	Serial string `yaml:"serial"`

	// LogCommand and LogOutput toggle the command echo side channel.
	LogCommand bool `yaml:"log_command"`
	LogOutput  bool `yaml:"log_output"`

	// RawPollTimeout bounds each poll of a streaming command, as a
	// duration string such as "500ms".
	RawPollTimeout string `yaml:"poll_timeout"`

	// AvailabilityPatterns override the stderr substrings that mean no
	// device is reachable.
	AvailabilityPatterns []string `yaml:"availability_patterns,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Executable:     adb.DefaultExecutable,
		LogCommand:     true,
		LogOutput:      true,
		RawPollTimeout: DefaultPollTimeout.String(),
	}
}

// Load reads the YAML config at configPath. A missing file is not an error
// and yields the defaults; keys absent from the file keep their defaults.
func Load(configPath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// PollTimeout parses RawPollTimeout, falling back to the default when it is
// unset or unparseable.
func (c *Config) PollTimeout() time.Duration {
	if c.RawPollTimeout == "" {
		return DefaultPollTimeout
	}
	d, err := time.ParseDuration(c.RawPollTimeout)
	if err != nil {
		return DefaultPollTimeout
	}
	return d
}

// ClientConfig converts the file configuration into client options.
func (c *Config) ClientConfig() *adb.Config {
	return &adb.Config{
		Executable:           c.Executable,
		DisableCommandLog:    !c.LogCommand,
		DisableOutputLog:     !c.LogOutput,
		AvailabilityPatterns: c.AvailabilityPatterns,
	}
}

func GetConfigDirectoryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	return path.Join(homeDir, configDirName)
}

func GetConfigFilePath() string {
	return path.Join(GetConfigDirectoryPath(), configFileName)
}
