package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cosmic/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	Bucket     string `json:"bucket,omitempty"      yaml:"bucket,omitempty"`
	ReadKey    string `json:"read_key,omitempty"    yaml:"read_key,omitempty"`
	WriteKey   string `json:"write_key,omitempty"   yaml:"write_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty"    yaml:"base_url,omitempty"`
	WorkersURL string `json:"workers_url,omitempty" yaml:"workers_url,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Cosmic CLI configuration including the bucket and its keys",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetWriteKeyCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with keys masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().masked()

			return printResult(config, func() error {
				return renderTable([]string{"Property", "Value"}, [][]string{
					{"Bucket", orNA(config.Bucket)},
					{"Read Key", orNA(config.ReadKey)},
					{"Write Key", orNA(config.WriteKey)},
					{"Base URL", orNA(config.BaseURL)},
					{"Workers URL", orNA(config.WorkersURL)},
					{"Output", orNA(config.Output)},
				})
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Valid keys are bucket, read_key, write_key,
base_url, workers_url and output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := config.set(args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigSetWriteKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-write-key",
		Short: "Store the bucket write key",
		Long:  "Prompt for the bucket write key without echoing it and store it in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stdout.WriteString("Write Key: ")
			if err != nil {
				return fmt.Errorf("failed to write prompt: %w", err)
			}

			keyBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read write key: %w", err)
			}

			_, _ = os.Stdout.WriteString("\n")

			config := loadConfig()

			err = config.set("write_key", string(keyBytes))
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Write key saved")

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Bucket:     viper.GetString("bucket"),
		ReadKey:    viper.GetString("read_key"),
		WriteKey:   viper.GetString("write_key"),
		BaseURL:    viper.GetString("base_url"),
		WorkersURL: viper.GetString("workers_url"),
		Output:     viper.GetString("output"),
	}
}

func (c *Config) set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "bucket":
		c.Bucket = value
	case "read_key":
		c.ReadKey = value
	case "write_key":
		if value == "" {
			return constants.ErrEmptyWriteKey
		}

		c.WriteKey = value
	case "base_url":
		c.BaseURL = value
	case "workers_url":
		c.WorkersURL = value
	case "output":
		c.Output = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func (c *Config) masked() *Config {
	masked := *c

	if masked.ReadKey != "" {
		masked.ReadKey = constants.MaskedSecret
	}

	if masked.WriteKey != "" {
		masked.WriteKey = constants.MaskedSecret
	}

	return &masked
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".cosmic")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
