// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/swift-csv/internal/config"
	"fjacquet/swift-csv/internal/container"
	"fjacquet/swift-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Format     string
	Direction  string
	BICFile    string
	ConfigFile string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "swift-csv",
		Short: "A CLI tool to extract SWIFT MT202, MT103 and MT910 messages from PDF exports.",
		Long: `swift-csv reads PDF exports of SWIFT messages, splits them into individual
MT202, MT202.COV, MT103 and MT910 messages and writes one normalized record per
message as CSV, JSON or YAML. Ordering institution codes are resolved to bank
names and countries through a BIC spreadsheet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	// SharedFlags holds the values of the persistent flags.
	SharedFlags = CommonFlags{}

	// ContainerOptions are passed to every container built by the root command.
	ContainerOptions []container.Option

	mu           sync.RWMutex
	appContainer *container.Container
	initOnce     sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file or directory")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (stdout when empty)")
		flags.StringVar(&SharedFlags.Format, "format", "", "Output format: csv, json or yaml")
		flags.StringVar(&SharedFlags.Direction, "direction", "", "Message direction: incoming or outgoing")
		flags.StringVar(&SharedFlags.BICFile, "bic-file", "", "BIC spreadsheet (xlsx) used to resolve institution codes")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default is $HOME/.swift-csv/config.yaml)")
	})
}

// ApplyFlags overrides cfg with every flag that was given a value.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Format != "" {
		cfg.Output.Format = flags.Format
	}
	if flags.Direction != "" {
		cfg.Extraction.Direction = flags.Direction
	}
	if flags.BICFile != "" {
		cfg.BIC.File = flags.BICFile
	}
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv(logging.NewLogrusAdapter("info", "text"))

	cfg, err := config.InitializeConfigWithFile(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ApplyFlags(cfg, SharedFlags)

	c, err := container.NewContainer(cfg, ContainerOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	c := GetContainer()
	if c == nil {
		return nil
	}
	return c.Close()
}

// SetContainer installs the container used by subcommands.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
}

// GetContainer returns the container built for the running command, or nil
// before the root command has run its setup.
func GetContainer() *container.Container {
	mu.RLock()
	defer mu.RUnlock()
	return appContainer
}

// GetLogger returns the container's logger, or a default logger when no
// container is installed.
func GetLogger() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}

// RequireContainer is GetContainer with an error when setup did not run.
func RequireContainer() (*container.Container, error) {
	c := GetContainer()
	if c == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return c, nil
}
