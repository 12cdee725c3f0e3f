package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/requisite/internal/config"
	"github.com/zjrosen/requisite/internal/paths"
)

// errUnresolved makes `status` exit non-zero without printing an error.
var errUnresolved = errors.New("checklist has unresolved requirements")

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "requisite",
	Short: "Evaluate and resolve setup checklists",
	Long: `requisite loads checklist manifests, evaluates each requirement against the
stored settings and capabilities, and walks you through the ones that still need
configuration.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/requisite/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (REQUISITE_LOG sets the file)")
	rootCmd.PersistentFlags().StringP("output", "o", "",
		"output format: text, table, json or markdown")
	rootCmd.PersistentFlags().Int("width", 0, "wrap width for text output")
	rootCmd.PersistentFlags().StringSlice("manifest", nil,
		"extra manifest file or directory (repeatable)")
	rootCmd.PersistentFlags().String("state-driver", "", "state store: sqlite, redis or memory")

	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.width", rootCmd.PersistentFlags().Lookup("width"))
	_ = viper.BindPFlag("manifests.paths", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("state.driver", rootCmd.PersistentFlags().Lookup("state-driver"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("manifests.builtin", defaults.Manifests.Builtin)
	viper.SetDefault("manifests.user_dir", defaults.Manifests.UserDir)
	viper.SetDefault("state.driver", defaults.State.Driver)
	viper.SetDefault("state.path", defaults.State.Path)
	viper.SetDefault("state.redis_prefix", defaults.State.RedisPrefix)
	viper.SetDefault("state.cache_ttl", defaults.State.CacheTTL)
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.markdown_style", defaults.Output.MarkdownStyle)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("flags", defaults.Flags)

	viper.SetEnvPrefix("REQUISITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .requisite/config.yaml (current directory)
		// 2. ~/.config/requisite/config.yaml (user config)
		if _, err := os.Stat(".requisite/config.yaml"); err == nil {
			viper.SetConfigFile(".requisite/config.yaml")
		} else if dir := paths.ConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
	cfg.Manifests.UserDir = paths.ExpandHome(cfg.Manifests.UserDir)
	cfg.State.Path = paths.ExpandHome(cfg.State.Path)
}

// configPath returns the config file to write to, creating the default
// location when no file was loaded.
func configPath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used, nil
		}
	}
	dir := paths.ConfigDir()
	if dir == "" {
		return "", errors.New("cannot determine config directory")
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.WriteDefaultConfig(path); err != nil {
			return "", fmt.Errorf("creating config file: %w", err)
		}
	}
	return path, nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errUnresolved) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
