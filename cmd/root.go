package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/praetorian-inc/netdump/internal/logs"
	"github.com/praetorian-inc/netdump/internal/message"
	outputproviders "github.com/praetorian-inc/netdump/internal/output_providers"
	gcperrors "github.com/praetorian-inc/netdump/pkg/gcp/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes
const (
	ExitOutputWrite = 1
	ExitFatal       = 99
)

const envPrefix = "NETDUMP"

// NewRootCommand builds the command tree. Every flag is bound to v, so it can
// also be set from the config file or a NETDUMP_* environment variable.
func NewRootCommand(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "netdump",
		Short:         "netdump dumps the private network topology of cloud projects.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			if err := initOutput(v); err != nil {
				return err
			}
			message.Banner()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.netdump.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only print warnings and errors")
	rootCmd.PersistentFlags().Bool("silent", false, "only print critical errors")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cobra.CheckErr(v.BindPFlags(rootCmd.PersistentFlags()))

	rootCmd.AddCommand(newGcpCommand(v))
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newDocCommand())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	rootCmd := NewRootCommand(viper.New())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(reportFailure(err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".netdump")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}

func initOutput(v *viper.Viper) error {
	level, err := logs.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	noColor := v.GetBool("no-color")
	if noColor {
		message.SetNoColor(true)
	}
	message.SetQuiet(v.GetBool("quiet"))
	message.SetSilent(v.GetBool("silent"))
	logs.ConsoleLogger(os.Stderr, level, noColor)
	return nil
}

// reportFailure prints an actionable message for err and returns the exit code.
func reportFailure(err error) int {
	switch {
	case errors.Is(err, outputproviders.ErrOutputWrite):
		message.Critical("Failed to write output. Error: %v", err)
		return ExitOutputWrite
	case errors.Is(err, gcperrors.ErrInvalidCredentials):
		message.Critical("Please check your access token - credentials are invalid. Keep in mind that access tokens will expire.")
		message.Error("%v", err)
		return ExitFatal
	default:
		message.Critical("%v", err)
		return ExitFatal
	}
}
