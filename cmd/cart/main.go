package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	logger
	v          *viper.Viper
	slog       *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:   "cart",
		Short: "cart is a tool to grow classification trees",
		Long:  `A tool to grow CART classification trees from your data, evaluate them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.init(cmd)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to STDERR")
	rootCmd.PersistentFlags().String("config", "", "path to a YAML, TOML or JSON file with values for any flag")
	rootCmd.PersistentFlags().String("log-level", "info", "level of classifier logs: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "path to a file to which classifier logs are written in JSON and rotated (defaults to STDERR)")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), predictCmd(config), setCmd(config))
	return rootCmd
}

/*
init binds the flags of the command being run to the viper instance of
the config, so that their values can also come from CART_ prefixed
environment variables or from a config file, and sets up the loggers.
Flags set on the command line take precedence over the environment,
which takes precedence over the config file.
*/
func (rcc *rootCmdConfig) init(cmd *cobra.Command) error {
	rcc.v.SetEnvPrefix("CART")
	rcc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	rcc.v.AutomaticEnv()
	if err := rcc.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	if cf := rcc.v.GetString("config"); cf != "" {
		rcc.v.SetConfigFile(cf)
		if err := rcc.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	rcc.logger = logger(rcc.v.GetBool("verbose"))
	l, err := newSlogLogger(rcc.v.GetString("log-level"), rcc.v.GetString("log-file"))
	if err != nil {
		return err
	}
	rcc.slog = l
	return nil
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}

func exitOnError(err error, code int) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
